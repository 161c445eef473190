package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		first string
		last  string
	}{
		{"jane.doe@example.com", "Jane", "Doe"},
		{"bob@example.com", "Bob", "User"},
		{"a_b-c+d@example.com", "A", "D"},
		{"@example.com", "User", "User"},
		{"", "User", "User"},
	}

	for _, tc := range cases {
		first, last := DeriveNameFromEmail(tc.email)
		assert.Equal(t, tc.first, first, tc.email)
		assert.Equal(t, tc.last, last, tc.email)
	}
}
