package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
)

func TestNewCardValidatesTitle(t *testing.T) {
	now := time.Now()

	_, err := NewCard("", "desc", 0, now)
	assert.True(t, dErrors.HasCode(err, CodeCardTitleRequired))

	_, err = NewCard("   ", "desc", 0, now)
	assert.True(t, dErrors.HasCode(err, CodeCardTitleRequired))

	_, err = NewCard(strings.Repeat("x", 101), "desc", 0, now)
	assert.True(t, dErrors.HasCode(err, CodeCardTitleRequired))

	card, err := NewCard("  Write tests  ", "desc", 3, now)
	require.NoError(t, err)
	assert.Equal(t, "Write tests", card.Title)
	assert.Equal(t, 3, card.Position)
	assert.False(t, card.ID.IsNil())
}

func TestNewCardRejectsNegativePosition(t *testing.T) {
	_, err := NewCard("title", "", -1, time.Now())
	assert.True(t, dErrors.HasCode(err, CodeCardNegativePosition))
}

func TestUpdateTitle(t *testing.T) {
	card, err := NewCard("old", "", 0, time.Now())
	require.NoError(t, err)

	assert.True(t, dErrors.HasCode(card.UpdateTitle("  "), CodeCardTitleRequired))
	assert.Equal(t, "old", card.Title)

	require.NoError(t, card.UpdateTitle("new"))
	assert.Equal(t, "new", card.Title)
}

func TestUpdateDescriptionAcceptsEmpty(t *testing.T) {
	card, err := NewCard("title", "something", 0, time.Now())
	require.NoError(t, err)

	require.NoError(t, card.UpdateDescription(""))
	assert.Equal(t, "", card.Description)

	assert.Error(t, card.UpdateDescription(strings.Repeat("x", 1001)))
}

func TestSetPositionRejectsNegative(t *testing.T) {
	card, err := NewCard("title", "", 0, time.Now())
	require.NoError(t, err)

	assert.True(t, dErrors.HasCode(card.SetPosition(-1), CodeCardNegativePosition))
	require.NoError(t, card.SetPosition(5))
	assert.Equal(t, 5, card.Position)
}
