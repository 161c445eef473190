package models

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
)

func newTestList(t *testing.T, titles ...string) *List {
	t.Helper()
	list, err := NewList("Todo", 0)
	require.NoError(t, err)
	for _, title := range titles {
		_, err := list.AddCard(title, "", time.Now())
		require.NoError(t, err)
	}
	return list
}

// assertDensePositions checks the density+uniqueness invariant: positions are
// exactly {0, 1, ..., count-1}, and the slice ordering matches.
func assertDensePositions(t *testing.T, list *List) {
	t.Helper()
	for i, c := range list.Cards {
		assert.Equal(t, i, c.Position, "card %q at index %d", c.Title, i)
	}
}

func TestNewListValidatesName(t *testing.T) {
	_, err := NewList("  ", 0)
	assert.True(t, dErrors.HasCode(err, CodeListNameRequired))

	_, err = NewList("Todo", -1)
	assert.Error(t, err)
}

func TestAddCardAppendsAtEnd(t *testing.T) {
	list := newTestList(t, "A", "B", "C")

	assert.Len(t, list.Cards, 3)
	assertDensePositions(t, list)
	assert.Equal(t, "C", list.Cards[2].Title)
}

func TestRemoveCardKeepsPositionsDense(t *testing.T) {
	list := newTestList(t, "A", "B", "C", "D")

	list.RemoveCard(list.Cards[1].ID) // remove "B"

	require.Len(t, list.Cards, 3)
	assertDensePositions(t, list)
	assert.Equal(t, "A", list.Cards[0].Title)
	assert.Equal(t, "C", list.Cards[1].Title)
	assert.Equal(t, "D", list.Cards[2].Title)
}

func TestRemoveCardAbsentIsNoOp(t *testing.T) {
	list := newTestList(t, "A", "B")

	list.RemoveCard(id.NewCardID())

	assert.Len(t, list.Cards, 2)
	assertDensePositions(t, list)
}

func TestInsertCardShiftsAndPlaces(t *testing.T) {
	list := newTestList(t, "A", "B", "C")

	card, err := NewCard("X", "", 0, time.Now())
	require.NoError(t, err)
	require.NoError(t, list.InsertCard(card, 1))

	require.Len(t, list.Cards, 4)
	assertDensePositions(t, list)
	assert.Equal(t, "A", list.Cards[0].Title)
	assert.Equal(t, "X", list.Cards[1].Title)
	assert.Equal(t, "B", list.Cards[2].Title)
	assert.Equal(t, "C", list.Cards[3].Title)
}

func TestInsertCardClampsToEnd(t *testing.T) {
	list := newTestList(t, "A", "B")

	card, err := NewCard("X", "", 0, time.Now())
	require.NoError(t, err)
	require.NoError(t, list.InsertCard(card, 99))

	assertDensePositions(t, list)
	assert.Equal(t, "X", list.Cards[2].Title)
	assert.Equal(t, 2, card.Position)
}

func TestInsertCardIntoEmptyList(t *testing.T) {
	list := newTestList(t)

	card, err := NewCard("X", "", 7, time.Now())
	require.NoError(t, err)
	require.NoError(t, list.InsertCard(card, 5))

	require.Len(t, list.Cards, 1)
	assert.Equal(t, 0, card.Position)
}

func TestInsertCardRejectsNegativePosition(t *testing.T) {
	list := newTestList(t, "A")

	card, err := NewCard("X", "", 0, time.Now())
	require.NoError(t, err)
	err = list.InsertCard(card, -1)
	assert.True(t, dErrors.HasCode(err, CodeCardNegativePosition))
	assert.Len(t, list.Cards, 1)
}

// Positions stay a dense 0..n-1 permutation after any interleaving of add,
// remove and insert calls.
func TestPositionInvariantUnderRandomMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	list := newTestList(t)

	for i := 0; i < 200; i++ {
		switch rng.Intn(3) {
		case 0:
			_, err := list.AddCard("card", "", time.Now())
			require.NoError(t, err)
		case 1:
			if len(list.Cards) > 0 {
				list.RemoveCard(list.Cards[rng.Intn(len(list.Cards))].ID)
			}
		case 2:
			card, err := NewCard("inserted", "", 0, time.Now())
			require.NoError(t, err)
			require.NoError(t, list.InsertCard(card, rng.Intn(len(list.Cards)+2)))
		}
		assertDensePositions(t, list)
	}
}

func TestAddThenRemoveAllLeavesListEmpty(t *testing.T) {
	list := newTestList(t, "A", "B", "C", "D", "E")

	// Remove in a scrambled order.
	order := []int{2, 0, 1, 1, 0}
	for _, idx := range order {
		list.RemoveCard(list.Cards[idx].ID)
		assertDensePositions(t, list)
	}

	assert.Empty(t, list.Cards)
}
