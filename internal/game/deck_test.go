package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck(NewRand(7))
	require.Len(t, deck, DeckSize)

	seen := map[string]bool{}
	pairs := map[[2]int]bool{}
	for _, c := range deck {
		assert.False(t, c.FaceUp, "%s should be face down", c)
		assert.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		pairs[[2]int{int(c.Suit), int(c.Rank)}] = true
	}
	assert.Len(t, pairs, DeckSize, "every suit/rank pair exactly once")
}

func TestNewDeckIsReproducible(t *testing.T) {
	a := NewDeck(NewRand(42))
	b := NewDeck(NewRand(42))
	assert.Equal(t, ids(a), ids(b))

	c := NewDeck(NewRand(43))
	assert.NotEqual(t, ids(a), ids(c))
}

func TestShuffle(t *testing.T) {
	deck := NewDeck(NewRand(1))
	before := ids(deck)

	shuffled := Shuffle(NewRand(2), deck)

	assert.Equal(t, before, ids(deck), "input must not be modified")
	assert.ElementsMatch(t, before, ids(shuffled))
	assert.NotEqual(t, before, ids(shuffled))
}

func TestShuffleCoversEveryPosition(t *testing.T) {
	// Each of three cards should reach each position over enough shuffles.
	cards := []Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	rng := NewRand(99)
	hits := map[string]map[int]int{"a": {}, "b": {}, "c": {}}

	for n := 0; n < 3000; n++ {
		for pos, c := range Shuffle(rng, cards) {
			hits[c.ID][pos]++
		}
	}

	for id, positions := range hits {
		for pos := 0; pos < 3; pos++ {
			assert.InDelta(t, 1000, positions[pos], 150, "card %s at position %d", id, pos)
		}
	}
}

func TestNewInitialState(t *testing.T) {
	s := NewInitialState(NewRand(5))

	for col, column := range s.Columns {
		require.Len(t, column, col+1, "column %d", col)
		for i, c := range column {
			assert.Equal(t, i == col, c.FaceUp, "column %d card %d face state", col, i)
		}
	}

	assert.Len(t, s.Stock, DeckSize-28)
	for _, c := range s.Stock {
		assert.False(t, c.FaceUp)
	}
	assert.Empty(t, s.Waste)
	for _, f := range s.Foundations {
		assert.Empty(t, f)
	}
	assert.Nil(t, s.Drag)
	require.NoError(t, Validate(s))
}
