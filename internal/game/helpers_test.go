package game

import (
	"fmt"
	"testing"
)

// up and down build cards with readable ids such as "7C".
func up(rank Rank, suit Suit) Card {
	return Card{ID: fmt.Sprintf("%s%c", rank.Short(), suit.String()[0]), Suit: suit, Rank: rank, FaceUp: true}
}

func down(rank Rank, suit Suit) Card {
	c := up(rank, suit)
	c.FaceUp = false
	return c
}

func emptyState() State {
	var s State
	for i := range s.Columns {
		s.Columns[i] = []Card{}
	}
	for i := range s.Foundations {
		s.Foundations[i] = []Card{}
	}
	s.Stock = []Card{}
	s.Waste = []Card{}
	return s
}

func newTestGame(t *testing.T, s State) *Game {
	t.Helper()
	return New(WithSeed(1), WithState(s))
}

func newDealtGame(t *testing.T, seed int64) *Game {
	t.Helper()
	return New(WithSeed(seed))
}

func columnCenter(col int) (float64, float64) {
	b := ColumnBounds(col)
	return b.X + b.W/2, b.Y + 20
}

func foundationCenter(fi int) (float64, float64) {
	b := FoundationBounds(fi)
	return b.X + b.W/2, b.Y + b.H/2
}

func ids(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
