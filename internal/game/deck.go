package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const (
	NumColumns     = 7
	NumFoundations = 4
	DeckSize       = 52
)

// NewRand returns a random source seeded with seed, or with the current time when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewDeck creates a standard 52-card deck, every card face down with a fresh id.
// IDs are drawn from rng so a seeded game deals the same ids every time.
func NewDeck(rng *rand.Rand) []Card {
	ranks := []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range ranks {
			deck = append(deck, Card{
				ID:     uuid.Must(uuid.NewRandomFromReader(rng)).String(),
				Suit:   suit,
				Rank:   rank,
				FaceUp: false,
			})
		}
	}

	return deck
}

// Shuffle returns a uniformly permuted copy of cards (Fisher-Yates).
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)

	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// NewInitialState shuffles a new deck and deals it: column c gets c+1 cards with only
// the last one face up, the remaining 24 go to the stock in deck order.
func NewInitialState(rng *rand.Rand) State {
	deck := Shuffle(rng, NewDeck(rng))

	var s State
	idx := 0
	for col := 0; col < NumColumns; col++ {
		column := make([]Card, 0, col+1)
		for i := 0; i <= col; i++ {
			column = append(column, deck[idx].Flipped(i == col))
			idx++
		}
		s.Columns[col] = column
	}

	s.Stock = append([]Card(nil), deck[idx:]...)
	s.Waste = []Card{}
	for i := range s.Foundations {
		s.Foundations[i] = []Card{}
	}

	return s
}
