package store

import (
	"errors"
	"time"

	"github.com/calvinwijaya/solitaire-be/internal/game"
)

// ErrGameNotFound is returned for an id the store does not hold.
var ErrGameNotFound = errors.New("game not found")

// Summary describes a stored game without handing out the game itself.
type Summary struct {
	ID              string    `json:"id"`
	Seed            int64     `json:"seed"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	FoundationCount int       `json:"foundationCount"`
	Won             bool      `json:"won"`
}

// Store defines the interface for game storage.
//
// A *game.Game is not safe for concurrent use, so callers reach a stored game only
// through UpdateGame and ViewGame, which serialize access to it.
type Store interface {
	// SaveGame adds a game, replacing any game with the same ID
	SaveGame(g *game.Game) error

	// UpdateGame runs fn with exclusive access to the game
	UpdateGame(id string, fn func(g *game.Game) error) error

	// ViewGame runs fn with read access to the game. fn must not call actions.
	ViewGame(id string, fn func(g *game.Game)) error

	// DeleteGame removes a game from the store
	DeleteGame(id string) error

	// ListGames returns a summary of every game, oldest first
	ListGames() ([]Summary, error)
}

func summarize(g *game.Game) Summary {
	s := g.Snapshot()
	return Summary{
		ID:              g.ID,
		Seed:            g.Seed,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
		FoundationCount: game.FoundationCount(s),
		Won:             game.IsWon(s),
	}
}
