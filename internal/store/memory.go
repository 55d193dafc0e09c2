package store

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/calvinwijaya/solitaire-be/internal/game"
	"github.com/sirupsen/logrus"
)

// MemoryStore is an in-memory implementation of game storage. Each game is an
// independent instance; one lock serializes every action across them.
type MemoryStore struct {
	games map[string]*game.Game
	mu    sync.RWMutex
	log   logrus.FieldLogger
}

// NewMemoryStore creates a new in-memory store. A nil logger discards output.
func NewMemoryStore(log logrus.FieldLogger) *MemoryStore {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &MemoryStore{
		games: make(map[string]*game.Game),
		log:   log.WithField("component", "store"),
	}
}

// SaveGame saves a game to the store
func (s *MemoryStore) SaveGame(g *game.Game) error {
	if g == nil || g.ID == "" {
		return fmt.Errorf("save game: missing id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[g.ID] = g
	s.log.WithField("game_id", g.ID).Debug("game saved")
	return nil
}

// UpdateGame runs fn under the write lock. The error from fn is returned as is.
func (s *MemoryStore) UpdateGame(id string, fn func(g *game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.games[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return fn(g)
}

// ViewGame runs fn under the read lock.
func (s *MemoryStore) ViewGame(id string, fn func(g *game.Game)) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.games[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	fn(g)
	return nil
}

// DeleteGame removes a game from the store
func (s *MemoryStore) DeleteGame(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	delete(s.games, id)
	s.log.WithField("game_id", id).Debug("game deleted")
	return nil
}

// ListGames returns all games in the store
func (s *MemoryStore) ListGames() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, summarize(g))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
