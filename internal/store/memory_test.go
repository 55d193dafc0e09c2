package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/calvinwijaya/solitaire-be/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSaveAndView(t *testing.T) {
	s := NewMemoryStore(nil)
	g := game.New(game.WithSeed(9))
	require.NoError(t, s.SaveGame(g))

	var got game.State
	require.NoError(t, s.ViewGame(g.ID, func(g *game.Game) { got = g.Snapshot() }))
	assert.Equal(t, g.Snapshot(), got)

	err := s.ViewGame("missing", func(*game.Game) { t.Fatal("called for unknown id") })
	assert.ErrorIs(t, err, ErrGameNotFound)

	assert.Error(t, s.SaveGame(&game.Game{}))
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore(nil)
	g := game.New(game.WithSeed(9))
	require.NoError(t, s.SaveGame(g))
	stock := len(g.Snapshot().Stock)

	require.NoError(t, s.UpdateGame(g.ID, func(g *game.Game) error {
		g.Draw()
		return nil
	}))
	require.NoError(t, s.ViewGame(g.ID, func(g *game.Game) {
		assert.Len(t, g.Snapshot().Stock, stock-1)
	}))

	boom := errors.New("boom")
	assert.Equal(t, boom, s.UpdateGame(g.ID, func(*game.Game) error { return boom }))
	assert.ErrorIs(t, s.UpdateGame("missing", func(*game.Game) error { return nil }), ErrGameNotFound)
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	s := NewMemoryStore(nil)
	g := game.New(game.WithSeed(3))
	require.NoError(t, s.SaveGame(g))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.UpdateGame(g.ID, func(g *game.Game) error {
				g.Draw()
				return nil
			})
			_ = s.ViewGame(g.ID, func(g *game.Game) { _ = g.Snapshot() })
		}()
	}
	wg.Wait()

	require.NoError(t, s.ViewGame(g.ID, func(g *game.Game) {
		assert.NoError(t, game.Validate(g.Snapshot()))
	}))
}

func TestMemoryStoreDeleteAndList(t *testing.T) {
	s := NewMemoryStore(nil)
	a := game.New(game.WithSeed(1))
	b := game.New(game.WithSeed(2))
	require.NoError(t, s.SaveGame(a))
	require.NoError(t, s.SaveGame(b))

	list, err := s.ListGames()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, []string{list[0].ID, list[1].ID})
	for _, sum := range list {
		assert.Zero(t, sum.FoundationCount)
		assert.False(t, sum.Won)
	}

	require.NoError(t, s.DeleteGame(a.ID))
	assert.ErrorIs(t, s.DeleteGame(a.ID), ErrGameNotFound)

	list, err = s.ListGames()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, int64(2), list[0].Seed)
}
