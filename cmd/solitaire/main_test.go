package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/calvinwijaya/solitaire-be/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(dir, "none.env")))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestDealJSON(t *testing.T) {
	var a, b struct {
		Seed  int64 `json:"seed"`
		State struct {
			Columns [][]game.Card `json:"columns"`
			Stock   []game.Card   `json:"stock"`
			Waste   []game.Card   `json:"waste"`
		} `json:"state"`
	}

	require.NoError(t, json.Unmarshal([]byte(run(t, "deal", "--seed", "42", "--draw", "2", "--json")), &a))
	require.NoError(t, json.Unmarshal([]byte(run(t, "deal", "--seed", "42", "--draw", "2", "--json")), &b))

	assert.Equal(t, int64(42), a.Seed)
	assert.Equal(t, a.State, b.State)
	assert.Len(t, a.State.Waste, 2)
	assert.Len(t, a.State.Stock, 22)
	require.Len(t, a.State.Columns, game.NumColumns)
	assert.Len(t, a.State.Columns[6], 7)
}

func TestDealBoard(t *testing.T) {
	out := run(t, "deal", "--seed", "7", "--draw", "0", "--json=false", "--no-color")
	assert.Contains(t, out, "seed 7")
	assert.Contains(t, out, "(24)")
}

func TestLayout(t *testing.T) {
	var got struct {
		Width   float64 `json:"width"`
		Height  float64 `json:"height"`
		Regions []struct {
			Name   string    `json:"name"`
			Bounds game.Rect `json:"bounds"`
		} `json:"regions"`
	}
	require.NoError(t, json.Unmarshal([]byte(run(t, "layout", "--json")), &got))

	assert.Equal(t, float64(game.TableWidth), got.Width)
	require.Len(t, got.Regions, 2+game.NumFoundations+game.NumColumns)
	assert.Equal(t, "column 0", got.Regions[6].Name)
	assert.Equal(t, game.ColumnBounds(0), got.Regions[6].Bounds)

	text := run(t, "layout", "--json=false")
	assert.Contains(t, text, "table 1152x600")
	assert.Contains(t, text, "foundation 3")
}
