package api

import (
	"time"

	"github.com/calvinwijaya/solitaire-be/internal/game"
)

// CardView is a card plus the sprite frame a renderer draws for it.
type CardView struct {
	game.Card
	Frame game.TileFrame `json:"frame"`
}

type DragView struct {
	Cards    []CardView      `json:"cards"`
	Source   game.DragSource `json:"source"`
	Position game.Point      `json:"position"`
}

// Targets lists where the current drag could land, for highlighting.
type Targets struct {
	Columns     []int `json:"columns"`
	Foundations []int `json:"foundations"`
}

// GameView is the JSON shape of a game sent to clients.
type GameView struct {
	ID              string                          `json:"id"`
	Seed            int64                           `json:"seed"`
	UpdatedAt       time.Time                       `json:"updatedAt"`
	Columns         [game.NumColumns][]CardView     `json:"columns"`
	Foundations     [game.NumFoundations][]CardView `json:"foundations"`
	Stock           []CardView                      `json:"stock"`
	Waste           []CardView                      `json:"waste"`
	Drag            *DragView                       `json:"drag"`
	Targets         *Targets                        `json:"targets,omitempty"`
	FoundationCount int                             `json:"foundationCount"`
	Won             bool                            `json:"won"`
}

func cardViews(cards []game.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = CardView{Card: c, Frame: game.CardFrame(c)}
	}
	return out
}

// newGameView must be called while the caller holds access to g.
func newGameView(g *game.Game) GameView {
	s := g.Snapshot()
	v := GameView{
		ID:              g.ID,
		Seed:            g.Seed,
		UpdatedAt:       g.UpdatedAt,
		Stock:           cardViews(s.Stock),
		Waste:           cardViews(s.Waste),
		FoundationCount: game.FoundationCount(s),
		Won:             game.IsWon(s),
	}
	for i, col := range s.Columns {
		v.Columns[i] = cardViews(col)
	}
	for i, f := range s.Foundations {
		v.Foundations[i] = cardViews(f)
	}

	if s.Drag != nil {
		v.Drag = &DragView{
			Cards:    cardViews(s.Drag.Cards),
			Source:   s.Drag.Source,
			Position: s.Drag.Position,
		}
		t := &Targets{Columns: []int{}, Foundations: []int{}}
		for col := 0; col < game.NumColumns; col++ {
			if g.CanDropOnColumn(col) {
				t.Columns = append(t.Columns, col)
			}
		}
		for fi := 0; fi < game.NumFoundations; fi++ {
			if g.CanDropOnFoundation(fi) {
				t.Foundations = append(t.Foundations, fi)
			}
		}
		v.Targets = t
	}
	return v
}

// LayoutView describes the table geometry so a client can draw and hit-test the same way.
type LayoutView struct {
	Table            game.Rect   `json:"table"`
	CardWidth        float64     `json:"cardWidth"`
	CardHeight       float64     `json:"cardHeight"`
	ColumnOverlap    float64     `json:"columnOverlap"`
	ColumnDropHeight float64     `json:"columnDropHeight"`
	Stock            game.Rect   `json:"stock"`
	Waste            game.Rect   `json:"waste"`
	Foundations      []game.Rect `json:"foundations"`
	Columns          []game.Rect `json:"columns"`
}

func newLayoutView() LayoutView {
	v := LayoutView{
		Table:            game.Rect{W: game.TableWidth, H: game.TableHeight},
		CardWidth:        game.CardWidth,
		CardHeight:       game.CardHeight,
		ColumnOverlap:    game.ColumnOverlapY,
		ColumnDropHeight: game.ColumnDropHeight,
		Stock:            game.StockBounds(),
		Waste:            game.WasteBounds(),
	}
	for fi := 0; fi < game.NumFoundations; fi++ {
		v.Foundations = append(v.Foundations, game.FoundationBounds(fi))
	}
	for col := 0; col < game.NumColumns; col++ {
		v.Columns = append(v.Columns, game.ColumnBounds(col))
	}
	return v
}
