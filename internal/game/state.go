package game

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error Validate reports.
var ErrInvariant = errors.New("state invariant violated")

// State is an immutable snapshot of the table. Actions build a new State and never
// write into a slice that an earlier snapshot can reach, so snapshots may be shared
// freely once taken.
type State struct {
	Columns     [NumColumns][]Card     `json:"columns"`
	Foundations [NumFoundations][]Card `json:"foundations"`
	Stock       []Card                 `json:"stock"`
	Waste       []Card                 `json:"waste"`
	Drag        *DragSession           `json:"drag"`
}

// FoundationCount is the number of cards on all foundations.
func FoundationCount(s State) int {
	n := 0
	for _, f := range s.Foundations {
		n += len(f)
	}
	return n
}

// IsWon reports whether every card has reached a foundation.
func IsWon(s State) bool {
	return FoundationCount(s) == DeckSize
}

// CanStartDragCard reports whether card may be picked up from source: it must be the
// live top of the waste, or lie in the selectable run of its column at exactly
// FromIndex.
func CanStartDragCard(card Card, source DragSource, s State) bool {
	switch src := source.(type) {
	case WasteSource:
		return len(s.Waste) > 0 && s.Waste[len(s.Waste)-1].ID == card.ID
	case ColumnSource:
		if src.Col < 0 || src.Col >= NumColumns {
			return false
		}
		column := s.Columns[src.Col]
		return IsColumnIndexSelectable(column, src.FromIndex) && column[src.FromIndex].ID == card.ID
	default:
		return false
	}
}

// carried returns the cards a drag from source lifts: the column suffix or the waste top.
func carried(s State, source DragSource) []Card {
	switch src := source.(type) {
	case WasteSource:
		return s.Waste[len(s.Waste)-1:]
	case ColumnSource:
		return s.Columns[src.Col][src.FromIndex:]
	default:
		return nil
	}
}

// withoutCarried returns s with the cards carried from source removed. A column whose
// new top is face down has it flipped face up.
func withoutCarried(s State, source DragSource) State {
	switch src := source.(type) {
	case WasteSource:
		s.Waste = s.Waste[: len(s.Waste)-1 : len(s.Waste)-1]
	case ColumnSource:
		rest := s.Columns[src.Col][:src.FromIndex]
		if n := len(rest); n > 0 && !rest[n-1].FaceUp {
			flipped := make([]Card, n)
			copy(flipped, rest)
			flipped[n-1] = flipped[n-1].Flipped(true)
			rest = flipped
		}
		// Cap the slice so a later append copies instead of overwriting the old suffix.
		s.Columns[src.Col] = rest[:len(rest):len(rest)]
	}
	return s
}

// appended returns a new slice holding pile followed by cards.
func appended(pile []Card, cards ...Card) []Card {
	out := make([]Card, 0, len(pile)+len(cards))
	out = append(out, pile...)
	return append(out, cards...)
}

// Validate checks the table invariants: the 52 ids are partitioned across the
// containers, face-down cards form a prefix of every column, foundations build up
// from Ace in one suit, the waste top is face up and a drag holds the live suffix of
// its source.
func Validate(s State) error {
	seen := make(map[string]string, DeckSize)
	count := func(where string, cards []Card) error {
		for _, c := range cards {
			if prev, ok := seen[c.ID]; ok {
				return fmt.Errorf("%w: card %s in both %s and %s", ErrInvariant, c.ID, prev, where)
			}
			seen[c.ID] = where
		}
		return nil
	}

	if err := count("stock", s.Stock); err != nil {
		return err
	}
	if err := count("waste", s.Waste); err != nil {
		return err
	}
	for i, col := range s.Columns {
		if err := count(fmt.Sprintf("column %d", i), col); err != nil {
			return err
		}
		if start := SelectableRange(col); start > 0 {
			for j := 0; j < start; j++ {
				if col[j].FaceUp {
					return fmt.Errorf("%w: column %d has face-up card at %d below face-down cards", ErrInvariant, i, j)
				}
			}
		}
	}
	for i, f := range s.Foundations {
		if err := count(fmt.Sprintf("foundation %d", i), f); err != nil {
			return err
		}
		for j, c := range f {
			if c.Rank != Rank(j) || c.Suit != f[0].Suit {
				return fmt.Errorf("%w: foundation %d out of sequence at %d (%s)", ErrInvariant, i, j, c)
			}
		}
	}
	if len(seen) != DeckSize {
		return fmt.Errorf("%w: %d cards on the table, want %d", ErrInvariant, len(seen), DeckSize)
	}
	if n := len(s.Waste); n > 0 && !s.Waste[n-1].FaceUp {
		return fmt.Errorf("%w: waste top is face down", ErrInvariant)
	}

	if s.Drag != nil {
		if len(s.Drag.Cards) == 0 {
			return fmt.Errorf("%w: drag session carries no cards", ErrInvariant)
		}
		if !CanStartDragCard(s.Drag.Lead(), s.Drag.Source, s) {
			return fmt.Errorf("%w: drag lead %s is not draggable from %s", ErrInvariant, s.Drag.Lead(), s.Drag.Source)
		}
		want := carried(s, s.Drag.Source)
		if len(want) != len(s.Drag.Cards) {
			return fmt.Errorf("%w: drag carries %d cards, source suffix has %d", ErrInvariant, len(s.Drag.Cards), len(want))
		}
		for i := range want {
			if want[i].ID != s.Drag.Cards[i].ID {
				return fmt.Errorf("%w: drag card %d does not match its source", ErrInvariant, i)
			}
		}
	}

	return nil
}
