package game

import (
	"encoding/json"
	"fmt"
)

// DragSource is where a drag started. It is either a ColumnSource or a WasteSource;
// consumers switch on the concrete type.
type DragSource interface {
	dragSource()
	fmt.Stringer
}

// ColumnSource is a drag of column[FromIndex:] out of column Col.
type ColumnSource struct {
	Col       int
	FromIndex int
}

// WasteSource is a drag of the waste's top card.
type WasteSource struct{}

func (ColumnSource) dragSource() {}
func (WasteSource) dragSource()  {}

func (s ColumnSource) String() string {
	return fmt.Sprintf("column %d from %d", s.Col, s.FromIndex)
}

func (WasteSource) String() string {
	return "waste"
}

type sourceJSON struct {
	Type      string `json:"type"`
	Col       *int   `json:"col,omitempty"`
	FromIndex *int   `json:"fromIndex,omitempty"`
}

func (s ColumnSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(sourceJSON{Type: "column", Col: &s.Col, FromIndex: &s.FromIndex})
}

func (WasteSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(sourceJSON{Type: "waste"})
}

// ParseDragSource decodes {"type":"column","col":n,"fromIndex":i} or {"type":"waste"}.
func ParseDragSource(data []byte) (DragSource, error) {
	var raw sourceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding drag source: %w", err)
	}

	switch raw.Type {
	case "waste":
		return WasteSource{}, nil
	case "column":
		if raw.Col == nil || raw.FromIndex == nil {
			return nil, fmt.Errorf("column source needs col and fromIndex")
		}
		if *raw.Col < 0 || *raw.Col >= NumColumns {
			return nil, fmt.Errorf("column %d out of range", *raw.Col)
		}
		return ColumnSource{Col: *raw.Col, FromIndex: *raw.FromIndex}, nil
	default:
		return nil, fmt.Errorf("unknown drag source type %q", raw.Type)
	}
}

// DragSession is a card group lifted from Source. The cards stay in the source
// container until the drop resolves.
type DragSession struct {
	Cards    []Card     `json:"cards"`
	Source   DragSource `json:"source"`
	Position Point      `json:"position"`
}

// Lead returns the bottom card of the carried group, the one that is checked against
// drop targets.
func (d *DragSession) Lead() Card {
	return d.Cards[0]
}
