package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DropTarget says where a drop landed.
type DropTarget int

const (
	DropNone DropTarget = iota
	DropColumn
	DropFoundation
)

func (t DropTarget) String() string {
	switch t {
	case DropColumn:
		return "column"
	case DropFoundation:
		return "foundation"
	default:
		return "none"
	}
}

// DropResult reports how DropAt resolved. Index is the target column or foundation.
type DropResult struct {
	Target DropTarget `json:"target"`
	Index  int        `json:"index"`
}

func (r DropResult) Moved() bool { return r.Target != DropNone }

// Game owns one solitaire table. Every action swaps the current snapshot for a new one
// or leaves it as it was. A Game is not safe for concurrent use; callers serialize
// access to it.
type Game struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	state   State
	dealt   bool
	pointer Point
	rng     *rand.Rand
	log     logrus.FieldLogger
}

// Option configures a Game.
type Option func(*Game)

// WithSeed makes the deal reproducible. A zero seed means seeded from the clock.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.Seed = seed }
}

// WithRand supplies the random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithState starts the game from s instead of a fresh deal.
func WithState(s State) Option {
	return func(g *Game) {
		g.state = s
		g.dealt = true
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Game) { g.log = l }
}

// New creates a game and deals it, unless WithState provided a table.
func New(opts ...Option) *Game {
	g := &Game{ID: uuid.New().String()}
	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		if g.Seed == 0 {
			g.Seed = time.Now().UnixNano()
		}
		g.rng = NewRand(g.Seed)
	}
	if g.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		g.log = l
	}
	g.log = g.log.WithField("game_id", g.ID)

	if !g.dealt {
		g.state = NewInitialState(g.rng)
		g.dealt = true
	}

	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	return g
}

// Snapshot returns the current table.
func (g *Game) Snapshot() State {
	return g.state
}

// Pointer is the last pointer position reported with SetDragPosition.
func (g *Game) Pointer() Point {
	return g.pointer
}

func (g *Game) commit(s State) {
	g.state = s
	g.UpdatedAt = time.Now()
}

// NewGame replaces the table with a fresh deal.
func (g *Game) NewGame() {
	g.commit(NewInitialState(g.rng))
	g.log.Debug("new deal")
}

// Draw turns the stock's top card onto the waste, or recycles the waste into the
// stock when the stock is empty. Either way an active drag is dropped. Recycled cards
// keep their face state.
func (g *Game) Draw() {
	s := g.state
	s.Drag = nil

	if len(s.Stock) == 0 {
		stock := make([]Card, len(s.Waste))
		for i, c := range s.Waste {
			stock[len(s.Waste)-1-i] = c
		}
		s.Stock = stock
		s.Waste = []Card{}
		g.commit(s)
		g.log.WithField("cards", len(stock)).Debug("recycled waste into stock")
		return
	}

	n := len(s.Stock)
	top := s.Stock[n-1]
	s.Stock = s.Stock[: n-1 : n-1]
	s.Waste = appended(s.Waste, top.Flipped(true))
	g.commit(s)
	g.log.WithField("card", top.Label()).Debug("drew card")
}

// StartDrag lifts card from source. It only succeeds when CanStartDragCard allows it;
// otherwise nothing changes and it returns false. The drag starts at the last pointer
// position.
func (g *Game) StartDrag(card Card, source DragSource) bool {
	s := g.state
	if !CanStartDragCard(card, source, s) {
		g.log.WithFields(logrus.Fields{"card": card.ID, "source": source}).Debug("drag start rejected")
		return false
	}

	s.Drag = &DragSession{
		Cards:    carried(s, source),
		Source:   source,
		Position: g.pointer,
	}
	g.commit(s)
	return true
}

// SetDragPosition records the pointer position. It does no rule checks and is cheap
// enough to call on every pointer move.
func (g *Game) SetDragPosition(x, y float64) {
	g.pointer = Point{X: x, Y: y}
	if g.state.Drag == nil {
		return
	}
	d := *g.state.Drag
	d.Position = g.pointer
	s := g.state
	s.Drag = &d
	g.state = s
}

// CancelDrag ends the drag and leaves every card where it was.
func (g *Game) CancelDrag() {
	if g.state.Drag == nil {
		return
	}
	s := g.state
	s.Drag = nil
	g.commit(s)
}

// DropAt resolves the drag against the table at (x, y). Columns are tried first, then
// foundations. An illegal or missed drop leaves the cards at their source. The drag
// always ends.
func (g *Game) DropAt(x, y float64) DropResult {
	drag := g.state.Drag
	if drag == nil {
		return DropResult{}
	}

	s := g.state
	s.Drag = nil
	lead := drag.Lead()
	result := DropResult{}

	col, colHit := HitTestColumn(x, y)
	if src, ok := drag.Source.(ColumnSource); ok && colHit && src.Col == col {
		g.commit(s)
		return result
	}

	if colHit && CanPlaceOnColumn(lead, s.Columns[col]) {
		s = withoutCarried(s, drag.Source)
		s.Columns[col] = appended(s.Columns[col], drag.Cards...)
		result = DropResult{Target: DropColumn, Index: col}
	} else if fi, ok := HitTestFoundation(x, y); ok && len(drag.Cards) == 1 && CanPlaceOnFoundation(lead, s.Foundations[fi]) {
		s = withoutCarried(s, drag.Source)
		s.Foundations[fi] = appended(s.Foundations[fi], lead)
		result = DropResult{Target: DropFoundation, Index: fi}
	}

	g.commit(s)
	g.log.WithFields(logrus.Fields{
		"card":   lead.Label(),
		"source": drag.Source.String(),
		"target": result.Target.String(),
		"index":  result.Index,
	}).Debug("drop resolved")
	return result
}

// FoundationFor picks the foundation a card is sent to by double-click: the pile that
// already holds its suit, otherwise the suit's home slot, or the first empty pile when
// a drag has filled the home slot with another suit.
func FoundationFor(card Card, s State) int {
	for i, f := range s.Foundations {
		if len(f) > 0 && f[0].Suit == card.Suit {
			return i
		}
	}
	if len(s.Foundations[card.Suit]) == 0 {
		return int(card.Suit)
	}
	for i, f := range s.Foundations {
		if len(f) == 0 {
			return i
		}
	}
	return int(card.Suit)
}

// MoveCardToFoundation sends card straight from source to its foundation. Only a
// single top card can go: the waste top, or the last card of a column. Returns false
// and changes nothing when the move is not legal.
func (g *Game) MoveCardToFoundation(card Card, source DragSource) bool {
	s := g.state
	if !CanStartDragCard(card, source, s) {
		return false
	}
	group := carried(s, source)
	if len(group) != 1 {
		return false
	}
	card = group[0]

	fi := FoundationFor(card, s)
	if !CanPlaceOnFoundation(card, s.Foundations[fi]) {
		return false
	}

	s.Drag = nil
	s = withoutCarried(s, source)
	s.Foundations[fi] = appended(s.Foundations[fi], card)
	g.commit(s)
	g.log.WithFields(logrus.Fields{"card": card.Label(), "index": fi}).Debug("sent to foundation")
	return true
}

// CanDropOnColumn reports whether the current drag could land on column col.
func (g *Game) CanDropOnColumn(col int) bool {
	if g.state.Drag == nil || col < 0 || col >= NumColumns {
		return false
	}
	if src, ok := g.state.Drag.Source.(ColumnSource); ok && src.Col == col {
		return false
	}
	return CanPlaceOnColumn(g.state.Drag.Lead(), g.state.Columns[col])
}

// CanDropOnFoundation reports whether the current drag could land on foundation fi.
func (g *Game) CanDropOnFoundation(fi int) bool {
	if g.state.Drag == nil || fi < 0 || fi >= NumFoundations {
		return false
	}
	return len(g.state.Drag.Cards) == 1 && CanPlaceOnFoundation(g.state.Drag.Lead(), g.state.Foundations[fi])
}

// IsWon reports whether the game is over.
func (g *Game) IsWon() bool {
	return IsWon(g.state)
}

// FindCard locates a card by id and returns the source a drag of it would use.
// Cards on the stock or foundations are not draggable and are not found.
func (g *Game) FindCard(id string) (Card, DragSource, bool) {
	s := g.state
	if n := len(s.Waste); n > 0 && s.Waste[n-1].ID == id {
		return s.Waste[n-1], WasteSource{}, true
	}
	for col, column := range s.Columns {
		for i, c := range column {
			if c.ID == id {
				return c, ColumnSource{Col: col, FromIndex: i}, true
			}
		}
	}
	return Card{}, nil, false
}
