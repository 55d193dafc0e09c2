package game

import "math"

// Table geometry, in table coordinates. Card tiles are 48x64 in the sheet and drawn
// at 1.5x.
const (
	TileWidth  = 48
	TileHeight = 64
	CardScale  = 1.5

	CardWidth  = TileWidth * CardScale
	CardHeight = TileHeight * CardScale

	CardGap        = 12.0
	ColumnStep     = CardWidth + CardGap
	ColumnOverlapY = 38.0
	TablePadding   = 24.0
	TableHeight    = 600.0

	FoundationY = TablePadding
	ColumnsTopY = FoundationY + CardHeight + 16
	StockX      = TablePadding
	WasteX      = StockX + CardWidth + CardGap

	FirstFoundationX = WasteX + CardWidth + CardGap + TablePadding
	FirstColumnX     = FirstFoundationX + ColumnStep*NumFoundations
	TableWidth       = FirstColumnX + (NumColumns-1)*ColumnStep + CardWidth + TablePadding

	ColumnDropHeight = TableHeight - ColumnsTopY - TablePadding
)

// Point is a position in table coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box in table coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether (x, y) lies in the half-open box [X, X+W) x [Y, Y+H).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ColumnBounds is the drop zone of column col: one column step wide (the gap to the
// right included) and the full height below the columns' top anchor.
func ColumnBounds(col int) Rect {
	return Rect{
		X: FirstColumnX + float64(col)*ColumnStep,
		Y: ColumnsTopY,
		W: ColumnStep,
		H: ColumnDropHeight,
	}
}

// FoundationBounds is the drop zone of foundation fi.
func FoundationBounds(fi int) Rect {
	return Rect{
		X: FirstFoundationX + float64(fi)*ColumnStep,
		Y: FoundationY,
		W: ColumnStep,
		H: CardHeight,
	}
}

func StockBounds() Rect {
	return Rect{X: StockX, Y: FoundationY, W: CardWidth, H: CardHeight}
}

func WasteBounds() Rect {
	return Rect{X: WasteX, Y: FoundationY, W: CardWidth, H: CardHeight}
}

// HitTestColumn returns the column whose drop zone contains (x, y). The bottom edge of
// the zone counts as inside.
func HitTestColumn(x, y float64) (int, bool) {
	if y < ColumnsTopY || y > ColumnsTopY+ColumnDropHeight {
		return 0, false
	}
	for col := 0; col < NumColumns; col++ {
		b := ColumnBounds(col)
		if x >= b.X && x < b.Right() {
			return col, true
		}
	}
	return 0, false
}

// HitTestFoundation returns the foundation whose slot contains (x, y).
func HitTestFoundation(x, y float64) (int, bool) {
	if y < FoundationY || y >= FoundationY+CardHeight {
		return 0, false
	}
	for fi := 0; fi < NumFoundations; fi++ {
		b := FoundationBounds(fi)
		if x >= b.X && x < b.Right() {
			return fi, true
		}
	}
	return 0, false
}

// ColumnOverlap returns the vertical step between cards of an n-card column, shrinking
// the default step so the whole column stays inside its drop zone.
func ColumnOverlap(n int) float64 {
	if n <= 1 {
		return ColumnOverlapY
	}
	fit := (ColumnDropHeight - CardHeight) / float64(n-1)
	return math.Min(ColumnOverlapY, fit)
}

// ClientToTable maps a pointer position in client space onto the table, given the
// viewport the table is drawn into. It fails for an empty viewport.
func ClientToTable(clientX, clientY float64, viewport Rect) (Point, bool) {
	if viewport.W == 0 || viewport.H == 0 {
		return Point{}, false
	}
	return Point{
		X: (clientX - viewport.X) * TableWidth / viewport.W,
		Y: (clientY - viewport.Y) * TableHeight / viewport.H,
	}, true
}

// TileFrame locates a card image in the cards sprite sheet.
type TileFrame struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CardBacksRow is the sheet row holding card backs; the suit rows come first.
const CardBacksRow = 4

// CardFrame maps a card to its sprite: face-down cards use the default back, face-up
// cards use row = suit and col = rank.
func CardFrame(c Card) TileFrame {
	if !c.FaceUp {
		return TileFrame{Row: CardBacksRow, Col: 0}
	}
	return TileFrame{Row: int(c.Suit), Col: int(c.Rank)}
}
