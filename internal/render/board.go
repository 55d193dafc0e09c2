// Package render draws a table as text for terminals and logs.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/calvinwijaya/solitaire-be/internal/game"
	colorize "github.com/fatih/color"
	"golang.org/x/term"
)

const (
	minCell     = 5
	maxCell     = 8
	defaultCols = 80
	faceDown    = "##"
	emptySlot   = "[ ]"
)

// Options control how a board is drawn.
type Options struct {
	// Color turns on ANSI colours: red suits in red, face-down cards dimmed.
	Color bool
	// Width is the terminal width in columns. Zero means 80.
	Width int
}

// TerminalWidth returns the width of the terminal behind f, or 80 when f is not a
// terminal.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultCols
	}
	return width
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

type painter struct {
	red, dim, head *colorize.Color
	cell           int
}

func newPainter(opts Options) painter {
	p := painter{
		red:  colorize.New(colorize.FgHiRed),
		dim:  colorize.New(colorize.FgHiBlack),
		head: colorize.New(colorize.FgCyan, colorize.Bold),
	}
	for _, c := range []*colorize.Color{p.red, p.dim, p.head} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	width := opts.Width
	if width <= 0 {
		width = defaultCols
	}
	p.cell = width / game.NumColumns
	if p.cell < minCell {
		p.cell = minCell
	}
	if p.cell > maxCell {
		p.cell = maxCell
	}
	return p
}

// pad right-pads s to the cell width, counting runes so suit symbols take one column.
func (p painter) pad(s string) string {
	if n := utf8.RuneCountInString(s); n < p.cell {
		return s + strings.Repeat(" ", p.cell-n)
	}
	return s
}

// card draws one card padded to the cell width.
func (p painter) card(c game.Card) string {
	if !c.FaceUp {
		return p.dim.Sprint(p.pad(faceDown))
	}
	label := p.pad(c.Label())
	if c.Suit.Red() {
		return p.red.Sprint(label)
	}
	return label
}

func (p painter) top(pile []game.Card) string {
	if len(pile) == 0 {
		return p.pad(emptySlot)
	}
	return p.card(pile[len(pile)-1])
}

// Board writes s to w: the stock, waste and foundations on the first row, then the
// columns with their cards stacked downwards, then the drag if one is active.
func Board(w io.Writer, s game.State, opts Options) error {
	p := newPainter(opts)
	var b strings.Builder

	stock := p.pad(emptySlot)
	if len(s.Stock) > 0 {
		stock = p.dim.Sprint(p.pad(faceDown))
	}
	fmt.Fprintf(&b, "%s%s%s", stock, p.top(s.Waste), strings.Repeat(" ", p.cell))
	for _, f := range s.Foundations {
		b.WriteString(p.top(f))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s\n", p.pad(fmt.Sprintf("(%d)", len(s.Stock))), p.pad(fmt.Sprintf("(%d)", len(s.Waste))))
	b.WriteString("\n")

	for col := 0; col < game.NumColumns; col++ {
		b.WriteString(p.head.Sprint(p.pad(fmt.Sprintf("%d", col+1))))
	}
	b.WriteString("\n")

	depth := 0
	for _, column := range s.Columns {
		if len(column) > depth {
			depth = len(column)
		}
	}
	if depth == 0 {
		depth = 1
	}
	for row := 0; row < depth; row++ {
		var line strings.Builder
		for _, column := range s.Columns {
			switch {
			case row < len(column):
				line.WriteString(p.card(column[row]))
			case row == 0:
				line.WriteString(p.pad(emptySlot))
			default:
				line.WriteString(p.pad(""))
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}

	if s.Drag != nil {
		labels := make([]string, len(s.Drag.Cards))
		for i, c := range s.Drag.Cards {
			labels[i] = c.Label()
		}
		fmt.Fprintf(&b, "\ndragging %s from %s at (%.0f, %.0f)\n",
			strings.Join(labels, " "), s.Drag.Source, s.Drag.Position.X, s.Drag.Position.Y)
	}
	if game.IsWon(s) {
		b.WriteString("\n" + p.head.Sprint("won!") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
