package engine

import (
	"image/color"
	"strings"
	"time"

	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/piece"
)

// Stats counts engine events since construction or the last Reset.
type Stats struct {
	Ticks        int64
	Spawned      int
	Locked       int
	Holds        int
	LinesCleared int
	// Clears[n-1] counts placements that cleared n rows at once.
	Clears [4]int
}

// TimerState describes one of the engine's timers for inspection.
type TimerState struct {
	Name     string
	Active   bool
	Elapsed  time.Duration
	Duration time.Duration
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Rows    int
	Columns int
	// Cells holds the settled grid in row-major order.
	Cells []field.Cell

	Active      [4]field.Point
	ActiveShape piece.Shape
	ActiveColor color.RGBA
	Ghost       [4]field.Point
	Landed      bool

	Held    piece.Shape
	HasHeld bool
	CanHold bool
	Next    []piece.Shape

	Over  bool
	Stats Stats
}

// Snapshot copies the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Rows:        e.cfg.Rows,
		Columns:     e.cfg.Columns,
		Cells:       e.field.Cells(),
		Active:      e.active.Points(),
		ActiveShape: e.active.Shape(),
		ActiveColor: e.active.Color(),
		Landed:      e.active.Landed(),
		Held:        e.held,
		HasHeld:     e.hasHeld,
		CanHold:     e.CanHold(),
		Over:        e.over,
		Stats:       e.stats,
	}

	if e.over {
		s.Ghost = s.Active
	} else {
		s.Ghost = e.active.Ghost()
	}

	if p, ok := e.supplier.(Peeker); ok && e.cfg.Preview > 0 {
		s.Next = p.Peek(e.cfg.Preview)
	}
	return s
}

// Cell returns the settled cell at (row, col).
func (s Snapshot) Cell(row, col int) field.Cell {
	return s.Cells[row*s.Columns+col]
}

// IsActive reports whether the active piece covers (row, col).
func (s Snapshot) IsActive(row, col int) bool {
	return containsPoint(s.Active, row, col)
}

// IsGhost reports whether the hard-drop preview covers (row, col).
func (s Snapshot) IsGhost(row, col int) bool {
	return containsPoint(s.Ghost, row, col)
}

func containsPoint(points [4]field.Point, row, col int) bool {
	for _, p := range points {
		if p.Row == row && p.Col == col {
			return true
		}
	}
	return false
}

// String draws the board: '#' settled, '@' active piece, '.' empty.
func (s Snapshot) String() string {
	var b strings.Builder
	b.Grow(s.Rows * (s.Columns + 1))
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Columns; col++ {
			switch {
			case s.IsActive(row, col):
				b.WriteByte('@')
			case !s.Cell(row, col).Empty():
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
