// Package field implements the settled-block grid of a falling-block game.
//
// Settled blocks are stored once, keyed by BlockID. The cell grid is derived
// from that store and rebuilt after every structural change, so occupancy can
// never drift from the live block set when several rows clear together.
package field

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
)

// BlockID identifies a settled block. The zero value means "no block".
type BlockID uint32

// Point is a grid coordinate. Row 0 is the top of the field.
type Point struct {
	Row, Col int
}

// Add returns p translated by the given row and column deltas.
func (p Point) Add(dRow, dCol int) Point {
	return Point{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Block is a settled block owned by the field.
type Block struct {
	ID    BlockID
	Pos   Point
	Color color.RGBA
}

// Cell is one grid entry. An empty cell has a zero ID.
type Cell struct {
	ID    BlockID
	Color color.RGBA
}

// Empty reports whether no block occupies the cell.
func (c Cell) Empty() bool {
	return c.ID == 0
}

// Field is a fixed rows × cols grid of settled blocks.
type Field struct {
	rows   int
	cols   int
	cells  []Cell
	blocks *intmap.Map[BlockID, Block]
	nextID BlockID
}

// New creates an empty field. Both dimensions must be positive.
func New(rows, cols int) *Field {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("field: invalid dimensions %dx%d", rows, cols))
	}

	return &Field{
		rows:   rows,
		cols:   cols,
		cells:  make([]Cell, rows*cols),
		blocks: intmap.New[BlockID, Block](rows * cols),
	}
}

func (f *Field) Rows() int {
	return f.rows
}

func (f *Field) Columns() int {
	return f.cols
}

// InBounds reports whether (row, col) lies inside the field.
func (f *Field) InBounds(row, col int) bool {
	return row >= 0 && row < f.rows && col >= 0 && col < f.cols
}

func (f *Field) index(row, col int) int {
	if !f.InBounds(row, col) {
		panic(fmt.Sprintf("field: cell (%d,%d) out of bounds %dx%d", row, col, f.rows, f.cols))
	}
	return row*f.cols + col
}

// IsOccupied reports whether a settled block sits at (row, col).
// The coordinate must be in bounds; collision code checks bounds first.
func (f *Field) IsOccupied(row, col int) bool {
	return !f.cells[f.index(row, col)].Empty()
}

// At returns the cell at (row, col).
func (f *Field) At(row, col int) Cell {
	return f.cells[f.index(row, col)]
}

// Place writes a settled block at (row, col) and returns its id.
// The cell is expected to be empty; the engine guarantees that.
func (f *Field) Place(row, col int, c color.RGBA) BlockID {
	idx := f.index(row, col)

	f.nextID++
	id := f.nextID
	f.blocks.Put(id, Block{ID: id, Pos: Point{Row: row, Col: col}, Color: c})
	f.cells[idx] = Cell{ID: id, Color: c}
	return id
}

// Block returns the settled block with the given id.
func (f *Field) Block(id BlockID) (Block, bool) {
	return f.blocks.Get(id)
}

// Len returns the number of settled blocks.
func (f *Field) Len() int {
	return f.blocks.Len()
}

// RowFull reports whether every cell of row is occupied.
func (f *Field) RowFull(row int) bool {
	f.mustRow(row)
	start := row * f.cols
	for _, c := range f.cells[start : start+f.cols] {
		if c.Empty() {
			return false
		}
	}
	return true
}

// FullRows returns the fully occupied rows in ascending order.
func (f *Field) FullRows() []int {
	var full []int
	for row := 0; row < f.rows; row++ {
		if f.RowFull(row) {
			full = append(full, row)
		}
	}
	return full
}

func (f *Field) mustRow(row int) {
	if row < 0 || row >= f.rows {
		panic(fmt.Sprintf("field: row %d out of range [0,%d)", row, f.rows))
	}
}

// ClearRow removes every block on row.
func (f *Field) ClearRow(row int) {
	f.mustRow(row)
	f.clearRow(row)
	f.Rebuild()
}

// ShiftRowsDown moves every block strictly above belowRow down by one row.
// belowRow should already be empty, normally because it was just cleared.
func (f *Field) ShiftRowsDown(belowRow int) {
	f.mustRow(belowRow)
	f.shiftRowsDown(belowRow)
	f.Rebuild()
}

// ClearRows removes the given rows and compacts everything above them.
// Rows are processed top-down, so a block drops exactly once for each cleared
// row beneath it, and the grid is rebuilt once at the end. It returns the
// number of distinct rows cleared.
func (f *Field) ClearRows(rows []int) int {
	if len(rows) == 0 {
		return 0
	}

	sorted := slices.Clone(rows)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for _, row := range sorted {
		f.mustRow(row)
	}

	for _, row := range sorted {
		f.clearRow(row)
		f.shiftRowsDown(row)
	}

	f.Rebuild()
	return len(sorted)
}

// ClearFullRows clears every full row and returns the number removed.
func (f *Field) ClearFullRows() int {
	return f.ClearRows(f.FullRows())
}

func (f *Field) clearRow(row int) {
	for _, b := range f.collect(func(b Block) bool { return b.Pos.Row == row }) {
		f.blocks.Del(b.ID)
	}
}

func (f *Field) shiftRowsDown(belowRow int) {
	for _, b := range f.collect(func(b Block) bool { return b.Pos.Row < belowRow }) {
		b.Pos.Row++
		f.blocks.Put(b.ID, b)
	}
}

// collect snapshots matching blocks so callers can mutate the store afterwards.
func (f *Field) collect(match func(Block) bool) []Block {
	var out []Block
	f.blocks.ForEach(func(_ BlockID, b Block) bool {
		if match(b) {
			out = append(out, b)
		}
		return true
	})
	return out
}

// Rebuild re-derives the cell grid from the live block set.
func (f *Field) Rebuild() {
	clear(f.cells)
	f.blocks.ForEach(func(id BlockID, b Block) bool {
		f.cells[f.index(b.Pos.Row, b.Pos.Col)] = Cell{ID: id, Color: b.Color}
		return true
	})
}

// Reset removes every settled block.
func (f *Field) Reset() {
	f.blocks.Clear()
	clear(f.cells)
}

// Cells returns a row-major copy of the grid.
func (f *Field) Cells() []Cell {
	return slices.Clone(f.cells)
}

// Blocks returns the settled blocks ordered top-down, left to right.
func (f *Field) Blocks() []Block {
	blocks := f.collect(func(Block) bool { return true })
	slices.SortFunc(blocks, func(a, b Block) int {
		if a.Pos.Row != b.Pos.Row {
			return a.Pos.Row - b.Pos.Row
		}
		return a.Pos.Col - b.Pos.Col
	})
	return blocks
}

// String renders the grid with '#' for settled blocks and '.' for empty cells.
func (f *Field) String() string {
	var b strings.Builder
	b.Grow(f.rows * (f.cols + 1))
	for row := 0; row < f.rows; row++ {
		for _, c := range f.cells[row*f.cols : (row+1)*f.cols] {
			if c.Empty() {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
