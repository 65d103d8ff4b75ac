// Package piece implements the active falling tetromino and its collision rules.
package piece

import (
	"image/color"

	"github.com/plus3/blockfall/field"
)

// Grid is the read-only view of the settled field a piece collides against.
// *field.Field satisfies it.
type Grid interface {
	Rows() int
	Columns() int
	IsOccupied(row, col int) bool
}

// Piece is the active tetromino: a shape and the four cells it covers.
type Piece struct {
	shape    Shape
	points   [4]field.Point
	grid     Grid
	landed   bool
	rotation int
}

// New creates a piece of shape s with its pivot at anchor.
// It panics if s is not a known shape.
func New(s Shape, anchor field.Point, grid Grid) *Piece {
	p := &Piece{
		shape: s,
		grid:  grid,
	}
	for i, off := range s.Offsets() {
		p.points[i] = anchor.Add(off.DRow, off.DCol)
	}
	return p
}

func (p *Piece) Shape() Shape {
	return p.shape
}

func (p *Piece) Color() color.RGBA {
	return p.shape.Color()
}

// Points returns the four cells covered by the piece. Index 0 is the pivot.
func (p *Piece) Points() [4]field.Point {
	return p.points
}

// Landed reports whether the last downward move was blocked.
func (p *Piece) Landed() bool {
	return p.landed
}

// Rotation returns the number of quarter turns applied, modulo 4.
func (p *Piece) Rotation() int {
	return p.rotation
}

func (p *Piece) free(pt field.Point) bool {
	if pt.Row < 0 || pt.Row >= p.grid.Rows() || pt.Col < 0 || pt.Col >= p.grid.Columns() {
		return false
	}
	return !p.grid.IsOccupied(pt.Row, pt.Col)
}

// Fits reports whether every point is inside the grid and unoccupied.
func (p *Piece) Fits(points [4]field.Point) bool {
	for _, pt := range points {
		if !p.free(pt) {
			return false
		}
	}
	return true
}

// Valid reports whether the piece currently sits on free in-bounds cells.
// A freshly spawned piece that is not valid means the stack reached the top.
func (p *Piece) Valid() bool {
	return p.Fits(p.points)
}

func (p *Piece) translated(dRow, dCol int) [4]field.Point {
	var out [4]field.Point
	for i, pt := range p.points {
		out[i] = pt.Add(dRow, dCol)
	}
	return out
}

// WouldCollide reports whether translating the piece by (dRow, dCol) would
// leave the grid or overlap a settled block.
func (p *Piece) WouldCollide(dRow, dCol int) bool {
	return !p.Fits(p.translated(dRow, dCol))
}

// MoveHorizontal shifts the piece by delta columns if nothing is in the way.
func (p *Piece) MoveHorizontal(delta int) bool {
	if p.WouldCollide(0, delta) {
		return false
	}
	p.points = p.translated(0, delta)
	return true
}

// MoveDown drops the piece one row. When the row below is blocked the piece is
// marked landed and stays where it is; placing it is the caller's decision.
func (p *Piece) MoveDown() bool {
	if p.WouldCollide(1, 0) {
		p.landed = true
		return false
	}
	p.points = p.translated(1, 0)
	p.landed = false
	return true
}

// RefreshLanded re-evaluates the landed flag against the current grid.
func (p *Piece) RefreshLanded() bool {
	p.landed = p.WouldCollide(1, 0)
	return p.landed
}

// Rotate turns the piece a quarter turn about its pivot block. Candidates that
// stick out past the floor or a wall are shifted back inside by the overflow,
// then accepted only if all four cells are free. O pieces never rotate.
func (p *Piece) Rotate() bool {
	if p.shape == ShapeO {
		return false
	}

	candidates := p.rotated()
	kick(&candidates, p.grid.Rows(), p.grid.Columns())

	if !p.Fits(candidates) {
		return false
	}

	p.points = candidates
	p.rotation = (p.rotation + 1) % 4
	return true
}

// rotated maps each offset (dCol, dRow) from the pivot to (-dRow, dCol).
func (p *Piece) rotated() [4]field.Point {
	pivot := p.points[0]

	var out [4]field.Point
	for i, pt := range p.points {
		dCol := pt.Col - pivot.Col
		dRow := pt.Row - pivot.Row
		out[i] = field.Point{Row: pivot.Row + dCol, Col: pivot.Col - dRow}
	}
	return out
}

// kick applies single-step floor and wall corrections in place.
func kick(points *[4]field.Point, rows, cols int) {
	minCol, maxCol, maxRow := points[0].Col, points[0].Col, points[0].Row
	for _, pt := range points[1:] {
		minCol = min(minCol, pt.Col)
		maxCol = max(maxCol, pt.Col)
		maxRow = max(maxRow, pt.Row)
	}

	dRow, dCol := 0, 0
	if maxRow >= rows {
		dRow = rows - 1 - maxRow
	}
	if minCol < 0 {
		dCol = -minCol
	} else if maxCol >= cols {
		dCol = cols - 1 - maxCol
	}

	for i := range points {
		points[i] = points[i].Add(dRow, dCol)
	}
}

// DropDistance returns how many rows the piece can fall before landing.
func (p *Piece) DropDistance() int {
	n := 0
	for !p.WouldCollide(n+1, 0) {
		n++
	}
	return n
}

// Ghost returns the cells the piece would occupy after a hard drop.
func (p *Piece) Ghost() [4]field.Point {
	return p.translated(p.DropDistance(), 0)
}
