package piece

import (
	"fmt"
	"image/color"

	"github.com/plus3/blockfall/field"
)

//go:generate go tool stringer -type=Shape -trimprefix=Shape

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL

	ShapeCount = 7
)

// Offset is a block position relative to the pivot, in columns and rows.
type Offset struct {
	DCol, DRow int
}

type shapeDef struct {
	offsets [4]Offset
	color   color.RGBA
}

// The first offset of every shape is the pivot used for rotation.
var shapeTable = [ShapeCount]shapeDef{
	ShapeI: {
		offsets: [4]Offset{{0, 0}, {-1, 0}, {1, 0}, {2, 0}},
		color:   color.RGBA{R: 102, G: 191, B: 255, A: 255},
	},
	ShapeO: {
		offsets: [4]Offset{{0, 0}, {0, -1}, {1, 0}, {1, -1}},
		color:   color.RGBA{R: 255, G: 203, B: 0, A: 255},
	},
	ShapeT: {
		offsets: [4]Offset{{0, 0}, {-1, 0}, {1, 0}, {0, -1}},
		color:   color.RGBA{R: 135, G: 60, B: 190, A: 255},
	},
	ShapeS: {
		offsets: [4]Offset{{0, 0}, {-1, 0}, {0, -1}, {1, -1}},
		color:   color.RGBA{R: 0, G: 158, B: 47, A: 255},
	},
	ShapeZ: {
		offsets: [4]Offset{{0, 0}, {1, 0}, {0, -1}, {-1, -1}},
		color:   color.RGBA{R: 230, G: 41, B: 55, A: 255},
	},
	ShapeJ: {
		offsets: [4]Offset{{0, 0}, {0, -1}, {0, 1}, {-1, 1}},
		color:   color.RGBA{R: 0, G: 121, B: 241, A: 255},
	},
	ShapeL: {
		offsets: [4]Offset{{0, 0}, {0, -1}, {0, 1}, {1, 1}},
		color:   color.RGBA{R: 255, G: 161, B: 0, A: 255},
	},
}

// Shapes returns every shape in table order.
func Shapes() []Shape {
	shapes := make([]Shape, ShapeCount)
	for i := range shapes {
		shapes[i] = Shape(i)
	}
	return shapes
}

// Valid reports whether s names a known shape.
func (s Shape) Valid() bool {
	return s < ShapeCount
}

func (s Shape) def() *shapeDef {
	if !s.Valid() {
		panic(fmt.Sprintf("piece: unknown shape %d", uint8(s)))
	}
	return &shapeTable[s]
}

// Offsets returns the spawn layout of s relative to its pivot.
func (s Shape) Offsets() [4]Offset {
	return s.def().offsets
}

// Color returns the display color of s.
func (s Shape) Color() color.RGBA {
	return s.def().color
}

// SpawnAnchor returns the pivot position new pieces appear at on a field with
// the given number of columns. Every shape fits below row 0 from there.
func SpawnAnchor(columns int) field.Point {
	return field.Point{Row: 1, Col: (columns - 1) / 2}
}
