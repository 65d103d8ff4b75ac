package piece_test

import (
	"image/color"
	"testing"

	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rows = 20
	cols = 10
)

var gray = color.RGBA{R: 128, G: 128, B: 128, A: 255}

func pt(row, col int) field.Point {
	return field.Point{Row: row, Col: col}
}

func columnsOf(points [4]field.Point) []int {
	out := make([]int, 0, len(points))
	for _, p := range points {
		out = append(out, p.Col)
	}
	return out
}

func TestShapeTable(t *testing.T) {
	shapes := piece.Shapes()
	require.Len(t, shapes, piece.ShapeCount)

	names := ""
	for _, s := range shapes {
		assert.True(t, s.Valid())
		assert.Equal(t, piece.Offset{}, s.Offsets()[0], "%v pivot must be the first block", s)
		assert.NotEqual(t, color.RGBA{}, s.Color())
		names += s.String()
	}
	assert.Equal(t, "IOTSZJL", names)

	assert.False(t, piece.Shape(piece.ShapeCount).Valid())
	assert.Equal(t, "Shape(12)", piece.Shape(12).String())
	assert.Panics(t, func() { piece.Shape(9).Offsets() })
	assert.Panics(t, func() { piece.New(piece.Shape(9), pt(1, 4), field.New(rows, cols)) })
}

func TestSpawnLayout(t *testing.T) {
	f := field.New(rows, cols)
	anchor := piece.SpawnAnchor(cols)
	assert.Equal(t, pt(1, 4), anchor)

	p := piece.New(piece.ShapeT, anchor, f)
	assert.Equal(t, [4]field.Point{pt(1, 4), pt(1, 3), pt(1, 5), pt(0, 4)}, p.Points())
	assert.Equal(t, piece.ShapeT.Color(), p.Color())
	assert.False(t, p.Landed())

	t.Run("every shape spawns inside the smallest supported field", func(t *testing.T) {
		small := field.New(4, 5)
		for _, s := range piece.Shapes() {
			assert.True(t, piece.New(s, piece.SpawnAnchor(5), small).Valid(), "%v", s)
		}
	})
}

func TestMoveHorizontal(t *testing.T) {
	t.Run("left wall rejects the move", func(t *testing.T) {
		f := field.New(rows, cols)
		p := piece.New(piece.ShapeO, pt(1, 0), f)
		before := p.Points()

		assert.False(t, p.MoveHorizontal(-1))
		assert.Equal(t, before, p.Points())
	})

	t.Run("right wall rejects the move", func(t *testing.T) {
		f := field.New(rows, cols)
		p := piece.New(piece.ShapeI, pt(1, 7), f)
		before := p.Points()

		assert.False(t, p.MoveHorizontal(1))
		assert.Equal(t, before, p.Points())
	})

	t.Run("settled block rejects the move", func(t *testing.T) {
		f := field.New(rows, cols)
		f.Place(1, 2, gray)
		p := piece.New(piece.ShapeT, pt(1, 4), f)
		before := p.Points()

		assert.False(t, p.MoveHorizontal(-1))
		assert.Equal(t, before, p.Points())
	})

	t.Run("free move shifts every block", func(t *testing.T) {
		f := field.New(rows, cols)
		p := piece.New(piece.ShapeT, pt(1, 4), f)

		assert.True(t, p.MoveHorizontal(-2))
		assert.Equal(t, []int{2, 1, 3, 2}, columnsOf(p.Points()))
	})
}

func TestMoveDownLands(t *testing.T) {
	f := field.New(rows, cols)
	p := piece.New(piece.ShapeT, pt(1, 4), f)

	moves := 0
	for p.MoveDown() {
		moves++
	}

	assert.Equal(t, 18, moves)
	assert.True(t, p.Landed())
	assert.Equal(t, pt(19, 4), p.Points()[0])

	// A blocked move leaves the piece in place.
	before := p.Points()
	assert.False(t, p.MoveDown())
	assert.Equal(t, before, p.Points())
}

func TestMoveDownOntoStack(t *testing.T) {
	f := field.New(rows, cols)
	f.Place(10, 4, gray)
	p := piece.New(piece.ShapeO, pt(1, 4), f)

	assert.Equal(t, 8, p.DropDistance())
	assert.Equal(t, [4]field.Point{pt(9, 4), pt(8, 4), pt(9, 5), pt(8, 5)}, p.Ghost())

	for p.MoveDown() {
	}
	assert.True(t, p.Landed())
	assert.Equal(t, p.Ghost(), p.Points())
	assert.Equal(t, 0, p.DropDistance())
}

func TestRefreshLanded(t *testing.T) {
	f := field.New(rows, cols)
	f.Place(19, 4, gray)
	p := piece.New(piece.ShapeO, pt(18, 4), f)

	p.MoveDown()
	require.True(t, p.Landed())

	// Slide off the ledge: nothing supports the piece any more.
	require.True(t, p.MoveHorizontal(2))
	assert.False(t, p.RefreshLanded())
	assert.False(t, p.Landed())
}

func TestRotateSquareIsNoop(t *testing.T) {
	boards := map[string]*field.Field{
		"empty": field.New(rows, cols),
	}
	crowded := field.New(rows, cols)
	for col := 0; col < cols; col++ {
		if col != 4 && col != 5 {
			crowded.Place(5, col, gray)
		}
	}
	boards["crowded"] = crowded

	for name, f := range boards {
		t.Run(name, func(t *testing.T) {
			p := piece.New(piece.ShapeO, pt(5, 4), f)
			before := p.Points()

			assert.False(t, p.Rotate())
			assert.Equal(t, before, p.Points())
			assert.Equal(t, 0, p.Rotation())
		})
	}
}

func TestRotateAboutPivot(t *testing.T) {
	f := field.New(rows, cols)
	p := piece.New(piece.ShapeT, pt(5, 4), f)
	start := p.Points()

	require.True(t, p.Rotate())
	assert.Equal(t, [4]field.Point{pt(5, 4), pt(4, 4), pt(6, 4), pt(5, 5)}, p.Points())
	assert.Equal(t, 1, p.Rotation())

	for range 3 {
		require.True(t, p.Rotate())
	}
	assert.Equal(t, start, p.Points())
	assert.Equal(t, 0, p.Rotation())
}

func TestRotateIsAtomic(t *testing.T) {
	f := field.New(rows, cols)
	f.Place(6, 4, gray)
	p := piece.New(piece.ShapeT, pt(5, 4), f)
	before := p.Points()

	assert.False(t, p.Rotate())
	assert.Equal(t, before, p.Points())
	assert.Equal(t, 0, p.Rotation())
}

func TestRotateIAgainstRightWall(t *testing.T) {
	f := field.New(rows, cols)
	p := piece.New(piece.ShapeI, pt(5, 7), f)
	require.Equal(t, []int{7, 6, 8, 9}, columnsOf(p.Points()))

	t.Run("horizontal to vertical stays on the board", func(t *testing.T) {
		require.True(t, p.Rotate())
		for _, c := range columnsOf(p.Points()) {
			assert.Equal(t, 7, c)
		}
		assert.Equal(t, [4]field.Point{pt(5, 7), pt(4, 7), pt(6, 7), pt(7, 7)}, p.Points())
	})

	t.Run("vertical to horizontal kicks left by the overflow", func(t *testing.T) {
		require.True(t, p.MoveHorizontal(2))
		require.Equal(t, 9, p.Points()[0].Col)

		// Unkicked candidates would span columns 7..10, one past the wall.
		require.True(t, p.Rotate())
		assert.Equal(t, [4]field.Point{pt(5, 8), pt(5, 9), pt(5, 7), pt(5, 6)}, p.Points())
	})
}

func TestRotateIAgainstLeftWall(t *testing.T) {
	f := field.New(rows, cols)
	p := piece.New(piece.ShapeI, pt(5, 1), f)
	require.True(t, p.Rotate())
	require.True(t, p.MoveHorizontal(-1))
	require.Equal(t, 0, p.Points()[0].Col)

	// Unkicked candidates would span columns -2..1.
	require.True(t, p.Rotate())
	assert.Equal(t, [4]field.Point{pt(5, 2), pt(5, 3), pt(5, 1), pt(5, 0)}, p.Points())
}

func TestRotateFloorKick(t *testing.T) {
	f := field.New(rows, cols)
	p := piece.New(piece.ShapeI, pt(1, 4), f)
	for p.MoveDown() {
	}
	require.Equal(t, 19, p.Points()[0].Row)

	// Unkicked candidates would reach row 21.
	require.True(t, p.Rotate())
	assert.Equal(t, [4]field.Point{pt(17, 4), pt(16, 4), pt(18, 4), pt(19, 4)}, p.Points())
}

func TestRotateKickIntoStackIsRejected(t *testing.T) {
	f := field.New(rows, cols)
	p := piece.New(piece.ShapeI, pt(5, 7), f)
	require.True(t, p.Rotate())
	require.True(t, p.MoveHorizontal(2))

	// The kicked position needs column 6 on row 5.
	f.Place(5, 6, gray)
	before := p.Points()

	assert.False(t, p.Rotate())
	assert.Equal(t, before, p.Points())
}
