package engine_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagSupplierDealsEveryShapePerBag(t *testing.T) {
	bag := engine.NewBagSupplier(rand.New(rand.NewPCG(1, 2)))

	for round := range 5 {
		seen := map[piece.Shape]int{}
		for range piece.ShapeCount {
			seen[bag.NextShape()]++
		}
		require.Len(t, seen, piece.ShapeCount, "bag %d", round)
		for s, n := range seen {
			assert.Equal(t, 1, n, "bag %d dealt %v twice", round, s)
		}
	}
}

func TestBagSupplierPeekDoesNotConsume(t *testing.T) {
	bag := engine.NewBagSupplier(rand.New(rand.NewPCG(3, 4)))
	bag.NextShape()

	ahead := bag.Peek(10)
	require.Len(t, ahead, 10)
	assert.Equal(t, ahead, bag.Peek(10))

	for i, want := range ahead {
		assert.Equal(t, want, bag.NextShape(), "shape %d", i)
	}
}

func TestBagSupplierIsDeterministicPerSeed(t *testing.T) {
	a := engine.NewBagSupplier(rand.New(rand.NewPCG(9, 9)))
	b := engine.NewBagSupplier(rand.New(rand.NewPCG(9, 9)))
	assert.Equal(t, a.Peek(21), b.Peek(21))
}

func TestRandomSupplierStaysInRange(t *testing.T) {
	r := engine.NewRandomSupplier(rand.New(rand.NewPCG(5, 6)))
	seen := map[piece.Shape]bool{}
	for range 500 {
		s := r.NextShape()
		require.True(t, s.Valid(), "%v", s)
		seen[s] = true
	}
	assert.Len(t, seen, piece.ShapeCount)
}

func TestSequenceSupplierCycles(t *testing.T) {
	seq := engine.NewSequenceSupplier(piece.ShapeI, piece.ShapeZ)
	assert.Equal(t, []piece.Shape{piece.ShapeI, piece.ShapeZ, piece.ShapeI}, seq.Peek(3))

	got := make([]piece.Shape, 0, 5)
	for range 5 {
		got = append(got, seq.NextShape())
	}
	assert.Equal(t, []piece.Shape{piece.ShapeI, piece.ShapeZ, piece.ShapeI, piece.ShapeZ, piece.ShapeI}, got)

	assert.Panics(t, func() { engine.NewSequenceSupplier() })
}

func TestSupplierFunc(t *testing.T) {
	calls := 0
	var s engine.Supplier = engine.SupplierFunc(func() piece.Shape {
		calls++
		return piece.ShapeL
	})

	e, err := engine.New(testConfig(), s)
	require.NoError(t, err)
	assert.Equal(t, piece.ShapeL, e.Snapshot().ActiveShape)
	assert.Equal(t, 1, calls)

	// Not a Peeker, so no preview.
	assert.Empty(t, e.Snapshot().Next)
}
