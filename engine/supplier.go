package engine

import (
	"math/rand/v2"
	"slices"

	"github.com/plus3/blockfall/piece"
)

// Supplier provides the shape of each newly spawned piece.
type Supplier interface {
	NextShape() piece.Shape
}

// SupplierFunc adapts a plain function to Supplier.
type SupplierFunc func() piece.Shape

func (f SupplierFunc) NextShape() piece.Shape {
	return f()
}

// Peeker is implemented by suppliers that can report upcoming shapes without
// consuming them.
type Peeker interface {
	Peek(n int) []piece.Shape
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// BagSupplier deals shapes from shuffled bags of all seven, so every shape
// appears once per seven spawns.
type BagSupplier struct {
	rng   *rand.Rand
	queue []piece.Shape
}

// NewBagSupplier creates a bag supplier. A nil rng uses a randomly seeded one.
func NewBagSupplier(rng *rand.Rand) *BagSupplier {
	if rng == nil {
		rng = newRand()
	}
	return &BagSupplier{rng: rng}
}

func (b *BagSupplier) refill() {
	bag := piece.Shapes()
	b.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	b.queue = append(b.queue, bag...)
}

func (b *BagSupplier) NextShape() piece.Shape {
	if len(b.queue) == 0 {
		b.refill()
	}
	s := b.queue[0]
	b.queue = b.queue[1:]
	return s
}

func (b *BagSupplier) Peek(n int) []piece.Shape {
	for len(b.queue) < n {
		b.refill()
	}
	return slices.Clone(b.queue[:n])
}

// RandomSupplier picks every shape independently and uniformly.
type RandomSupplier struct {
	rng *rand.Rand
}

// NewRandomSupplier creates a uniform supplier. A nil rng uses a randomly seeded one.
func NewRandomSupplier(rng *rand.Rand) *RandomSupplier {
	if rng == nil {
		rng = newRand()
	}
	return &RandomSupplier{rng: rng}
}

func (r *RandomSupplier) NextShape() piece.Shape {
	return piece.Shape(r.rng.IntN(piece.ShapeCount))
}

// SequenceSupplier cycles through a fixed list of shapes. It is useful for
// replays and tests.
type SequenceSupplier struct {
	shapes []piece.Shape
	next   int
}

// NewSequenceSupplier panics if shapes is empty.
func NewSequenceSupplier(shapes ...piece.Shape) *SequenceSupplier {
	if len(shapes) == 0 {
		panic("engine: sequence supplier needs at least one shape")
	}
	return &SequenceSupplier{shapes: slices.Clone(shapes)}
}

func (s *SequenceSupplier) NextShape() piece.Shape {
	shape := s.shapes[s.next]
	s.next = (s.next + 1) % len(s.shapes)
	return shape
}

func (s *SequenceSupplier) Peek(n int) []piece.Shape {
	out := make([]piece.Shape, n)
	for i := range out {
		out[i] = s.shapes[(s.next+i)%len(s.shapes)]
	}
	return out
}
