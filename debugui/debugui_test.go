package debugui

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallEngine(t *testing.T, shapes ...piece.Shape) *engine.Engine {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Rows = 6
	cfg.Columns = 5
	e, err := engine.New(cfg, engine.NewSequenceSupplier(shapes...))
	require.NoError(t, err)
	return e
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		ts   engine.TimerState
		want float32
	}{
		{"inactive", engine.TimerState{Elapsed: time.Second, Duration: 2 * time.Second}, 0},
		{"half", engine.TimerState{Active: true, Elapsed: time.Second, Duration: 2 * time.Second}, 0.5},
		{"clamped", engine.TimerState{Active: true, Elapsed: 3 * time.Second, Duration: time.Second}, 1},
		{"zero duration", engine.TimerState{Active: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, progress(tt.ts), 1e-6)
		})
	}
}

func TestCollectBlocks(t *testing.T) {
	e := smallEngine(t, piece.ShapeT)
	assert.Empty(t, collectBlocks(e.Snapshot()))

	require.NoError(t, e.HardDrop())
	blocks := collectBlocks(e.Snapshot())
	require.Len(t, blocks, 4)

	positions := make([][2]int, len(blocks))
	ids := map[uint32]bool{}
	for i, b := range blocks {
		positions[i] = [2]int{b.Row, b.Col}
		assert.Equal(t, piece.ShapeT.Color(), b.Color)
		ids[uint32(b.ID)] = true
	}
	assert.Equal(t, [][2]int{{4, 2}, {5, 1}, {5, 2}, {5, 3}}, positions)
	assert.Len(t, ids, 4)
	assert.False(t, ids[0])
}

func TestBlockBrowserSortAndFilter(t *testing.T) {
	e := smallEngine(t, piece.ShapeT)
	require.NoError(t, e.HardDrop())

	bb := NewBlockBrowser(10)
	bb.rebuildCacheIfNeeded(e.Snapshot())
	require.Len(t, bb.blocks, 4)

	bb.sortColumn = 2
	bb.sortAscending = false
	bb.sortBlocks()
	assert.Equal(t, 3, bb.blocks[0].Col)
	assert.Equal(t, 1, bb.blocks[3].Col)

	bb.filterText = "5,"
	assert.Len(t, bb.filtered(), 3)

	bb.filterText = "#873cbe"
	assert.Len(t, bb.filtered(), 4)

	bb.filterText = ""
	assert.Len(t, bb.filtered(), 4)
}

func TestBlockBrowserRebuildsOnlyOnChange(t *testing.T) {
	e := smallEngine(t, piece.ShapeO)
	bb := NewBlockBrowser(10)

	bb.rebuildCacheIfNeeded(e.Snapshot())
	assert.Empty(t, bb.blocks)

	bb.blocks = append(bb.blocks, BlockInfo{ID: 99})
	require.NoError(t, e.Tick(time.Millisecond))
	bb.rebuildCacheIfNeeded(e.Snapshot())
	assert.Len(t, bb.blocks, 1, "unchanged field keeps the cache")

	require.NoError(t, e.HardDrop())
	bb.rebuildCacheIfNeeded(e.Snapshot())
	assert.Len(t, bb.blocks, 4)
}

func TestStackHeight(t *testing.T) {
	e := smallEngine(t, piece.ShapeT)
	assert.Equal(t, 0, stackHeight(e.Snapshot()))

	require.NoError(t, e.HardDrop())
	assert.Equal(t, 2, stackHeight(e.Snapshot()))
}

func TestUnroll(t *testing.T) {
	ring := []float32{1, 2, 3, 4}
	assert.Equal(t, []float32{1, 2, 3, 4}, unroll(ring, 0))
	assert.Equal(t, []float32{2, 3, 4, 1}, unroll(ring, 1))
	assert.Equal(t, []float32{4, 1, 2, 3}, unroll(ring, 3))
}

func TestChartsSample(t *testing.T) {
	e := smallEngine(t, piece.ShapeT)
	c := NewCharts(3)

	c.sample(e.Snapshot())
	require.NoError(t, e.HardDrop())
	c.sample(e.Snapshot())

	assert.Equal(t, []float32{0, 0, 2}, unroll(c.height, c.offset))
}

func TestPerformanceStatsAverage(t *testing.T) {
	ps := NewPerformanceStats(4)
	ps.record(10 * time.Millisecond)
	ps.record(10 * time.Millisecond)
	assert.InDelta(t, 5.0, ps.averageFrameTime(), 1e-4)

	for range 4 {
		ps.record(20 * time.Millisecond)
	}
	assert.InDelta(t, 20.0, ps.averageFrameTime(), 1e-4)
	assert.Equal(t, 2, ps.frameIndex)
}

func TestShapeList(t *testing.T) {
	assert.Equal(t, "-", shapeList(nil))
	assert.Equal(t, "T O I", shapeList([]piece.Shape{piece.ShapeT, piece.ShapeO, piece.ShapeI}))
}

func TestOverlayAdd(t *testing.T) {
	var o Overlay
	o.Add(func() {})
	Spawn(&o, smallEngine(t, piece.ShapeI))
	assert.Equal(t, 2, o.Len())
	assert.Equal(t, InputState{}, o.Input())
}

func TestFrameTimer(t *testing.T) {
	ft := NewFrameTimer()
	assert.GreaterOrEqual(t, ft.Delta(), time.Duration(0))
}
