package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// record stores a frame time in milliseconds.
func (ps *PerformanceStats) record(dt time.Duration) {
	ps.frameHistory[ps.frameIndex] = float32(dt.Seconds() * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

func (ps *PerformanceStats) averageFrameTime() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(stats engine.Stats, dt time.Duration) {
	ps.record(dt)

	if !imgui.BeginV("Engine Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Spawned: %d", stats.Spawned))
	imgui.Text(fmt.Sprintf("Locked: %d", stats.Locked))
	imgui.Text(fmt.Sprintf("Holds: %d", stats.Holds))
	imgui.Text(fmt.Sprintf("Lines Cleared: %d", stats.LinesCleared))

	avg := ps.averageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Line Clears") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ClearsTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Rows")
			imgui.TableSetupColumn("Placements")
			imgui.TableHeadersRow()

			for i, n := range stats.Clears {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", i+1))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", n))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall time between frames. The engine itself only sees
// the durations it is handed.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) Delta() time.Duration {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime)
	ft.lastFrameTime = now
	return delta
}
