// Package debugui provides Dear ImGui inspector windows for a running engine.
// Windows read an engine snapshot each frame and never mutate the engine except
// through its public operations.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

// Item holds a Dear ImGui render function drawn once per frame.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Front ends should not forward keys to the engine while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay collects render items and draws them between the backend's
// BeginFrame and EndFrame.
type Overlay struct {
	items []Item
	input InputState
}

// Add registers a render function.
func (o *Overlay) Add(render func()) {
	o.items = append(o.items, Item{Render: render})
}

// Len returns the number of registered items.
func (o *Overlay) Len() int {
	return len(o.items)
}

// Input returns the capture state recorded by the last Render.
func (o *Overlay) Input() InputState {
	return o.input
}

// Render updates the input state and runs every item.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}

// Spawn adds the standard engine inspector windows to o.
func Spawn(o *Overlay, e *engine.Engine) {
	frames := NewFrameTimer()
	perf := NewPerformanceStats(120)
	timers := NewTimerViewer()
	blocks := NewBlockBrowser(100)
	inspector := NewPieceInspector()
	charts := NewCharts(300)

	o.Add(func() {
		s := e.Snapshot()
		perf.Render(s.Stats, frames.Delta())
		timers.Render(e.Timers())
		blocks.Render(s)
		inspector.Render(s, e)
		charts.Render(s)
	})
}
