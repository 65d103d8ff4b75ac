package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/blockfall/engine"
)

// Charts plots stack height and cleared lines over the last frames.
type Charts struct {
	history int
	height  []float32
	lines   []float32
	offset  int
}

func NewCharts(history int) *Charts {
	return &Charts{
		history: history,
		height:  make([]float32, history),
		lines:   make([]float32, history),
	}
}

// stackHeight is the number of rows between the floor and the highest
// settled block.
func stackHeight(s engine.Snapshot) int {
	for i, c := range s.Cells {
		if !c.Empty() {
			return s.Rows - i/s.Columns
		}
	}
	return 0
}

// unroll returns ring in chronological order, oldest sample first.
func unroll(ring []float32, offset int) []float32 {
	out := make([]float32, len(ring))
	copy(out, ring[offset:])
	copy(out[len(ring)-offset:], ring[:offset])
	return out
}

func (c *Charts) sample(s engine.Snapshot) {
	c.height[c.offset] = float32(stackHeight(s))
	c.lines[c.offset] = float32(s.Stats.LinesCleared)
	c.offset = (c.offset + 1) % c.history
}

func (c *Charts) Render(s engine.Snapshot) {
	c.sample(s)

	imgui.SetNextWindowSizeV(imgui.NewVec2(500, 300), imgui.CondOnce)
	if imgui.BeginV("Charts", nil, 0) {
		if imgui.BeginTabBar("ChartTabs") {
			if imgui.BeginTabItem("Stack Height") {
				samples := unroll(c.height, c.offset)
				if implot.BeginPlotV("Stack Height", imgui.NewVec2(-1, -1), 0) {
					implot.SetupAxesV("Frame", "Rows", 0, 0)
					implot.SetupAxisLimitsV(implot.AxisY1, 0, float64(s.Rows), implot.CondAlways)
					implot.PlotLineFloatPtrInt("height", &samples[0], int32(len(samples)))
					implot.EndPlot()
				}
				imgui.EndTabItem()
			}

			if imgui.BeginTabItem("Lines") {
				samples := unroll(c.lines, c.offset)
				if implot.BeginPlotV("Lines Cleared", imgui.NewVec2(-1, -1), 0) {
					implot.SetupAxesV("Frame", "Lines", 0, implot.AxisFlagsAutoFit)
					implot.PlotLineFloatPtrInt("lines", &samples[0], int32(len(samples)))
					implot.EndPlot()
				}
				imgui.EndTabItem()
			}

			imgui.EndTabBar()
		}
	}
	imgui.End()
}
