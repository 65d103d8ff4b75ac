package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
)

type TimerViewer struct {
	showInactive bool
}

func NewTimerViewer() *TimerViewer {
	return &TimerViewer{showInactive: true}
}

// progress is the fraction of the timer's duration already elapsed.
func progress(ts engine.TimerState) float32 {
	if !ts.Active || ts.Duration <= 0 {
		return 0
	}
	return min(float32(ts.Elapsed)/float32(ts.Duration), 1)
}

func (tv *TimerViewer) Render(timers []engine.TimerState) {
	if !imgui.BeginV("Timers", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Checkbox("Show inactive", &tv.showInactive)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("TimerTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Timer")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Elapsed")
		imgui.TableSetupColumn("Duration")
		imgui.TableHeadersRow()

		for _, ts := range timers {
			if !ts.Active && !tv.showInactive {
				continue
			}
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(ts.Name)

			imgui.TableNextColumn()
			if ts.Active {
				imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "running")
			} else {
				imgui.Text("idle")
			}

			imgui.TableNextColumn()
			imgui.Text(ts.Elapsed.String())

			imgui.TableNextColumn()
			imgui.Text(ts.Duration.String())

			barWidth := progress(ts) * 80.0
			if barWidth > 0 {
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("%d timers", len(timers)))
	imgui.End()
}
