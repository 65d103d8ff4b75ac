package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/piece"
)

const cellPixels = 12

type PieceInspector struct {
	showGhost bool
}

func NewPieceInspector() *PieceInspector {
	return &PieceInspector{showGhost: true}
}

func shapeList(shapes []piece.Shape) string {
	if len(shapes) == 0 {
		return "-"
	}
	names := make([]string, len(shapes))
	for i, s := range shapes {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}

// Render shows the active piece, hold slot and preview. Reset and Hard Drop
// act on e directly.
func (pi *PieceInspector) Render(s engine.Snapshot, e *engine.Engine) {
	if !imgui.BeginV("Piece Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if s.Over {
		imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), "GAME OVER")
	}

	imgui.PushStyleColorVec4(imgui.ColText, rgbaVec4(s.ActiveColor))
	imgui.Text(fmt.Sprintf("■ Active: %s", s.ActiveShape))
	imgui.PopStyleColor()

	imgui.Indent()
	for i, p := range s.Active {
		label := "block"
		if i == 0 {
			label = "pivot"
		}
		imgui.Text(fmt.Sprintf("%s: row %d, col %d", label, p.Row, p.Col))
	}
	imgui.Text(fmt.Sprintf("Landed: %t", s.Landed))
	imgui.Unindent()

	imgui.Separator()
	if s.HasHeld {
		imgui.Text(fmt.Sprintf("Held: %s", s.Held))
	} else {
		imgui.Text("Held: -")
	}
	imgui.Text(fmt.Sprintf("Can Hold: %t", s.CanHold))
	imgui.Text(fmt.Sprintf("Next: %s", shapeList(s.Next)))

	imgui.Separator()
	if imgui.Button("Hard Drop") && !s.Over {
		_ = e.HardDrop()
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		_ = e.Reset()
	}

	if imgui.TreeNodeStr("Field") {
		imgui.Checkbox("Ghost", &pi.showGhost)
		pi.drawField(s)
		imgui.TreePop()
	}

	imgui.End()
}

func (pi *PieceInspector) drawField(s engine.Snapshot) {
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()

	empty := imgui.ColorU32Vec4(imgui.NewVec4(0.15, 0.15, 0.15, 1.0))
	ghost := imgui.ColorU32Vec4(imgui.NewVec4(1.0, 1.0, 1.0, 0.25))
	active := imgui.ColorU32Vec4(rgbaVec4(s.ActiveColor))

	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Columns; col++ {
			color := empty
			switch {
			case s.IsActive(row, col):
				color = active
			case !s.Cell(row, col).Empty():
				color = imgui.ColorU32Vec4(rgbaVec4(s.Cell(row, col).Color))
			case pi.showGhost && s.IsGhost(row, col):
				color = ghost
			}

			x := origin.X + float32(col*cellPixels)
			y := origin.Y + float32(row*cellPixels)
			drawList.AddRectFilled(imgui.NewVec2(x, y), imgui.NewVec2(x+cellPixels-1, y+cellPixels-1), color)
		}
	}

	imgui.Dummy(imgui.NewVec2(float32(s.Columns*cellPixels), float32(s.Rows*cellPixels)))
}
