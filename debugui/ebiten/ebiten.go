// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the Ebiten window and an ImGui context that does
// not persist window layout to imgui.ini.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Frame runs the overlay inside one ImGui frame. Call it from Game.Update.
func (b *ImguiBackend) Frame(o *debugui.Overlay) {
	b.BeginFrame()
	o.Render()
	b.EndFrame()
}

// Present draws the ImGui overlay on top of screen. Call it last in Game.Draw.
func (b *ImguiBackend) Present(screen *ebiten.Image) {
	b.Draw(screen)
}
