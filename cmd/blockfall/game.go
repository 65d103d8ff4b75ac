package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/piece"
)

const (
	CellSize = 30
	Padding  = 20
	Sidebar  = 200
)

var (
	backgroundColor = color.RGBA{28, 28, 28, 255}
	boardColor      = color.RGBA{48, 48, 48, 255}
	lineColor       = color.RGBA{255, 255, 255, 30}
	ghostColor      = color.RGBA{255, 255, 255, 60}
)

type Game struct {
	engine  *engine.Engine
	backend *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay
	logger  *slog.Logger

	showUI bool
	paused bool
}

func windowSize(cfg engine.Config) (int, int) {
	return cfg.Columns*CellSize + 3*Padding + Sidebar, cfg.Rows*CellSize + 2*Padding
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showUI = !g.showUI
	}

	if g.showUI {
		g.backend.Frame(g.overlay)
		if g.overlay.Input().WantCaptureKeyboard {
			return nil
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.logger.Info("restarting")
		return g.engine.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused || g.engine.Over() {
		return nil
	}

	for _, a := range pollActions(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed) {
		if err := g.engine.Apply(a); errors.Is(err, engine.ErrGameOver) {
			return nil
		} else if err != nil {
			return err
		}
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	if err := g.engine.Tick(dt); err != nil && !errors.Is(err, engine.ErrGameOver) {
		return err
	}
	return nil
}

func drawCell(screen *ebiten.Image, row, col int, c color.Color) {
	x := float32(Padding + col*CellSize)
	y := float32(Padding + row*CellSize)
	vector.DrawFilledRect(screen, x, y, CellSize, CellSize, c, false)
	vector.StrokeRect(screen, x, y, CellSize, CellSize, 1, color.Black, false)
}

func drawShape(screen *ebiten.Image, s piece.Shape, x, y int) {
	for _, off := range s.Offsets() {
		px := float32(x + (off.DCol+1)*CellSize/2)
		py := float32(y + (off.DRow+1)*CellSize/2)
		vector.DrawFilledRect(screen, px, py, CellSize/2, CellSize/2, s.Color(), false)
		vector.StrokeRect(screen, px, py, CellSize/2, CellSize/2, 1, color.Black, false)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.engine.Snapshot()
	screen.Fill(backgroundColor)

	boardW := float32(s.Columns * CellSize)
	boardH := float32(s.Rows * CellSize)
	vector.DrawFilledRect(screen, Padding, Padding, boardW, boardH, boardColor, false)

	for col := 1; col < s.Columns; col++ {
		x := float32(Padding + col*CellSize)
		vector.StrokeLine(screen, x, Padding, x, Padding+boardH, 1, lineColor, false)
	}
	for row := 1; row < s.Rows; row++ {
		y := float32(Padding + row*CellSize)
		vector.StrokeLine(screen, Padding, y, Padding+boardW, y, 1, lineColor, false)
	}

	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Columns; col++ {
			if c := s.Cell(row, col); !c.Empty() {
				drawCell(screen, row, col, c.Color)
			}
		}
	}

	if !s.Over {
		for _, p := range s.Ghost {
			vector.DrawFilledRect(screen, float32(Padding+p.Col*CellSize), float32(Padding+p.Row*CellSize), CellSize, CellSize, ghostColor, false)
		}
		for _, p := range s.Active {
			drawCell(screen, p.Row, p.Col, s.ActiveColor)
		}
	}
	vector.StrokeRect(screen, Padding-2, Padding-2, boardW+4, boardH+4, 2, color.Gray{Y: 128}, false)

	textX := 2*Padding + s.Columns*CellSize
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES  %d", s.Stats.LinesCleared), textX, Padding)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("PIECES %d", s.Stats.Locked), textX, Padding+20)

	ebitenutil.DebugPrintAt(screen, "HOLD", textX, Padding+60)
	if s.HasHeld {
		drawShape(screen, s.Held, textX, Padding+80)
	}

	ebitenutil.DebugPrintAt(screen, "NEXT", textX, Padding+160)
	for i, next := range s.Next {
		drawShape(screen, next, textX, Padding+180+i*70)
	}

	switch {
	case s.Over:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R to restart", Padding+10, Padding+int(boardH)/2)
	case g.paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", Padding+10, Padding+int(boardH)/2)
	}

	if g.showUI {
		g.backend.Present(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
