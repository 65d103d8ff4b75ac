package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/piece"
)

const frameInterval = time.Second / 30

var keyActions = map[string]engine.Action{
	"left":  engine.ActionMoveLeft,
	"a":     engine.ActionMoveLeft,
	"h":     engine.ActionMoveLeft,
	"right": engine.ActionMoveRight,
	"d":     engine.ActionMoveRight,
	"l":     engine.ActionMoveRight,
	"down":  engine.ActionMoveDown,
	"s":     engine.ActionMoveDown,
	"j":     engine.ActionMoveDown,
	"up":    engine.ActionRotate,
	"w":     engine.ActionRotate,
	"k":     engine.ActionRotate,
	" ":     engine.ActionHardDrop,
	"c":     engine.ActionHold,
}

var (
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	panelStyle = lipgloss.NewStyle().PaddingLeft(2)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	ghostStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

type model struct {
	engine *engine.Engine
	paused bool
	last   time.Time
	err    error
}

func initialModel(e *engine.Engine) model {
	return model{
		engine: e,
		last:   time.Now(),
	}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.err = m.engine.Reset()
			m.paused = false
		case "p":
			m.paused = !m.paused
		default:
			if a, ok := keyActions[key]; ok && !m.paused && !m.engine.Over() {
				_ = m.engine.Apply(a)
			}
		}
	case TickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.last)
		m.last = now
		if !m.paused && !m.engine.Over() {
			_ = m.engine.Tick(dt)
		}
		return m, tickCmd()
	}
	return m, nil
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func block(c color.RGBA) string {
	return lipgloss.NewStyle().Foreground(hex(c)).Render("██")
}

// renderBoard draws two terminal columns per cell, one line per row.
func renderBoard(s engine.Snapshot) string {
	var b strings.Builder
	for row := 0; row < s.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < s.Columns; col++ {
			switch cell := s.Cell(row, col); {
			case !s.Over && s.IsActive(row, col):
				b.WriteString(block(s.ActiveColor))
			case !cell.Empty():
				b.WriteString(block(cell.Color))
			case !s.Over && s.IsGhost(row, col):
				b.WriteString(ghostStyle.Render("[]"))
			default:
				b.WriteString(emptyStyle.Render(" ."))
			}
		}
	}
	return b.String()
}

// renderShape draws a shape on a 4×3 grid.
func renderShape(s piece.Shape) string {
	var grid [3][4]bool
	for _, off := range s.Offsets() {
		grid[off.DRow+1][off.DCol+1] = true
	}

	lines := make([]string, 0, len(grid))
	for _, row := range grid {
		var b strings.Builder
		for _, filled := range row {
			if filled {
				b.WriteString(block(s.Color()))
			} else {
				b.WriteString("  ")
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func (m model) View() string {
	s := m.engine.Snapshot()

	var side []string
	side = append(side,
		titleStyle.Render("LINES")+fmt.Sprintf("  %d", s.Stats.LinesCleared),
		titleStyle.Render("PIECES")+fmt.Sprintf(" %d", s.Stats.Locked),
		"",
		titleStyle.Render("HOLD"),
	)
	if s.HasHeld {
		side = append(side, renderShape(s.Held))
	} else {
		side = append(side, "-")
	}
	side = append(side, "", titleStyle.Render("NEXT"))
	for _, next := range s.Next {
		side = append(side, renderShape(next))
	}

	switch {
	case s.Over:
		side = append(side, "", alertStyle.Render("GAME OVER"), "r to restart")
	case m.paused:
		side = append(side, "", alertStyle.Render("PAUSED"))
	}
	if m.err != nil {
		side = append(side, "", alertStyle.Render(m.err.Error()))
	}
	side = append(side, "", "←→ move  ↑ rotate  ↓ drop", "space hard drop  c hold", "p pause  q quit")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		boardStyle.Render(renderBoard(s)),
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, side...)),
	)
}
