// Package engine drives the falling-block state machine: it owns the field,
// the active piece, the hold slot and the timers that turn ticks into gravity,
// input throttling and lock delay.
//
// An Engine is not safe for concurrent use. Front ends call Apply and Tick
// from their own update loop and render from Snapshot.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/timer"
)

// Engine is the field controller. The active piece moves through
// Falling → Landed → Locked, after which the next piece spawns.
type Engine struct {
	cfg      Config
	field    *field.Field
	supplier Supplier
	logger   *slog.Logger

	active  *piece.Piece
	held    piece.Shape
	hasHeld bool
	canHold bool
	over    bool

	gravity     *timer.Timer
	moveGuard   *timer.Timer
	rotateGuard *timer.Timer
	lock        *timer.Timer

	stats Stats
}

// New validates cfg, builds an empty field and spawns the first piece.
func New(cfg Config, supplier Supplier) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: nil supplier", ErrInvalidConfig)
	}

	e := &Engine{
		cfg:      cfg,
		field:    field.New(cfg.Rows, cfg.Columns),
		supplier: supplier,
		logger:   slog.New(slog.DiscardHandler),
	}
	e.gravity = timer.New(cfg.GravityInterval, true, e.gravityStep)
	e.moveGuard = timer.New(cfg.MoveRepeat, false, nil)
	e.rotateGuard = timer.New(cfg.RotateRepeat, false, nil)
	e.lock = timer.New(cfg.LockDelay, false, e.lockExpired)

	if err := e.SpawnNextPiece(); err != nil {
		return nil, err
	}
	return e, nil
}

// SetLogger routes engine events to l. Lifecycle events log at debug level,
// game over at info.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	e.logger = l
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Over reports whether the engine reached its terminal state.
func (e *Engine) Over() bool {
	return e.over
}

// CanHold reports whether the active piece may still be swapped into the hold slot.
func (e *Engine) CanHold() bool {
	return e.canHold && !e.over
}

// Held returns the shape in the hold slot, if any.
func (e *Engine) Held() (piece.Shape, bool) {
	return e.held, e.hasHeld
}

// Stats returns a copy of the engine counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Apply performs one player intent. Rejected moves are not errors; the only
// error conditions are the terminal state and an unknown action.
func (e *Engine) Apply(a Action) error {
	if e.over {
		return ErrGameOver
	}

	switch a {
	case ActionMoveLeft:
		e.shift(-1)
	case ActionMoveRight:
		e.shift(1)
	case ActionMoveDown:
		e.softDrop()
	case ActionRotate:
		e.rotate()
	case ActionHold:
		e.Hold()
	case ActionHardDrop:
		return e.HardDrop()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownAction, a)
	}

	if e.over {
		return ErrGameOver
	}
	return nil
}

// Tick advances the engine clock by dt. Input guards always advance. Gravity
// only runs while the active piece is airborne; once it has landed the lock
// delay runs instead, so a landed piece never free-falls through its delay.
func (e *Engine) Tick(dt time.Duration) error {
	if e.over {
		return ErrGameOver
	}

	e.stats.Ticks++
	e.moveGuard.Update(dt)
	e.rotateGuard.Update(dt)

	if e.active.Landed() {
		e.startLockDelay()
		e.lock.Update(dt)
	} else {
		e.gravity.Update(dt)
	}

	if e.over {
		return ErrGameOver
	}
	return nil
}

func (e *Engine) shift(delta int) {
	if e.moveGuard.Active() {
		return
	}
	e.moveGuard.Activate()

	if e.active.MoveHorizontal(delta) {
		e.afterNudge()
	}
}

func (e *Engine) rotate() {
	if e.rotateGuard.Active() {
		return
	}
	e.rotateGuard.Activate()

	if e.active.Rotate() {
		e.afterNudge()
	}
}

// afterNudge lets a landed piece that was moved off its support fall again.
// Moves that keep the piece supported leave the lock delay running; losing
// support cancels it and the next landing starts a fresh one.
func (e *Engine) afterNudge() {
	if !e.active.Landed() || e.active.RefreshLanded() {
		return
	}
	e.lock.Deactivate()
	e.logger.Debug("piece lost support", "shape", e.active.Shape())
}

func (e *Engine) softDrop() {
	if !e.active.MoveDown() {
		e.startLockDelay()
	}
}

func (e *Engine) gravityStep() {
	if !e.active.MoveDown() {
		e.startLockDelay()
	}
}

func (e *Engine) startLockDelay() {
	if e.lock.Active() {
		return
	}
	e.lock.Activate()
	e.logger.Debug("piece landed", "shape", e.active.Shape(), "pivot", e.active.Points()[0])
}

func (e *Engine) lockExpired() {
	if !e.active.RefreshLanded() {
		// Nudged over a gap during the delay; gravity takes over again.
		return
	}
	// A spawn collision is recorded in e.over and reported by Tick.
	_ = e.PlaceActivePiece()
}

// HardDrop drops the active piece as far as it goes and places it.
func (e *Engine) HardDrop() error {
	if e.over {
		return ErrGameOver
	}
	for e.active.MoveDown() {
	}
	return e.PlaceActivePiece()
}

// PlaceActivePiece writes the active piece into the field where it stands,
// clears completed rows and spawns the next piece.
func (e *Engine) PlaceActivePiece() error {
	if e.over {
		return ErrGameOver
	}

	p := e.active
	for _, pt := range p.Points() {
		e.field.Place(pt.Row, pt.Col, p.Color())
	}
	e.stats.Locked++
	e.logger.Debug("piece locked", "shape", p.Shape(), "pivot", p.Points()[0])

	e.CheckFinishedRows()
	return e.SpawnNextPiece()
}

// CheckFinishedRows clears every fully occupied row in a single pass and
// returns how many were removed.
func (e *Engine) CheckFinishedRows() int {
	n := e.field.ClearRows(e.field.FullRows())
	if n == 0 {
		return 0
	}

	e.stats.LinesCleared += n
	e.stats.Clears[min(n, len(e.stats.Clears))-1]++
	e.logger.Debug("rows cleared", "count", n, "total", e.stats.LinesCleared)
	return n
}

// SpawnNextPiece takes the next shape from the supplier and makes it the
// active piece. It re-enables holding. If the spawn cells are occupied the
// engine becomes terminal and ErrGameOver is returned.
func (e *Engine) SpawnNextPiece() error {
	if e.over {
		return ErrGameOver
	}
	if err := e.spawn(e.supplier.NextShape()); err != nil {
		return err
	}
	e.canHold = true
	return nil
}

func (e *Engine) spawn(s piece.Shape) error {
	e.active = piece.New(s, piece.SpawnAnchor(e.cfg.Columns), e.field)
	e.stats.Spawned++
	e.lock.Deactivate()

	if !e.active.Valid() {
		e.over = true
		e.gravity.Deactivate()
		e.logger.Info("game over", "shape", s, "locked", e.stats.Locked, "lines", e.stats.LinesCleared)
		return ErrGameOver
	}

	e.gravity.Activate()
	e.logger.Debug("piece spawned", "shape", s)
	return nil
}

// Hold swaps the active piece into the hold slot. It is allowed once per
// natural spawn and reports whether the swap happened. With an empty slot the
// next supplier shape spawns; otherwise the previously held shape does.
func (e *Engine) Hold() bool {
	if e.over || !e.canHold {
		return false
	}

	released := e.active.Shape()
	next, fromSlot := e.held, e.hasHeld
	e.held, e.hasHeld = released, true
	e.canHold = false
	e.stats.Holds++

	if !fromSlot {
		next = e.supplier.NextShape()
	}
	e.logger.Debug("piece held", "held", released, "next", next)

	// A colliding swap-in ends the game like any other spawn.
	_ = e.spawn(next)
	return true
}

// Reset empties the field and hold slot, clears the terminal state and
// statistics, and spawns a fresh piece.
func (e *Engine) Reset() error {
	e.field.Reset()
	e.hasHeld = false
	e.over = false
	e.stats = Stats{}
	e.gravity.Deactivate()
	e.moveGuard.Deactivate()
	e.rotateGuard.Deactivate()
	e.lock.Deactivate()
	e.logger.Debug("engine reset")
	return e.SpawnNextPiece()
}

// Timers reports the state of the engine's named timers.
func (e *Engine) Timers() []TimerState {
	named := []struct {
		name string
		t    *timer.Timer
	}{
		{"gravity", e.gravity},
		{"move", e.moveGuard},
		{"rotate", e.rotateGuard},
		{"lock", e.lock},
	}

	out := make([]TimerState, len(named))
	for i, n := range named {
		out[i] = TimerState{
			Name:     n.name,
			Active:   n.t.Active(),
			Elapsed:  n.t.Elapsed(),
			Duration: n.t.Duration(),
		}
	}
	return out
}
