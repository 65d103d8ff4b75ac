package engine

import (
	"fmt"
	"time"
)

const (
	MinRows    = 4
	MinColumns = 5
)

// Config holds the board dimensions and timing of an Engine.
type Config struct {
	Rows    int
	Columns int

	// GravityInterval is the delay between automatic one-row drops.
	GravityInterval time.Duration
	// MoveRepeat throttles horizontal moves while a direction is held.
	MoveRepeat time.Duration
	// RotateRepeat throttles rotations while the rotate intent is held.
	RotateRepeat time.Duration
	// LockDelay is how long a landed piece may still be nudged before it locks.
	LockDelay time.Duration

	// Preview is the number of upcoming shapes reported in snapshots when the
	// supplier can peek ahead.
	Preview int
}

// DefaultConfig returns a classic 20×10 board.
func DefaultConfig() Config {
	return Config{
		Rows:            20,
		Columns:         10,
		GravityInterval: 200 * time.Millisecond,
		MoveRepeat:      200 * time.Millisecond,
		RotateRepeat:    200 * time.Millisecond,
		LockDelay:       500 * time.Millisecond,
		Preview:         3,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Rows < MinRows {
		return fmt.Errorf("%w: rows %d below minimum %d", ErrInvalidConfig, c.Rows, MinRows)
	}
	if c.Columns < MinColumns {
		return fmt.Errorf("%w: columns %d below minimum %d", ErrInvalidConfig, c.Columns, MinColumns)
	}
	if c.GravityInterval <= 0 {
		return fmt.Errorf("%w: gravity interval must be positive", ErrInvalidConfig)
	}
	if c.MoveRepeat < 0 || c.RotateRepeat < 0 || c.LockDelay < 0 {
		return fmt.Errorf("%w: negative repeat or lock delay", ErrInvalidConfig)
	}
	if c.Preview < 0 {
		return fmt.Errorf("%w: negative preview count", ErrInvalidConfig)
	}
	return nil
}
