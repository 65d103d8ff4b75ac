package engine

import "errors"

var (
	// ErrGameOver is returned once a new piece could not be spawned because
	// its cells were already occupied. The engine stays terminal until Reset.
	ErrGameOver = errors.New("game over")

	ErrInvalidConfig = errors.New("invalid engine config")
	ErrUnknownAction = errors.New("unknown action")
)
