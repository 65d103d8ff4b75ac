package engine

//go:generate go tool stringer -type=Action -trimprefix=Action

// Action is a discrete player intent fed to Engine.Apply.
type Action uint8

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionMoveDown
	ActionRotate
	ActionHold
	ActionHardDrop
)
