package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/engine"
)

type binding struct {
	key    ebiten.Key
	action engine.Action
	// Held bindings fire every frame and rely on the engine's repeat guards.
	held bool
}

var bindings = []binding{
	{ebiten.KeyArrowLeft, engine.ActionMoveLeft, true},
	{ebiten.KeyA, engine.ActionMoveLeft, true},
	{ebiten.KeyArrowRight, engine.ActionMoveRight, true},
	{ebiten.KeyD, engine.ActionMoveRight, true},
	{ebiten.KeyArrowDown, engine.ActionMoveDown, true},
	{ebiten.KeyS, engine.ActionMoveDown, true},
	{ebiten.KeyArrowUp, engine.ActionRotate, true},
	{ebiten.KeyW, engine.ActionRotate, true},
	{ebiten.KeySpace, engine.ActionHardDrop, false},
	{ebiten.KeyC, engine.ActionHold, false},
	{ebiten.KeyShiftLeft, engine.ActionHold, false},
}

// pollActions maps the keyboard state to engine intents, each at most once.
func pollActions(isDown, justPressed func(ebiten.Key) bool) []engine.Action {
	var seen [8]bool
	var out []engine.Action

	for _, b := range bindings {
		if seen[b.action] {
			continue
		}
		fired := justPressed(b.key)
		if b.held {
			fired = isDown(b.key)
		}
		if fired {
			seen[b.action] = true
			out = append(out, b.action)
		}
	}
	return out
}
