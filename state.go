package adventure

import "time"

// GameState is one phase of the game. The engine is passed to every hook
// rather than stored, so states hold no reference back to it.
//
// Per frame the engine calls HandleInput, Update and Render, each at most
// once and in that order. When a transition is staged, the old state's
// OnExit runs at the next frame boundary, then the new state's Initialize
// and OnEnter, before that frame's input.
type GameState interface {
	Name() string
	Initialize(e *Engine)
	OnEnter(e *Engine)
	OnExit(e *Engine)
	HandleInput(e *Engine, in Input, dt time.Duration)
	Update(e *Engine, dt time.Duration)
	Render(e *Engine, r Renderer)
}
