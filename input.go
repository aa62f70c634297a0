package adventure

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the input collaborator. Poll is called once at the start of every
// frame; the queries then describe that frame.
type Input interface {
	// Poll drains pending device events and reports whether the user asked
	// to quit.
	Poll() (quit bool)
	// Pressed reports whether a gameplay action is held (level-triggered).
	Pressed(a Action) bool
	// MouseJustPressed reports whether b went down this frame.
	MouseJustPressed(b MouseButton) bool
	// MousePosition returns the cursor in screen coordinates.
	MousePosition() Point
	// Clicks returns the primary-button clicks of this frame in screen
	// coordinates.
	Clicks() []Point
}

// KeyBindings maps each action to the keys that trigger it.
type KeyBindings map[Action][]ebiten.Key

// DefaultKeyBindings returns arrows (plus W, S and D) for movement, A or
// Space for attack and B for bomb. A attacks, so moving left is arrow-only.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		ActionUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
		ActionDown:   {ebiten.KeyArrowDown, ebiten.KeyS},
		ActionLeft:   {ebiten.KeyArrowLeft},
		ActionRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
		ActionAttack: {ebiten.KeyA, ebiten.KeySpace},
		ActionBomb:   {ebiten.KeyB},
	}
}

// EbitenInput reads the keyboard and mouse through Ebitengine.
type EbitenInput struct {
	Bindings KeyBindings
	QuitKey  ebiten.Key

	mouse  Point
	clicks []Point
}

// NewEbitenInput creates an input reader with the given bindings. Nil uses
// DefaultKeyBindings.
func NewEbitenInput(b KeyBindings) *EbitenInput {
	if b == nil {
		b = DefaultKeyBindings()
	}
	return &EbitenInput{Bindings: b, QuitKey: ebiten.KeyEscape}
}

var _ Input = (*EbitenInput)(nil)

// Poll samples the cursor and this frame's clicks. Closing the window or
// pressing the quit key requests a quit.
func (in *EbitenInput) Poll() bool {
	mx, my := ebiten.CursorPosition()
	in.mouse = Point{mx, my}
	in.clicks = in.clicks[:0]
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.clicks = append(in.clicks, in.mouse)
	}
	return ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(in.QuitKey)
}

// Pressed reports whether any key bound to a is held.
func (in *EbitenInput) Pressed(a Action) bool {
	for _, k := range in.Bindings[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// MouseJustPressed reports whether b went down this frame.
func (in *EbitenInput) MouseJustPressed(b MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(toEbitenButton(b))
}

// MousePosition returns the cursor position sampled by Poll.
func (in *EbitenInput) MousePosition() Point { return in.mouse }

// Clicks returns the primary clicks sampled by Poll.
func (in *EbitenInput) Clicks() []Point { return in.clicks }

func toEbitenButton(b MouseButton) ebiten.MouseButton {
	switch b {
	case MouseButtonRight:
		return ebiten.MouseButtonRight
	case MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}
