package adventure

// syntheticClick is a single injected mouse press. Screen coordinates are
// used, matching what a player sees in screenshots; the engine converts them
// to world coordinates exactly like real clicks.
type syntheticClick struct {
	pos    Point
	button MouseButton
}

// ScriptedInput is an Input driven by code instead of devices. Actions are
// held until released; clicks are queued and delivered one per frame.
type ScriptedInput struct {
	held    [actionCount]bool
	queue   []syntheticClick
	current *syntheticClick
	mouse   Point
	quit    bool
	clicks  []Point
}

var _ Input = (*ScriptedInput)(nil)

// NewScriptedInput creates an input with nothing held.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{}
}

// Hold presses a until Release is called.
func (in *ScriptedInput) Hold(a Action) {
	if a < actionCount {
		in.held[a] = true
	}
}

// Release lets go of a.
func (in *ScriptedInput) Release(a Action) {
	if a < actionCount {
		in.held[a] = false
	}
}

// ReleaseAll lets go of every action.
func (in *ScriptedInput) ReleaseAll() {
	in.held = [actionCount]bool{}
}

// InjectClick queues a left click at the given screen coordinates. It is
// delivered by the next Poll that has no earlier click pending.
func (in *ScriptedInput) InjectClick(x, y int) {
	in.InjectButton(x, y, MouseButtonLeft)
}

// InjectButton queues a press of b at the given screen coordinates.
func (in *ScriptedInput) InjectButton(x, y int, b MouseButton) {
	in.queue = append(in.queue, syntheticClick{pos: Point{x, y}, button: b})
}

// Pending returns how many injected clicks have not been delivered yet.
func (in *ScriptedInput) Pending() int { return len(in.queue) }

// MoveMouse sets the cursor position without clicking.
func (in *ScriptedInput) MoveMouse(x, y int) {
	in.mouse = Point{x, y}
}

// RequestQuit makes the next Poll report a quit.
func (in *ScriptedInput) RequestQuit() { in.quit = true }

// Poll pops one queued click, if any, and reports a requested quit.
func (in *ScriptedInput) Poll() bool {
	in.current = nil
	in.clicks = in.clicks[:0]
	if len(in.queue) > 0 {
		c := in.queue[0]
		copy(in.queue, in.queue[1:])
		in.queue = in.queue[:len(in.queue)-1]
		in.current = &c
		in.mouse = c.pos
		if c.button == MouseButtonLeft {
			in.clicks = append(in.clicks, c.pos)
		}
	}
	quit := in.quit
	in.quit = false
	return quit
}

// Pressed reports whether a is held.
func (in *ScriptedInput) Pressed(a Action) bool {
	return a < actionCount && in.held[a]
}

// MouseJustPressed reports whether this frame's injected click used b.
func (in *ScriptedInput) MouseJustPressed(b MouseButton) bool {
	return in.current != nil && in.current.button == b
}

// MousePosition returns the cursor position.
func (in *ScriptedInput) MousePosition() Point { return in.mouse }

// Clicks returns this frame's primary clicks.
func (in *ScriptedInput) Clicks() []Point { return in.clicks }
