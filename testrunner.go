package adventure

import (
	"encoding/json"
	"fmt"
)

// playStep is one entry of a play-through script.
type playStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Key    string `json:"key,omitempty"`
	State  string `json:"state,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type playScript struct {
	Steps []playStep `json:"steps"`
}

// TestRunner drives a ScriptedInput from a JSON play-through script, one
// step per frame. Call Step once per frame before Engine.Frame.
//
// Actions:
//
//	hold, release   {key}     press or let go of a gameplay action
//	click           {x, y}    left click at screen coordinates
//	wait            {frames}  idle for a number of frames
//	wait_state      {state}   idle until the named game state is active
//	screenshot      {label}   capture the next rendered frame
//	quit                      request a quit
type TestRunner struct {
	steps     []playStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON play-through script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script playScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("adventure: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("adventure: parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "hold", "release":
			if _, ok := ParseAction(st.Key); !ok {
				return nil, fmt.Errorf("adventure: test script step %d: unknown key %q", i, st.Key)
			}
		case "wait_state":
			if st.State == "" {
				return nil, fmt.Errorf("adventure: test script step %d: wait_state needs a state", i)
			}
		case "click", "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("adventure: test script step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. state is the name of the active
// game state; shoot, which may be nil, receives screenshot labels.
func (r *TestRunner) Step(in *ScriptedInput, state string, shoot func(label string)) {
	if r.done {
		return
	}
	// Injected clicks are delivered one per frame; let them drain first.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	if st.Action == "wait_state" && st.State != state {
		return
	}
	r.cursor++

	switch st.Action {
	case "screenshot":
		if shoot != nil {
			shoot(st.Label)
		}
	case "click":
		in.InjectClick(st.X, st.Y)
	case "hold":
		a, _ := ParseAction(st.Key)
		in.Hold(a)
	case "release":
		a, _ := ParseAction(st.Key)
		in.Release(a)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		in.RequestQuit()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
