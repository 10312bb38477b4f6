package atelier

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadTestScript for a script without steps.
var ErrEmptyScript = errors.New("no steps")

// testStep is a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Notches float64 `json:"notches,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true, "move": true, "click": true, "trace": true,
	"wheel": true, "escape": true, "wait": true,
}

// TestRunner replays a scripted sequence of input and screenshots, one step
// per frame, for automated visual checks of a page.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script:
//
//	{"steps": [
//	  {"action": "trace", "fromX": 100, "fromY": 300, "toX": 700, "toY": 320, "frames": 30},
//	  {"action": "screenshot", "label": "trail"},
//	  {"action": "wheel", "notches": 3},
//	  {"action": "wait", "frames": 90}
//	]}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrEmptyScript)
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner; it is stepped at the start of every
// Update.
func (p *Page) SetTestRunner(r *TestRunner) {
	p.testRunner = r
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(p *Page) {
	if r.done || len(p.injectQueue) > 0 {
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
	r.cursor++

	switch st.Action {
	case "screenshot":
		p.Screenshot(st.Label)
	case "move":
		p.InjectMove(st.X, st.Y)
	case "click":
		p.InjectClick(st.X, st.Y)
	case "trace":
		p.InjectTrace(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		p.InjectWheel(st.Notches)
	case "escape":
		p.InjectEscape()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 {
		r.done = true
	}
}
