package atelier

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "trace", "fromX": 100, "fromY": 300, "toX": 700, "toY": 320, "frames": 30},
		{"action": "wheel", "notches": 3},
		{"action": "wait", "frames": 90},
		{"action": "screenshot", "label": "scrolled"}
	]}`))
	if err != nil {
		t.Fatalf("LoadTestScript: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(runner.steps))
	}
	if st := runner.steps[0]; st.FromX != 100 || st.ToY != 320 || st.Frames != 30 {
		t.Errorf("trace step = %+v", st)
	}
	if runner.steps[1].Notches != 3 {
		t.Errorf("wheel step = %+v", runner.steps[1])
	}
	if runner.Done() {
		t.Error("fresh runner reports done")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    error
		wantMsg string
	}{
		{"malformed", `{"steps": [`, nil, "parse test script"},
		{"empty", `{"steps": []}`, ErrEmptyScript, ""},
		{"unknown action", `{"steps": [{"action": "drag"}]}`, nil, `unknown action "drag"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

// runFrame does what Update does, without polling ebiten.
func runFrame(p *Page) {
	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	in, _ := p.nextInjected()
	p.step(in, tick)
}

func TestTestRunnerSequencing(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 100, "y": 200},
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	p, _ := newTestPage(t, pageLayout)
	p.SetTestRunner(runner)

	runFrame(p)
	if len(p.injectQueue) != 1 {
		t.Fatalf("queue after frame 1 = %d, want 1", len(p.injectQueue))
	}
	for i := 0; i < 4; i++ {
		runFrame(p)
	}
	if len(p.screenshotQueue) != 0 || runner.Done() {
		t.Fatal("screenshot taken before the wait finished")
	}
	runFrame(p)
	if len(p.screenshotQueue) != 1 || p.screenshotQueue[0] != "after" {
		t.Errorf("screenshots = %v, want [after]", p.screenshotQueue)
	}
	if !runner.Done() {
		t.Error("runner not done after the last step")
	}
}

func TestTestRunnerScrollsPage(t *testing.T) {
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wheel", "notches": 2},
		{"action": "wait", "frames": 90}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	p, _ := newTestPage(t, pageLayout)
	p.SetTestRunner(runner)
	for i := 0; i < 120 && !runner.Done(); i++ {
		runFrame(p)
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if p.Scroller().Scroll() != 200 {
		t.Errorf("scroll = %v, want 200", p.Scroller().Scroll())
	}
}
