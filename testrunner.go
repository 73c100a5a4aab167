package mindmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Shift   bool    `json:"shift,omitempty"`
	Text    string  `json:"text,omitempty"`
	Key     string  `json:"key,omitempty"`
	Notches float64 `json:"notches,omitempty"`
	Path    string  `json:"path,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var scriptKeys = map[string]Key{
	"enter":     KeyEnter,
	"backspace": KeyBackspace,
	"escape":    KeyEscape,
	"reset":     KeyReset,
	"copy":      KeyCopy,
	"paste":     KeyPaste,
}

// TestRunner sequences injected input across frames for automated replays
// of editing sessions. Attach to an Editor via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Editor via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "rightclick", "ctrlclick", "drag", "type", "wheel", "wait":
		case "key":
			if _, ok := scriptKeys[strings.ToLower(st.Key)]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		case "save":
			if st.Path == "" {
				return nil, fmt.Errorf("parse test script: step %d: save needs a path", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the editor. The runner's step
// method is called before input is read each frame.
func (e *Editor) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first error raised by a save step, if any.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame.
func (r *TestRunner) step(e *Editor) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
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
	case "click":
		e.InjectClick(st.X, st.Y)
	case "rightclick":
		e.InjectRightClick(st.X, st.Y)
	case "ctrlclick":
		e.InjectCtrlClick(st.X, st.Y)
	case "drag":
		var mods KeyModifiers
		if st.Shift {
			mods = ModShift
		}
		e.InjectDragMods(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, mods)
	case "type":
		e.InjectType(st.Text)
	case "key":
		e.InjectKey(scriptKeys[strings.ToLower(st.Key)])
	case "wheel":
		e.InjectWheel(st.X, st.Y, st.Notches)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "save":
		if err := SaveFile(st.Path, e.graph, e.cam); err != nil && r.err == nil {
			r.err = err
			logger().Error("test script save failed", "step", st.Label, "path", st.Path, "err", err)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
