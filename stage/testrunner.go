package stage

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Delta   float64 `json:"delta,omitempty"`
	Offset  float64 `json:"offset,omitempty"`
	Section int     `json:"section,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"scroll":     true,
	"scrollTo":   true,
	"section":    true,
	"swipe":      true,
	"resize":     true,
	"wait":       true,
}

// TestRunner sequences injected scroll events, resizes and screenshots
// across frames for automated visual testing. Attach to a Stage via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script such as
//
//	{"steps": [
//	  {"action": "scrollTo", "offset": 600},
//	  {"action": "screenshot", "label": "mid-transition"},
//	  {"action": "section", "section": 3},
//	  {"action": "wait", "frames": 40},
//	  {"action": "resize", "height": 600}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the stage. The runner advances one
// step per Update, before input is processed.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Let injected scrolls and section animations finish first.
	if len(s.injectQueue) > 0 || s.viewport.Scrolling() {
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
		s.Screenshot(st.Label)
	case "scroll":
		s.InjectScroll(st.Delta)
	case "scrollTo":
		s.InjectScrollTo(st.Offset)
	case "section":
		s.InjectSection(st.Section)
	case "swipe":
		s.InjectSwipe(st.Delta, st.Frames)
	case "resize":
		s.InjectResize(st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
