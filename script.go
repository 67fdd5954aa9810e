package morsetree

import (
	"encoding/json"
	"fmt"
	"os"
)

// scriptStep represents a single action in a replay script.
type scriptStep struct {
	Action string `json:"action"`
	Text   string `json:"text,omitempty"`
	Label  string `json:"label,omitempty"`
	Count  int    `json:"count,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a replay script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"type": true, "undo": true, "reset": true,
	"wait": true, "drain": true, "screenshot": true,
}

// Script sequences typed text, undos and screenshots across frames so a
// session can be replayed headless or in a window. The host advances the
// automaton once per frame; Script only injects input.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	draining  bool
	done      bool

	// Root is the branch a "reset" step reseeds the tree with.
	Root Branch
	// OnScreenshot receives the label of every "screenshot" step.
	OnScreenshot func(label string)
}

// LoadScript parses a JSON replay script. root is used by "reset" steps.
func LoadScript(jsonData []byte, root Branch) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range file.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps, Root: root}, nil
}

// LoadScriptFile reads and parses a replay script from disk.
func LoadScriptFile(path string, root Branch) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return LoadScript(data, root)
}

// Done reports whether every step has executed.
func (s *Script) Done() bool {
	return s.done
}

// Step runs the script for one frame against a. Call it once per frame
// before a.Advance.
func (s *Script) Step(a *Automaton) {
	if s.done {
		return
	}
	// A "drain" step holds the cursor until the symbol queue empties.
	if s.draining {
		if !a.Idle() {
			return
		}
		s.draining = false
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "type":
		a.EmitString(st.Text)
	case "undo":
		n := st.Count
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			a.Undo()
		}
	case "reset":
		a.Reset(s.Root)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "drain":
		s.draining = !a.Idle()
	case "screenshot":
		if s.OnScreenshot != nil {
			s.OnScreenshot(st.Label)
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && !s.draining {
		s.done = true
	}
}

// Replay runs s to completion against a, advancing once per frame, and
// returns the number of frames used. maxFrames <= 0 means no limit.
func (s *Script) Replay(a *Automaton, maxFrames int) int {
	frames := 0
	for !s.Done() && (maxFrames <= 0 || frames < maxFrames) {
		s.Step(a)
		a.Advance()
		frames++
	}
	return frames
}
