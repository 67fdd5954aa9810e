package morsetree

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "type", "text": "SOS"},
			{"action": "drain"},
			{"action": "screenshot", "label": "sos"},
			{"action": "undo", "count": 2},
			{"action": "wait", "frames": 3},
			{"action": "reset"}
		]
	}`)
	s, err := LoadScript(data, referenceRoot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(s.steps))
	}
	if s.steps[0].Action != "type" || s.steps[0].Text != "SOS" {
		t.Error("step 0 mismatch")
	}
	if s.steps[3].Count != 2 || s.steps[4].Frames != 3 {
		t.Error("step 3/4 mismatch")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":       `not json`,
		"empty":          `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "click"}]}`,
	}
	for name, data := range cases {
		if _, err := LoadScript([]byte(data), referenceRoot()); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	if err := os.WriteFile(path, []byte(`{"steps":[{"action":"type","text":"E"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScriptFile(path, referenceRoot()); err != nil {
		t.Fatalf("LoadScriptFile: %v", err)
	}
	if _, err := LoadScriptFile(path+".missing", referenceRoot()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScriptDrainHoldsCursor(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "type", "text": "E"},
		{"action": "drain"},
		{"action": "screenshot", "label": "grown"}
	]}`)
	s, err := LoadScript(data, referenceRoot())
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	var atShot int
	a := newReferenceAutomaton()
	s.OnScreenshot = func(label string) {
		labels = append(labels, label)
		atShot = a.SegmentCount()
	}

	frames := s.Replay(a, 100)
	if !s.Done() {
		t.Fatalf("script not done after %d frames", frames)
	}
	if !slices.Equal(labels, []string{"grown"}) {
		t.Errorf("labels = %v, want [grown]", labels)
	}
	if atShot != 6 {
		t.Errorf("screenshot saw %d segments, want 6 after draining", atShot)
	}
}

func TestScriptWaitAndUndo(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "type", "text": "ET"},
		{"action": "wait", "frames": 3},
		{"action": "undo", "count": 2}
	]}`)
	s, err := LoadScript(data, referenceRoot())
	if err != nil {
		t.Fatal(err)
	}
	a := newReferenceAutomaton()

	s.Step(a) // type
	if a.TypedText() != "ET" {
		t.Fatalf("text = %q, want ET", a.TypedText())
	}
	s.Step(a) // wait starts; counts as one frame
	s.Step(a)
	s.Step(a)
	if a.HistoryLen() != 2 {
		t.Fatal("undo ran before the wait elapsed")
	}
	s.Step(a) // undo x2
	if a.TypedText() != "" || a.HistoryLen() != 0 {
		t.Errorf("text=%q history=%d, want both undone", a.TypedText(), a.HistoryLen())
	}
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestScriptReset(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps":[{"action":"type","text":"S"},{"action":"drain"},{"action":"reset"}]}`), referenceRoot())
	if err != nil {
		t.Fatal(err)
	}
	a := newReferenceAutomaton()
	s.Replay(a, 0)
	if a.SegmentCount() != 1 || a.TypedText() != "" {
		t.Errorf("segments=%d text=%q after reset step", a.SegmentCount(), a.TypedText())
	}
}
