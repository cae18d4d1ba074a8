package battery

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	r, err := LoadScript([]byte(`
steps:
  - action: navigate
    page: about
  - action: wait
    frames: 3
  - action: screenshot
    label: about page
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 3 || r.steps[0].Page != "about" || r.steps[1].Frames != 3 {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestLoadScriptJSON(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [{"action": "scroll", "dy": 120}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if r.steps[0].DY != 120 {
		t.Errorf("dy = %v", r.steps[0].DY)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	if _, err := LoadScript([]byte(`steps: []`)); !errors.Is(err, errNoSteps) {
		t.Errorf("empty script err = %v", err)
	}
	if _, err := LoadScript([]byte(`steps: [{action: jump}]`)); err == nil || !strings.Contains(err.Error(), "jump") {
		t.Errorf("unknown action err = %v", err)
	}
	if _, err := LoadScript([]byte(`steps: [`)); err == nil {
		t.Error("malformed script accepted")
	}
}

// runFrame mirrors Stage.Update without the Ebitengine clock.
func runFrame(s *Stage) {
	if s.script != nil {
		s.script.step(s)
	}
	s.popPointer()
	s.tick(1.0 / 60)
}

func TestScriptRunnerDrivesStage(t *testing.T) {
	s, b, _ := newTestStage(t)
	r, err := LoadScript([]byte(`
steps:
  - {action: navigate, page: home}
  - {action: scrollTo, y: 1500}
  - {action: wait, frames: 60}
  - {action: scroll, dy: -900}
  - {action: resize, w: 600, h: 900}
`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(r)

	for i := 0; i < 200 && !r.Done(); i++ {
		runFrame(s)
	}
	if !r.Done() || r.Err() != nil {
		t.Fatalf("done = %v, err = %v", r.Done(), r.Err())
	}
	if s.Document().Current() != PageHome {
		t.Errorf("page = %q", s.Document().Current())
	}
	if s.Document().ScrollY() != 600 {
		t.Errorf("scrollY = %v, want 600", s.Document().ScrollY())
	}
	if s.Viewport().Size() != (Size{W: 600, H: 900}) {
		t.Errorf("viewport = %v", s.Viewport().Size())
	}
	runFrame(s)
	if b.Layout().Scale != 600.0/2*1.5 {
		t.Errorf("layout after resize = %+v, want mobile", b.Layout())
	}
}

func TestScriptRunnerWaitFrames(t *testing.T) {
	s, _, _ := newTestStage(t)
	r, _ := LoadScript([]byte(`steps: [{action: wait, frames: 5}, {action: navigate, page: about}]`))
	s.SetScript(r)

	for i := 0; i < 5; i++ {
		runFrame(s)
	}
	if s.Document().Current() == "about" {
		t.Fatal("navigate ran before the wait elapsed")
	}
	runFrame(s)
	if s.Document().Current() != "about" {
		t.Errorf("page = %q, want about", s.Document().Current())
	}
}

func TestScriptRunnerSweep(t *testing.T) {
	s, _, _ := newTestStage(t)
	r, _ := LoadScript([]byte(`
steps:
  - {action: sweep, fromX: 0, fromY: 540, toX: 1920, toY: 540, frames: 4}
  - {action: navigate, page: about}
`))
	s.SetScript(r)

	runFrame(s) // queues the sweep and injects the first sample
	if got := len(s.pointerQueue); got != 3 {
		t.Fatalf("pointer queue = %d, want 3", got)
	}
	for i := 0; i < 3; i++ {
		runFrame(s)
	}
	if s.viewport.injectX != 1920 {
		t.Errorf("last injected x = %v, want 1920", s.viewport.injectX)
	}
	if s.Document().Current() == "about" {
		t.Fatal("script advanced during the sweep")
	}
	runFrame(s)
	if s.Document().Current() != "about" {
		t.Errorf("page = %q, want about", s.Document().Current())
	}
}

func TestScriptRunnerStopsOnError(t *testing.T) {
	s, _, _ := newTestStage(t)
	r, _ := LoadScript([]byte(`steps: [{action: navigate, page: missing}, {action: scroll, dy: 100}]`))
	s.SetScript(r)

	runFrame(s)
	if !r.Done() || !errors.Is(r.Err(), ErrUnknownPage) {
		t.Errorf("done = %v, err = %v", r.Done(), r.Err())
	}
	runFrame(s)
	if s.Document().ScrollY() != 0 {
		t.Error("steps ran after a failure")
	}
}

func TestScriptRunnerScreenshotQueues(t *testing.T) {
	s, _, _ := newTestStage(t)
	r, _ := LoadScript([]byte(`steps: [{action: screenshot, label: hero}]`))
	s.SetScript(r)
	runFrame(s)
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "hero" {
		t.Errorf("queue = %v", s.screenshotQueue)
	}
}
