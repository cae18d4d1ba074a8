package battery

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ScriptStep is one action of a Script. Which fields apply depends on
// Action:
//
//	navigate    Page
//	scroll      DY (relative)
//	scrollTo    Y
//	pointer     X, Y (screen pixels)
//	sweep       FromX, FromY, ToX, ToY over Frames frames
//	release     (hands the pointer back to the real devices)
//	resize      W, H
//	wait        Frames
//	screenshot  Label
type ScriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	Page   string  `yaml:"page,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	DY     float64 `yaml:"dy,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	W      int     `yaml:"w,omitempty"`
	H      int     `yaml:"h,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

type script struct {
	Steps []ScriptStep `yaml:"steps"`
}

var errNoSteps = errors.New("no steps")

// ScriptRunner plays a Script against a Stage, one step per frame, for
// unattended demo runs and visual checks. Attach with Stage.SetScript.
type ScriptRunner struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a YAML (or JSON) script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", errNoSteps)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "navigate", "scroll", "scrollTo", "pointer", "sweep", "release", "resize", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the first step failure. A failed step ends the script.
func (r *ScriptRunner) Err() error {
	return r.err
}

// step runs at most one step. Called from Stage.Update before the tick.
func (r *ScriptRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Let a sweep finish before moving on.
	if len(s.pointerQueue) > 0 {
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
	case "navigate":
		if err := s.nav.Navigate(st.Page); err != nil {
			r.err = fmt.Errorf("script step %d: %w", r.cursor-1, err)
			r.done = true
			return
		}
	case "scroll":
		s.doc.ScrollBy(st.DY)
	case "scrollTo":
		s.doc.ScrollTo(st.Y)
	case "pointer":
		s.viewport.InjectPointer(st.X, st.Y)
	case "sweep":
		s.queueSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "release":
		s.viewport.ReleasePointer()
	case "resize":
		s.Layout(st.W, st.H)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.pointerQueue) == 0 {
		r.done = true
	}
}

// --- Pointer sweeps ---

type pointerSample struct {
	x, y float64
}

// queueSweep queues pointer positions moving linearly from (fromX, fromY) to
// (toX, toY), one per frame, over frames frames (minimum 2).
func (s *Stage) queueSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.pointerQueue = append(s.pointerQueue, pointerSample{
			x: fromX + (toX-fromX)*t,
			y: fromY + (toY-fromY)*t,
		})
	}
}

// popPointer injects the next queued sweep sample, if any.
func (s *Stage) popPointer() {
	if len(s.pointerQueue) == 0 {
		return
	}
	p := s.pointerQueue[0]
	copy(s.pointerQueue, s.pointerQueue[1:])
	s.pointerQueue = s.pointerQueue[:len(s.pointerQueue)-1]
	s.viewport.InjectPointer(p.x, p.y)
}
