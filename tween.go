package battery

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenOptions controls timing of a Tween. Delay and Duration are seconds.
// A nil Ease means ease.OutQuad.
type TweenOptions struct {
	Delay    float32
	Duration float32
	Ease     ease.TweenFunc
}

// Tween animates a set of float64 fields on a Node toward target values.
// Start values are captured when the delay elapses, not at construction, so
// a tween queued behind another one picks up wherever the fields are then.
// Call Update(dt) each frame, or hand the tween to a TweenEngine. If the
// target node is disposed, the tween stops immediately without completing.
type Tween struct {
	fields []*float64
	to     []float64
	tweens []*gween.Tween
	target *Node
	opts   TweenOptions

	waited  float32
	started bool

	then      []func()
	cancelled bool
	Done      bool
}

func newTween(target *Node, fields []*float64, to []float64, opts TweenOptions) *Tween {
	if len(fields) != len(to) {
		panic("battery: tween fields and targets differ in length")
	}
	if opts.Ease == nil {
		opts.Ease = ease.OutQuad
	}
	return &Tween{fields: fields, to: to, target: target, opts: opts}
}

// start snapshots the current field values as the tween origins.
func (tw *Tween) start() {
	tw.started = true
	tw.tweens = make([]*gween.Tween, len(tw.fields))
	for i, f := range tw.fields {
		tw.tweens[i] = gween.New(float32(*f), float32(tw.to[i]), tw.opts.Duration, tw.opts.Ease)
	}
}

// Update advances the tween by dt seconds and writes the interpolated values.
// When every field reaches its target the tween is Done and its Then
// callbacks run in registration order.
func (tw *Tween) Update(dt float32) {
	if tw.Done {
		return
	}
	if tw.target != nil && tw.target.IsDisposed() {
		tw.Done = true
		tw.then = nil
		return
	}

	if !tw.started {
		tw.waited += dt
		if tw.waited < tw.opts.Delay {
			return
		}
		dt = tw.waited - tw.opts.Delay
		tw.start()
	}

	allDone := true
	if tw.opts.Duration <= 0 {
		for i, f := range tw.fields {
			*f = tw.to[i]
		}
	} else {
		for i, g := range tw.tweens {
			val, finished := g.Update(dt)
			if finished {
				// gween runs in float32; land exactly on the target.
				*tw.fields[i] = tw.to[i]
			} else {
				*tw.fields[i] = float64(val)
				allDone = false
			}
		}
	}

	if tw.target != nil {
		tw.target.MarkDirty()
	}
	if allDone {
		tw.finish()
	}
}

func (tw *Tween) finish() {
	tw.Done = true
	callbacks := tw.then
	tw.then = nil
	for _, fn := range callbacks {
		fn()
	}
}

// Then registers fn to run when the tween completes. If the tween already
// completed, fn runs immediately. Cancelled tweens never run callbacks.
func (tw *Tween) Then(fn func()) *Tween {
	if tw.cancelled {
		return tw
	}
	if tw.Done {
		fn()
		return tw
	}
	tw.then = append(tw.then, fn)
	return tw
}

// Cancel stops the tween where it is. Pending Then callbacks are dropped.
func (tw *Tween) Cancel() {
	if tw.Done {
		return
	}
	tw.cancelled = true
	tw.Done = true
	tw.then = nil
}

// Cancelled reports whether the tween was stopped by Cancel.
func (tw *Tween) Cancelled() bool {
	return tw.cancelled
}

// Started reports whether the delay has elapsed.
func (tw *Tween) Started() bool {
	return tw.started
}

// --- Constructors ---

// vec3Fields returns pointers to the three components of v.
func vec3Fields(v *mgl64.Vec3) []*float64 {
	return []*float64{&v[0], &v[1], &v[2]}
}

// TweenScale creates a Tween that animates all three scale components of
// node toward to.
func TweenScale(node *Node, to mgl64.Vec3, opts TweenOptions) *Tween {
	return newTween(node, vec3Fields(&node.Scale), []float64{to[0], to[1], to[2]}, opts)
}

// TweenPosition creates a Tween that animates the node position toward to.
func TweenPosition(node *Node, to mgl64.Vec3, opts TweenOptions) *Tween {
	return newTween(node, vec3Fields(&node.Position), []float64{to[0], to[1], to[2]}, opts)
}

// TweenPositionY creates a Tween that animates only node.Position.Y.
func TweenPositionY(node *Node, to float64, opts TweenOptions) *Tween {
	return newTween(node, []*float64{&node.Position[1]}, []float64{to}, opts)
}

// TweenRotation creates a Tween that animates the Euler rotation toward to.
func TweenRotation(node *Node, to mgl64.Vec3, opts TweenOptions) *Tween {
	return newTween(node, vec3Fields(&node.Rotation), []float64{to[0], to[1], to[2]}, opts)
}

// --- Engine ---

// Tweener accepts tweens and drives them to completion. Callers do not
// await the returned tween unless they register Then callbacks.
type Tweener interface {
	Add(tw *Tween) *Tween
}

// TweenEngine owns a list of running tweens and advances them together.
// There is no global instance; the Stage owns one and updates it once per
// tick.
type TweenEngine struct {
	active []*Tween
}

// NewTweenEngine creates an empty engine.
func NewTweenEngine() *TweenEngine {
	return &TweenEngine{}
}

// Add starts driving tw and returns it.
func (e *TweenEngine) Add(tw *Tween) *Tween {
	e.active = append(e.active, tw)
	return tw
}

// Update advances every running tween by dt seconds and drops finished ones.
// Tweens added by completion callbacks start on the next Update.
func (e *TweenEngine) Update(dt float32) {
	n := len(e.active)
	for i := 0; i < n; i++ {
		e.active[i].Update(dt)
	}
	kept := e.active[:0]
	for _, tw := range e.active {
		if !tw.Done {
			kept = append(kept, tw)
		}
	}
	for i := len(kept); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = kept
}

// Len returns the number of running tweens.
func (e *TweenEngine) Len() int {
	return len(e.active)
}
