package battery

// AnimationState is the presence lifecycle of the battery mesh.
type AnimationState uint8

const (
	StateHidden   AnimationState = iota // scaled to zero, parked below the viewport
	StateEntering                       // materialize tweens running
	StateVisible                        // settled at full scale
	StateExiting                        // dematerialize tween running
)

// String returns the state name.
func (s AnimationState) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateVisible:
		return "visible"
	case StateExiting:
		return "exiting"
	default:
		return "hidden"
	}
}

// Animator drives the materialize/dematerialize transitions of a node.
//
// Entering tweens scale to (1,1,1) and position.y to 0 after a short delay.
// Exiting tweens scale to zero only; position.y is snapped off-screen once
// the scale tween resolves, so the node shrinks away instead of sliding
// across the viewport.
//
// Transitions are fire-and-forget. Unless CancelOnReentry is set, a new
// transition does not stop the tweens of the previous one and the last tween
// to finish wins. Completion of a superseded transition never changes State.
type Animator struct {
	node   *Node
	tweens Tweener
	view   ViewportGeometry
	home   string
	cfg    AnimationConfig

	state    AnimationState
	gen      uint64
	inflight []*Tween
}

// NewAnimator creates an animator for node and parks the node hidden:
// zero scale, position.y one viewport height below the origin.
func NewAnimator(node *Node, tweens Tweener, view ViewportGeometry, home string, cfg AnimationConfig) *Animator {
	a := &Animator{node: node, tweens: tweens, view: view, home: home, cfg: cfg}
	node.SetScale(0, 0, 0)
	node.SetPositionY(-view.Size().H)
	return a
}

// State returns the current lifecycle state.
func (a *Animator) State() AnimationState {
	return a.state
}

// PageChange starts the materialize transition when page is the home page.
// Any other page is ignored.
func (a *Animator) PageChange(page string) {
	if page != a.home {
		return
	}
	a.enter()
}

// PageLeave starts the dematerialize transition, whatever page is leaving.
func (a *Animator) PageLeave() {
	a.exit()
}

// begin moves to next and returns the generation of the new transition.
func (a *Animator) begin(next AnimationState) uint64 {
	if a.cfg.CancelOnReentry {
		for _, tw := range a.inflight {
			tw.Cancel()
		}
	}
	a.inflight = a.inflight[:0]
	a.gen++
	Logf("animator %s -> %s", a.state, next)
	a.state = next
	return a.gen
}

func (a *Animator) enter() {
	gen := a.begin(StateEntering)
	opts := TweenOptions{Delay: a.cfg.EnterDelay, Duration: a.cfg.EnterDuration}
	scale := a.tweens.Add(TweenScale(a.node, vecOne, opts))
	pos := a.tweens.Add(TweenPositionY(a.node, 0, opts))
	a.inflight = append(a.inflight, scale, pos)

	remaining := 2
	settle := func() {
		remaining--
		if remaining == 0 && a.gen == gen {
			a.state = StateVisible
		}
	}
	scale.Then(settle)
	pos.Then(settle)
}

func (a *Animator) exit() {
	gen := a.begin(StateExiting)
	scale := a.tweens.Add(TweenScale(a.node, vecZero, TweenOptions{Duration: a.cfg.ExitDuration}))
	a.inflight = append(a.inflight, scale)

	scale.Then(func() {
		a.node.SetPositionY(-a.view.Size().H)
		if a.gen == gen {
			a.state = StateHidden
		}
	})
}
