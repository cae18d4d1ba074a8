package battery

import (
	"errors"
	"fmt"
	"math"
)

// ErrMissingDependency is returned by NewBattery when a required capability
// is nil.
var ErrMissingDependency = errors.New("missing dependency")

// Drawable is the renderable the battery places: a node plus the per-frame
// and resize hooks of its shading.
type Drawable interface {
	Node() *Node
	// Render forwards the elapsed time to time-based shading.
	Render(t float64)
	// Resize re-measures after the parent's layout changed.
	Resize()
}

// MeshFactory constructs the battery's drawable. An error means a required
// asset is missing and the battery cannot be built.
type MeshFactory func() (Drawable, error)

// Deps are the capabilities a Battery consumes. All are required.
type Deps struct {
	Bus       EventBus
	Scheduler Scheduler
	Tweens    Tweener
	Viewport  ViewportGeometry
	Anchors   AnchorQuery
	Tracks    TrackFactory
	Mesh      MeshFactory
}

func (d Deps) validate() error {
	var missing []error
	check := func(ok bool, name string) {
		if !ok {
			missing = append(missing, fmt.Errorf("%w: %s", ErrMissingDependency, name))
		}
	}
	check(d.Bus != nil, "Bus")
	check(d.Scheduler != nil, "Scheduler")
	check(d.Tweens != nil, "Tweens")
	check(d.Viewport != nil, "Viewport")
	check(d.Anchors != nil, "Anchors")
	check(d.Tracks != nil, "Tracks")
	check(d.Mesh != nil, "Mesh")
	return errors.Join(missing...)
}

// Battery is the scene node that floats the battery mesh behind the page.
//
// It is the single authority for the node's pose: layout sets position.x and
// scale, each frame sets rotation from the mouse and clock, and while a
// scroll track is bound position.y follows scroll progress. The mesh is a
// child node whose scale and position.y belong to the Animator.
type Battery struct {
	node     *Node
	mesh     Drawable
	animator *Animator
	track    ScrollTrack
	layout   LayoutBaseline

	deps Deps
	cfg  Config
	subs []Subscription
}

// NewBattery builds the mesh, lays the node out, subscribes to navigation
// events, and binds a scroll track for the current page. The returned
// battery's Node is not attached to any parent.
//
// A mesh construction failure is returned and nothing is subscribed.
func NewBattery(deps Deps, cfg Config) (*Battery, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("battery: %w", err)
	}
	b := &Battery{
		node: NewContainer("battery"),
		deps: deps,
		cfg:  cfg,
	}
	if err := b.create(); err != nil {
		return nil, fmt.Errorf("battery: create mesh: %w", err)
	}
	b.node.OnRender = b.Render
	b.node.OnResize = b.Resize

	bus := deps.Bus
	b.subs = append(b.subs,
		bus.Subscribe(TopicPage, func(p any) { b.PageChange(pagePayload(p)) }),
		bus.Subscribe(TopicPageOut, func(p any) { b.PageLeave(pagePayload(p)) }),
		bus.Subscribe(TopicLoad, func(any) { b.animator.PageChange(currentPage(bus)) }),
	)

	// Initial query: bind whatever the open page offers. The presence
	// animation waits for LOAD unless loading already finished.
	b.bindTrack()
	if _, loaded := bus.Current(TopicLoad); loaded {
		b.animator.PageChange(currentPage(bus))
	}
	return b, nil
}

// create constructs the mesh, lays out, and attaches the mesh node.
func (b *Battery) create() error {
	mesh, err := b.deps.Mesh()
	if err != nil {
		return err
	}
	b.animator = NewAnimator(mesh.Node(), b.deps.Tweens, b.deps.Viewport, b.cfg.HomePage, b.cfg.Animation)
	b.mesh = mesh
	b.Resize()
	b.node.AddChild(mesh.Node())
	return nil
}

// Node returns the battery's scene graph node.
func (b *Battery) Node() *Node {
	return b.node
}

// Animator returns the presence animator.
func (b *Battery) Animator() *Animator {
	return b.animator
}

// Layout returns the baseline applied by the most recent layout pass.
func (b *Battery) Layout() LayoutBaseline {
	return b.layout
}

// Track returns the bound scroll track, or nil.
func (b *Battery) Track() ScrollTrack {
	return b.track
}

// Render computes the pose for frame time t (seconds, monotonic): the mesh
// gets t for shading, rotation follows the mouse plus a steady spin, and a
// bound track drives position.y. Without a track position.y is left alone.
func (b *Battery) Render(t float64) {
	if b.mesh != nil {
		b.mesh.Render(t)
	}

	ex, ey := b.deps.Viewport.Mouse()
	b.node.Rotation[0] = ey * b.cfg.TiltDamping
	b.node.Rotation[1] = ex*math.Pi + t
	b.node.MarkDirty()

	if b.track != nil {
		h := b.deps.Viewport.Size().H
		b.node.SetPositionY(b.layout.BaselineY + b.track.Value()*h)
	}
}

// Resize recomputes the layout after the current turn, once whatever
// triggered the resize has settled. Position, scale, and baseline are applied
// together; the mesh and track re-measure in a microtask after that, when the
// new scale and position are observable.
func (b *Battery) Resize() {
	b.deps.Scheduler.AfterCurrentTurn(func() {
		b.applyLayout()
		b.deps.Scheduler.AfterMicrotask(func() {
			if b.mesh != nil {
				b.mesh.Resize()
			}
			if b.track != nil {
				b.track.Resize()
			}
		})
	})
}

func (b *Battery) applyLayout() {
	vp := b.deps.Viewport
	size := vp.Size()
	l := ComputeLayout(vp.Device(), size.W, size.H, b.cfg.Layout)
	b.node.SetPositionX(l.OffsetX)
	b.node.SetUniformScale(l.Scale)
	b.layout = l
	Logf("layout %s %vx%v: %+v", vp.Device(), size.W, size.H, l)
}

// PageChange rebinds the scroll track for the new page and forwards the page
// to the animator.
func (b *Battery) PageChange(page string) {
	b.bindTrack()
	b.animator.PageChange(page)
}

// PageLeave releases the scroll track and starts the exit transition.
func (b *Battery) PageLeave(page string) {
	b.destroyTrack()
	b.animator.PageLeave()
}

// bindTrack destroys any bound track, then binds a new one if the open page
// has the anchor. The new track is re-measured once the anchor has settled.
func (b *Battery) bindTrack() {
	b.destroyTrack()
	el, ok := b.deps.Anchors.Query(b.cfg.Anchor)
	if !ok {
		Logf("no %s on this page, scroll track skipped", b.cfg.Anchor)
		return
	}
	tr := b.deps.Tracks(el, b.cfg.Track)
	b.track = tr
	b.deps.Scheduler.After(b.cfg.TrackSettle, func() {
		if b.track == tr {
			tr.Resize()
		}
	})
}

func (b *Battery) destroyTrack() {
	if b.track == nil {
		return
	}
	b.track.Destroy()
	b.track = nil
}

// Dispose unsubscribes from the bus, releases the track, and disposes the
// node subtree. Safe to call more than once.
func (b *Battery) Dispose() {
	for _, s := range b.subs {
		s.Remove()
	}
	b.subs = nil
	b.destroyTrack()
	b.node.Dispose()
}
