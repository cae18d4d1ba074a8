package battery

import (
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is the top-level object: it owns the node tree and the collaborators
// nodes consume (bus, loop, tweens, viewport, document) and implements
// ebiten.Game.
//
// Each Update samples the pointer, advances the loop and tweens, then calls
// every node's OnRender with the elapsed time. Layout notices size changes
// and calls every node's OnResize.
type Stage struct {
	root     *Node
	bus      *Bus
	loop     *Loop
	tweens   *TweenEngine
	viewport *ScreenViewport
	doc      *Document
	nav      *Navigator

	// ClearColor fills the screen before drawing.
	ClearColor color.Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ShowStats draws the FPS and page overlay.
	ShowStats bool

	clock      float64
	updateFunc func() error
	drawBuf    []*Node
	stats      debugStats
	overlay    statsOverlay

	script          *ScriptRunner
	pointerQueue    []pointerSample
	screenshotQueue []string
}

// NewStage creates a stage for cfg. session may be nil.
func NewStage(cfg Config, session *SessionStore) *Stage {
	SetDebug(cfg.Debug || globalDebug)
	bus := NewBus()
	loop := NewLoop()
	doc := NewDocument(cfg.Pages)
	return &Stage{
		root:       NewContainer("root"),
		bus:        bus,
		loop:       loop,
		tweens:     NewTweenEngine(),
		viewport:   NewScreenViewport(0, 0, cfg.Layout.MobileBreakpoint, cfg.MouseLerp),
		doc:        doc,
		nav:        NewNavigator(bus, doc, loop, session),
		ClearColor: color.Black,

		ScreenshotDir: "screenshots",
	}
}

// Root returns the stage's root container node.
func (s *Stage) Root() *Node { return s.root }

// Bus returns the navigation event bus.
func (s *Stage) Bus() *Bus { return s.bus }

// Loop returns the scheduler.
func (s *Stage) Loop() *Loop { return s.loop }

// Tweens returns the tween engine.
func (s *Stage) Tweens() *TweenEngine { return s.tweens }

// Viewport returns the window viewport.
func (s *Stage) Viewport() *ScreenViewport { return s.viewport }

// Document returns the page model.
func (s *Stage) Document() *Document { return s.doc }

// Navigator returns the page navigator.
func (s *Stage) Navigator() *Navigator { return s.nav }

// Clock returns the elapsed time in seconds.
func (s *Stage) Clock() float64 { return s.clock }

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetScript attaches a script runner. Its steps run one per Update, before
// the frame tick.
func (s *Stage) SetScript(r *ScriptRunner) {
	s.script = r
}

// NewBattery builds a battery wired to the stage's collaborators, drawing
// assets, and attaches it under the root.
func (s *Stage) NewBattery(cfg Config, assets Assets) (*Battery, error) {
	return s.attachBattery(cfg, func() (Drawable, error) {
		return NewMesh("battery-mesh", assets)
	})
}

func (s *Stage) attachBattery(cfg Config, mesh MeshFactory) (*Battery, error) {
	b, err := NewBattery(Deps{
		Bus:       s.bus,
		Scheduler: s.loop,
		Tweens:    s.tweens,
		Viewport:  s.viewport,
		Anchors:   s.doc,
		Tracks:    DocumentTrackFactory(s.doc, s.viewport),
		Mesh:      mesh,
	}, cfg)
	if err != nil {
		return nil, err
	}
	s.root.AddChild(b.Node())
	return b, nil
}

// tick advances everything by dt seconds. Split from Update so it can run
// without the Ebitengine clock.
func (s *Stage) tick(dt float64) {
	s.viewport.update()
	s.loop.Advance(time.Duration(dt * float64(time.Second)))
	s.tweens.Update(float32(dt))
	s.clock += dt
	s.loop.Run(func() { renderTree(s.root, s.clock) })
}

// Update implements ebiten.Game.
func (s *Stage) Update() error {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	if s.script != nil {
		s.script.step(s)
	}
	s.popPointer()

	dt := 1.0 / float64(ebiten.TPS())
	s.tick(dt)
	if s.ShowStats {
		s.overlay.update(dt, s)
	}

	if globalDebug {
		s.stats.updateTime = time.Since(t0)
		s.stats.tweens = s.tweens.Len()
		s.stats.pending = s.loop.Pending()
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Draw implements ebiten.Game. World matrices are refreshed, then every
// visible mesh node is drawn in tree order.
func (s *Stage) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	screen.Fill(s.ClearColor)
	updateWorldTransform(s.root, mgl64.Ident4(), false)

	size := s.viewport.Size()
	viewProj := projection(size)
	s.drawBuf = collectMeshes(s.root, s.drawBuf[:0])
	triangles := 0
	for _, n := range s.drawBuf {
		triangles += n.Mesh.draw(screen, viewProj, size)
	}

	if s.ShowStats {
		s.overlay.draw(screen)
	}
	s.flushScreenshots(screen)

	if globalDebug {
		s.stats.drawTime = time.Since(t0)
		s.stats.triangles = triangles
		s.debugLog(s.stats)
	}
}

// Layout implements ebiten.Game. A size change is published to the tree as
// a resize, run as a task so the microtasks it queues drain.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if s.viewport.SetSize(w, h) {
		s.doc.SetViewHeight(h)
		s.loop.Run(func() { resizeTree(s.root) })
	}
	return outsideWidth, outsideHeight
}

// projection is an orthographic camera in pixel units with the origin at the
// viewport center and Y up.
func projection(size Size) mgl64.Mat4 {
	hw, hh := size.W/2, size.H/2
	depth := max(size.W, size.H) * 4
	if depth == 0 {
		depth = 1
	}
	return mgl64.Ortho(-hw, hw, -hh, hh, -depth, depth)
}

// collectMeshes appends visible mesh nodes in depth-first order. Invisible
// subtrees are skipped.
func collectMeshes(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Type == NodeTypeMesh && n.Mesh != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectMeshes(child, buf)
	}
	return buf
}
