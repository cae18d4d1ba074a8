package battery

import "testing"

func newTestAnimator(cfg AnimationConfig) (*Animator, *Node, *TweenEngine) {
	node := NewContainer("mesh")
	tweens := NewTweenEngine()
	view := &fakeViewport{size: Size{W: 1280, H: 720}}
	return NewAnimator(node, tweens, view, PageHome, cfg), node, tweens
}

func runTweens(t *testing.T, e *TweenEngine) {
	t.Helper()
	for i := 0; i < 1000 && e.Len() > 0; i++ {
		e.Update(1.0 / 60)
	}
	if e.Len() > 0 {
		t.Fatal("tweens did not settle")
	}
}

func assertPresence(t *testing.T, n *Node, scale, y float64) {
	t.Helper()
	for i, s := range n.Scale {
		if s != scale {
			t.Errorf("scale[%d] = %v, want %v", i, s, scale)
		}
	}
	if n.Position[1] != y {
		t.Errorf("position.y = %v, want %v", n.Position[1], y)
	}
}

func TestAnimatorStartsHidden(t *testing.T) {
	a, node, _ := newTestAnimator(DefaultConfig().Animation)
	if a.State() != StateHidden {
		t.Errorf("state = %v", a.State())
	}
	assertPresence(t, node, 0, -720)
}

func TestAnimatorEnterHome(t *testing.T) {
	a, node, tweens := newTestAnimator(DefaultConfig().Animation)

	a.PageChange(PageHome)
	if a.State() != StateEntering {
		t.Fatalf("state = %v, want entering", a.State())
	}
	tweens.Update(0.1)
	assertPresence(t, node, 0, -720) // still inside the delay

	runTweens(t, tweens)
	if a.State() != StateVisible {
		t.Errorf("state = %v, want visible", a.State())
	}
	assertPresence(t, node, 1, 0)
}

func TestAnimatorIgnoresOtherPages(t *testing.T) {
	a, node, tweens := newTestAnimator(DefaultConfig().Animation)
	for _, page := range []string{"about", "work", ""} {
		a.PageChange(page)
	}
	if tweens.Len() != 0 {
		t.Errorf("tweens started for non-home pages: %d", tweens.Len())
	}
	if a.State() != StateHidden {
		t.Errorf("state = %v", a.State())
	}
	assertPresence(t, node, 0, -720)
}

func TestAnimatorExit(t *testing.T) {
	a, node, tweens := newTestAnimator(DefaultConfig().Animation)
	a.PageChange(PageHome)
	runTweens(t, tweens)

	a.PageLeave()
	if a.State() != StateExiting {
		t.Fatalf("state = %v, want exiting", a.State())
	}
	tweens.Update(0.2)
	if node.Position[1] != 0 {
		t.Errorf("position.y moved during exit: %v", node.Position[1])
	}
	if node.Scale[0] <= 0 || node.Scale[0] >= 1 {
		t.Errorf("scale mid-exit = %v, want in (0, 1)", node.Scale[0])
	}

	runTweens(t, tweens)
	if a.State() != StateHidden {
		t.Errorf("state = %v, want hidden", a.State())
	}
	assertPresence(t, node, 0, -720)
}

func TestAnimatorExitFromHidden(t *testing.T) {
	a, node, tweens := newTestAnimator(DefaultConfig().Animation)
	a.PageLeave()
	runTweens(t, tweens)
	if a.State() != StateHidden {
		t.Errorf("state = %v", a.State())
	}
	assertPresence(t, node, 0, -720)
}

func TestAnimatorOverlapLastTweenWins(t *testing.T) {
	a, node, tweens := newTestAnimator(DefaultConfig().Animation)

	// Enter is still in its delay when the exit starts. The exit resolves
	// first, then the enter tweens finish and leave the node shown.
	a.PageChange(PageHome)
	a.PageLeave()
	runTweens(t, tweens)

	assertPresence(t, node, 1, 0)
	if a.State() != StateHidden {
		t.Errorf("state = %v, want hidden (set by the latest transition)", a.State())
	}
}

func TestAnimatorReenterDuringExit(t *testing.T) {
	a, node, tweens := newTestAnimator(DefaultConfig().Animation)
	a.PageChange(PageHome)
	runTweens(t, tweens)

	a.PageLeave()
	tweens.Update(0.1)
	a.PageChange(PageHome)
	runTweens(t, tweens)

	if a.State() != StateVisible {
		t.Errorf("state = %v, want visible", a.State())
	}
	assertPresence(t, node, 1, 0)
}

func TestAnimatorCancelOnReentry(t *testing.T) {
	cfg := DefaultConfig().Animation
	cfg.CancelOnReentry = true

	t.Run("exit cancels enter", func(t *testing.T) {
		a, node, tweens := newTestAnimator(cfg)
		a.PageChange(PageHome)
		a.PageLeave()
		runTweens(t, tweens)

		if a.State() != StateHidden {
			t.Errorf("state = %v", a.State())
		}
		assertPresence(t, node, 0, -720)
	})

	t.Run("enter cancels exit", func(t *testing.T) {
		a, node, tweens := newTestAnimator(cfg)
		a.PageChange(PageHome)
		runTweens(t, tweens)
		a.PageLeave()
		tweens.Update(0.1)
		a.PageChange(PageHome)
		runTweens(t, tweens)

		if a.State() != StateVisible {
			t.Errorf("state = %v", a.State())
		}
		assertPresence(t, node, 1, 0)
	})
}

func TestAnimationStateString(t *testing.T) {
	tests := map[AnimationState]string{
		StateHidden:   "hidden",
		StateEntering: "entering",
		StateVisible:  "visible",
		StateExiting:  "exiting",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
