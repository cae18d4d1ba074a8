package battery

// TrackConfig names the viewport edges that bound a track's progress: the
// track reads 0 when the element's top meets Start and 1 when the element's
// bottom meets End.
type TrackConfig struct {
	Start Edge `yaml:"start"`
	End   Edge `yaml:"end"`
}

// ScrollTrack reports normalized scroll progress through an element.
type ScrollTrack interface {
	// Value returns progress in [0, 1].
	Value() float64
	// Resize re-measures the element and viewport.
	Resize()
	// Destroy releases the track. Calling it more than once is a no-op.
	Destroy()
}

// TrackFactory binds a new ScrollTrack to el.
type TrackFactory func(el *Element, cfg TrackConfig) ScrollTrack

// Track is a ScrollTrack over a Document element. Bounds are measured on
// Resize; Value reads the live scroll offset against the last measurement.
type Track struct {
	el     *Element
	cfg    TrackConfig
	scroll ScrollSource
	view   ViewportGeometry

	start, end float64
	destroyed  bool
}

// NewTrack creates a track bound to el and measures it once.
func NewTrack(el *Element, cfg TrackConfig, scroll ScrollSource, view ViewportGeometry) *Track {
	t := &Track{el: el, cfg: cfg, scroll: scroll, view: view}
	t.Resize()
	return t
}

// DocumentTrackFactory returns a TrackFactory producing Tracks that read the
// scroll offset from src and the viewport height from view.
func DocumentTrackFactory(src ScrollSource, view ViewportGeometry) TrackFactory {
	return func(el *Element, cfg TrackConfig) ScrollTrack {
		return NewTrack(el, cfg, src, view)
	}
}

// Resize recomputes the scroll offsets at which progress starts and ends.
func (t *Track) Resize() {
	if t.destroyed {
		return
	}
	h := t.view.Size().H
	t.start = t.el.Top - t.cfg.Start.fraction()*h
	t.end = t.el.Top + t.el.Height - t.cfg.End.fraction()*h
}

// Value returns progress in [0, 1]. A destroyed track reads 0.
func (t *Track) Value() float64 {
	if t.destroyed {
		return 0
	}
	y := t.scroll.ScrollY()
	span := t.end - t.start
	if span <= 0 {
		if y >= t.start {
			return 1
		}
		return 0
	}
	return clamp((y-t.start)/span, 0, 1)
}

// Destroy detaches the track. Safe to call repeatedly.
func (t *Track) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.el = nil
	t.scroll = nil
	t.view = nil
}

// Destroyed reports whether Destroy has been called.
func (t *Track) Destroyed() bool {
	return t.destroyed
}
