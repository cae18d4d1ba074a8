package battery

import "testing"

type scrollStub struct{ y float64 }

func (s *scrollStub) ScrollY() float64 { return s.y }

func TestTrackValue(t *testing.T) {
	el := &Element{Selector: "x", Top: 600, Height: 1800}
	view := &fakeViewport{size: Size{W: 1920, H: 1000}}
	scroll := &scrollStub{}

	tests := []struct {
		name string
		cfg  TrackConfig
		y    float64
		want float64
	}{
		{"top/top before", TrackConfig{EdgeTop, EdgeTop}, 0, 0},
		{"top/top start", TrackConfig{EdgeTop, EdgeTop}, 600, 0},
		{"top/top middle", TrackConfig{EdgeTop, EdgeTop}, 1500, 0.5},
		{"top/top end", TrackConfig{EdgeTop, EdgeTop}, 2400, 1},
		{"top/top past", TrackConfig{EdgeTop, EdgeTop}, 5000, 1},
		// start = 600 - 1000, end = 2400 - 500
		{"bottom/center", TrackConfig{EdgeBottom, EdgeCenter}, -400 + 2300/2.0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scroll.y = tt.y
			tr := NewTrack(el, tt.cfg, scroll, view)
			assertNear(t, "Value", tr.Value(), tt.want)
		})
	}
}

func TestTrackResizeRemeasures(t *testing.T) {
	el := &Element{Top: 100, Height: 1000}
	view := &fakeViewport{size: Size{H: 500}}
	scroll := &scrollStub{y: 100}
	tr := NewTrack(el, TrackConfig{EdgeBottom, EdgeTop}, scroll, view)

	// start = 100 - 500 = -400, end = 1100: (100+400)/1500
	assertNear(t, "before", tr.Value(), 500.0/1500)

	view.size.H = 1000
	assertNear(t, "stale", tr.Value(), 500.0/1500)
	tr.Resize()
	// start = -900: (100+900)/2000
	assertNear(t, "after", tr.Value(), 0.5)
}

func TestTrackZeroSpan(t *testing.T) {
	el := &Element{Top: 300, Height: 0}
	scroll := &scrollStub{}
	tr := NewTrack(el, TrackConfig{EdgeTop, EdgeTop}, scroll, &fakeViewport{size: Size{H: 800}})

	scroll.y = 299
	if tr.Value() != 0 {
		t.Errorf("before = %v, want 0", tr.Value())
	}
	scroll.y = 300
	if tr.Value() != 1 {
		t.Errorf("at = %v, want 1", tr.Value())
	}
}

func TestTrackDestroy(t *testing.T) {
	scroll := &scrollStub{y: 2000}
	tr := NewTrack(&Element{Top: 0, Height: 100}, TrackConfig{EdgeTop, EdgeTop}, scroll, &fakeViewport{})
	tr.Destroy()
	tr.Destroy()
	tr.Resize()

	if !tr.Destroyed() {
		t.Error("Destroyed = false")
	}
	if tr.Value() != 0 {
		t.Errorf("Value after destroy = %v, want 0", tr.Value())
	}
}

func TestDocumentTrackFactory(t *testing.T) {
	doc := testDocument()
	_ = doc.Open(PageHome)
	view := &fakeViewport{size: Size{W: 800, H: 1000}}
	doc.SetViewHeight(1000)

	el, ok := doc.Query(testAnchor)
	if !ok {
		t.Fatal("anchor not found")
	}
	tr := DocumentTrackFactory(doc, view)(el, TrackConfig{EdgeTop, EdgeTop})

	doc.ScrollTo(500 + 750)
	assertNear(t, "Value", tr.Value(), 0.5)
}
