package battery

import (
	"errors"
	"fmt"
)

// ErrUnknownPage is returned when navigating to a page the document does not
// describe.
var ErrUnknownPage = errors.New("unknown page")

// ElementSpec describes an anchor element on a page, in page pixels.
type ElementSpec struct {
	Selector string  `yaml:"selector"`
	Top      float64 `yaml:"top"`
	Height   float64 `yaml:"height"`
}

// PageSpec describes one page of the site.
type PageSpec struct {
	ID      string        `yaml:"id"`
	Height  float64       `yaml:"height"`
	Anchors []ElementSpec `yaml:"anchors"`
}

// Element is an anchor on the current page.
type Element struct {
	Selector string
	Top      float64
	Height   float64
}

type page struct {
	id       string
	height   float64
	elements []*Element
}

// AnchorQuery finds anchors on the current page.
type AnchorQuery interface {
	Query(selector string) (*Element, bool)
}

// ScrollSource reports the vertical scroll offset of the current page.
type ScrollSource interface {
	ScrollY() float64
}

// Document is the page model the battery floats behind: a set of pages,
// the one currently open, and how far it is scrolled.
type Document struct {
	pages      map[string]*page
	order      []string
	current    *page
	scrollY    float64
	viewHeight float64
}

// NewDocument builds a document from page specs. No page is open yet.
func NewDocument(specs []PageSpec) *Document {
	d := &Document{pages: make(map[string]*page, len(specs))}
	for _, ps := range specs {
		p := &page{id: ps.ID, height: ps.Height}
		for _, es := range ps.Anchors {
			p.elements = append(p.elements, &Element{Selector: es.Selector, Top: es.Top, Height: es.Height})
		}
		if _, dup := d.pages[ps.ID]; !dup {
			d.order = append(d.order, ps.ID)
		}
		d.pages[ps.ID] = p
	}
	return d
}

// Query returns the first element on the current page matching selector.
func (d *Document) Query(selector string) (*Element, bool) {
	if d.current == nil {
		return nil, false
	}
	for _, el := range d.current.elements {
		if el.Selector == selector {
			return el, true
		}
	}
	return nil, false
}

// Current returns the open page identity, or "" before the first Open.
func (d *Document) Current() string {
	if d.current == nil {
		return ""
	}
	return d.current.id
}

// Pages returns the page identities in declaration order.
func (d *Document) Pages() []string {
	return d.order
}

// Open makes id the current page and scrolls to its top.
func (d *Document) Open(id string) error {
	p, ok := d.pages[id]
	if !ok {
		return fmt.Errorf("open %q: %w", id, ErrUnknownPage)
	}
	d.current = p
	d.scrollY = 0
	return nil
}

// ScrollY returns the vertical scroll offset in pixels.
func (d *Document) ScrollY() float64 {
	return d.scrollY
}

// ScrollTo sets the scroll offset, clamped to the scrollable range.
func (d *Document) ScrollTo(y float64) {
	d.scrollY = clamp(y, 0, d.maxScroll())
}

// ScrollBy moves the scroll offset by dy.
func (d *Document) ScrollBy(dy float64) {
	d.ScrollTo(d.scrollY + dy)
}

// SetViewHeight records the viewport height used to bound scrolling.
func (d *Document) SetViewHeight(h float64) {
	d.viewHeight = h
	d.ScrollTo(d.scrollY)
}

func (d *Document) maxScroll() float64 {
	if d.current == nil {
		return 0
	}
	return max(d.current.height-d.viewHeight, 0)
}

// --- Navigator ---

// Navigator moves the document between pages and announces each move on the
// bus: PAGE_OUT with the page being left, then PAGE with the new one.
type Navigator struct {
	bus     *Bus
	doc     *Document
	loop    *Loop
	session *SessionStore
}

// NewNavigator creates a navigator. loop and session may be nil; with a loop
// every announcement runs as a task so microtasks it queues are drained.
func NewNavigator(bus *Bus, doc *Document, loop *Loop, session *SessionStore) *Navigator {
	return &Navigator{bus: bus, doc: doc, loop: loop, session: session}
}

// Navigate opens page id. Navigating to the page already open is a no-op.
func (n *Navigator) Navigate(id string) error {
	if _, ok := n.doc.pages[id]; !ok {
		return fmt.Errorf("navigate %q: %w", id, ErrUnknownPage)
	}
	prev := n.doc.Current()
	if prev == id {
		return nil
	}
	if prev != "" {
		n.publish(TopicPageOut, prev)
	}
	if err := n.doc.Open(id); err != nil {
		return err
	}
	n.publish(TopicPage, id)
	Logf("navigate %q -> %q", prev, id)

	if n.session != nil {
		if err := n.session.Remember(id); err != nil {
			Logf("session: %v", err)
		}
	}
	return nil
}

// Start opens the first page: the remembered one if the session knows a page
// the document has, otherwise fallback. Then LOAD is published.
func (n *Navigator) Start(fallback string) error {
	start := fallback
	if n.session != nil {
		if last, ok := n.session.LastPage(); ok {
			if _, known := n.doc.pages[last]; known {
				start = last
			}
		}
	}
	if err := n.Navigate(start); err != nil {
		return err
	}
	n.publish(TopicLoad, start)
	return nil
}

func (n *Navigator) publish(topic, payload string) {
	if n.loop == nil {
		n.bus.Publish(topic, payload)
		return
	}
	n.loop.Run(func() { n.bus.Publish(topic, payload) })
}
