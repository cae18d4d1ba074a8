package battery

import "github.com/go-gl/mathgl/mgl64"

// Size is a viewport size in pixels.
type Size struct {
	W, H float64
}

// DeviceClass selects the layout rules applied by ComputeLayout.
type DeviceClass uint8

const (
	DeviceDesktop DeviceClass = iota // wide layout, object sits to the right
	DeviceMobile                     // narrow layout, object centered
)

// String returns "desktop" or "mobile".
func (d DeviceClass) String() string {
	if d == DeviceMobile {
		return "mobile"
	}
	return "desktop"
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeMesh                      // renders a Mesh through its shader
)

// Bus topics carrying navigation lifecycle events. The payload of every
// topic is the page identity string.
const (
	TopicPage    = "PAGE"     // a page became current
	TopicPageOut = "PAGE_OUT" // the current page is being left
	TopicLoad    = "LOAD"     // initial assets finished loading
)

// PageHome is the page identity the battery materializes on.
const PageHome = "home"

// Edge names a horizontal line of an element or of the viewport used by a
// scroll track to decide where progress starts and ends.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeCenter Edge = "center"
	EdgeBottom Edge = "bottom"
)

// fraction returns the edge position as a fraction of a height.
func (e Edge) fraction() float64 {
	switch e {
	case EdgeCenter:
		return 0.5
	case EdgeBottom:
		return 1
	default:
		return 0
	}
}

// Valid reports whether e is one of the known edges.
func (e Edge) Valid() bool {
	return e == EdgeTop || e == EdgeCenter || e == EdgeBottom
}

// vecOne and vecZero are the presence scale targets.
var (
	vecOne  = mgl64.Vec3{1, 1, 1}
	vecZero = mgl64.Vec3{}
)
