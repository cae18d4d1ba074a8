package battery

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

// ViewportGeometry reports the current viewport size, device class, and the
// normalized mouse position. ex grows to the right and ey grows upward; both
// are roughly in [-1, 1].
type ViewportGeometry interface {
	Size() Size
	Device() DeviceClass
	Mouse() (ex, ey float64)
}

// ScreenViewport is the ViewportGeometry of an Ebitengine window. The Stage
// feeds it the layout size and calls update once per tick.
type ScreenViewport struct {
	size       Size
	breakpoint float64
	lerp       float64

	// targets from the latest pointer sample; ex/ey chase them by lerp
	tx, ty float64
	ex, ey float64

	touchSeen bool
	touchIDs  []ebiten.TouchID
	injected  bool
	injectX   float64
	injectY   float64
}

// NewScreenViewport creates a viewport of size w×h. breakpoint is the width
// below which the viewport counts as mobile; lerp in (0, 1] sets how fast the
// reported mouse position follows the pointer (1 snaps).
func NewScreenViewport(w, h, breakpoint, lerp float64) *ScreenViewport {
	if lerp <= 0 || lerp > 1 {
		lerp = 1
	}
	return &ScreenViewport{size: Size{W: w, H: h}, breakpoint: breakpoint, lerp: lerp}
}

// Size returns the viewport size in pixels.
func (v *ScreenViewport) Size() Size {
	return v.size
}

// Device classifies the viewport. Mobile builds, touch input, and widths
// under the breakpoint count as mobile.
func (v *ScreenViewport) Device() DeviceClass {
	if runtime.GOOS == "android" || runtime.GOOS == "ios" || v.touchSeen {
		return DeviceMobile
	}
	if v.size.W < v.breakpoint {
		return DeviceMobile
	}
	return DeviceDesktop
}

// Mouse returns the smoothed normalized pointer position.
func (v *ScreenViewport) Mouse() (ex, ey float64) {
	return v.ex, v.ey
}

// SetSize records a new layout size. Returns true if the size changed.
func (v *ScreenViewport) SetSize(w, h float64) bool {
	if v.size.W == w && v.size.H == h {
		return false
	}
	v.size = Size{W: w, H: h}
	return true
}

// InjectPointer overrides the pointer with screen coordinates (x, y) until
// ReleasePointer is called. Used by scripted runs and tests.
func (v *ScreenViewport) InjectPointer(x, y float64) {
	v.injected = true
	v.injectX, v.injectY = x, y
}

// ReleasePointer returns control of the pointer to the real input devices.
func (v *ScreenViewport) ReleasePointer() {
	v.injected = false
}

// normalize maps screen coordinates to [-1, 1] with Y pointing up.
func (v *ScreenViewport) normalize(sx, sy float64) (float64, float64) {
	if v.size.W <= 0 || v.size.H <= 0 {
		return 0, 0
	}
	ex := sx/v.size.W*2 - 1
	ey := 1 - sy/v.size.H*2
	return clamp(ex, -1, 1), clamp(ey, -1, 1)
}

// update samples the pointer and advances smoothing. Called from Stage.Update.
func (v *ScreenViewport) update() {
	switch {
	case v.injected:
		v.tx, v.ty = v.normalize(v.injectX, v.injectY)
	default:
		v.sampleDevices()
	}
	v.ex += (v.tx - v.ex) * v.lerp
	v.ey += (v.ty - v.ey) * v.lerp
}

// sampleDevices reads the first active touch, falling back to the cursor.
func (v *ScreenViewport) sampleDevices() {
	v.touchIDs = ebiten.AppendTouchIDs(v.touchIDs[:0])
	if len(v.touchIDs) > 0 {
		v.touchSeen = true
		x, y := ebiten.TouchPosition(v.touchIDs[0])
		v.tx, v.ty = v.normalize(float64(x), float64(y))
		return
	}
	if v.touchSeen {
		// Touch devices keep the last position after the finger lifts.
		return
	}
	x, y := ebiten.CursorPosition()
	v.tx, v.ty = v.normalize(float64(x), float64(y))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
