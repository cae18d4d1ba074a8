package battery

// LayoutBaseline is the resting placement of the battery derived from the
// viewport: a horizontal offset, a uniform scale, and the vertical baseline
// the scroll offset is added to.
type LayoutBaseline struct {
	OffsetX   float64
	Scale     float64
	BaselineY float64
}

// LayoutConfig holds the ratios ComputeLayout applies.
type LayoutConfig struct {
	// DesktopOffsetDivisor divides the viewport width into the desktop X offset.
	DesktopOffsetDivisor float64 `yaml:"desktopOffsetDivisor"`
	// MobileScale multiplies the half-width scale on mobile.
	MobileScale float64 `yaml:"mobileScale"`
	// MobileBaselineDivisor divides the viewport height into the mobile lift.
	MobileBaselineDivisor float64 `yaml:"mobileBaselineDivisor"`
	// MobileBreakpoint is the width in pixels below which a viewport without
	// a touch screen is still treated as mobile.
	MobileBreakpoint float64 `yaml:"mobileBreakpoint"`
}

// DefaultLayoutConfig returns the stock layout ratios.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		DesktopOffsetDivisor:  5,
		MobileScale:           1.5,
		MobileBaselineDivisor: 6,
		MobileBreakpoint:      768,
	}
}

// ComputeLayout derives the baseline for a viewport of size w×h.
//
// Desktop: the object sits to the right (w/5) and is sized from the height
// (h/2). Mobile: centered, sized from the width ((w/2)×1.5), and lifted by
// h/6 so it clears the page content.
func ComputeLayout(device DeviceClass, w, h float64, cfg LayoutConfig) LayoutBaseline {
	if device == DeviceMobile {
		return LayoutBaseline{
			OffsetX:   0,
			Scale:     w / 2 * cfg.MobileScale,
			BaselineY: -h / cfg.MobileBaselineDivisor,
		}
	}
	return LayoutBaseline{
		OffsetX:   w / cfg.DesktopOffsetDivisor,
		Scale:     h / 2,
		BaselineY: 0,
	}
}
