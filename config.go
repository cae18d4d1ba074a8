package battery

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AnimationConfig holds the entry/exit timing in seconds.
type AnimationConfig struct {
	EnterDelay    float32 `yaml:"enterDelay"`
	EnterDuration float32 `yaml:"enterDuration"`
	ExitDuration  float32 `yaml:"exitDuration"`

	// CancelOnReentry makes each new transition cancel the tweens of the one
	// before it. Off by default: overlapping transitions run side by side and
	// the last tween to finish wins.
	CancelOnReentry bool `yaml:"cancelOnReentry"`
}

// MeshConfig shapes the procedural battery geometry.
type MeshConfig struct {
	Segments int `yaml:"segments"`
}

// Config is the full battery configuration. Load it from YAML with
// LoadConfig or start from DefaultConfig.
type Config struct {
	// HomePage is the page identity the battery materializes on.
	HomePage string `yaml:"homePage"`
	// Anchor is the selector of the element that drives the scroll track.
	Anchor string `yaml:"anchor"`
	// Track sets the edges of the scroll track.
	Track TrackConfig `yaml:"track"`
	// TrackSettle is how long after binding a track is re-measured.
	TrackSettle time.Duration `yaml:"trackSettle"`
	// TiltDamping scales vertical mouse influence on rotation.x.
	TiltDamping float64 `yaml:"tiltDamping"`
	// MouseLerp is the per-tick smoothing factor of the mouse signal.
	MouseLerp float64 `yaml:"mouseLerp"`

	Animation AnimationConfig `yaml:"animation"`
	Layout    LayoutConfig    `yaml:"layout"`
	Mesh      MeshConfig      `yaml:"mesh"`
	Assets    AssetPaths      `yaml:"assets"`

	// Pages describes the site the battery floats behind.
	Pages []PageSpec `yaml:"pages"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the stock configuration with a two-page site.
func DefaultConfig() Config {
	return Config{
		HomePage:    PageHome,
		Anchor:      "[data-track='gradient']",
		Track:       TrackConfig{Start: EdgeTop, End: EdgeTop},
		TrackSettle: 10 * time.Millisecond,
		TiltDamping: 0.5,
		MouseLerp:   0.1,
		Animation: AnimationConfig{
			EnterDelay:    0.2,
			EnterDuration: 0.5,
			ExitDuration:  0.4,
		},
		Layout: DefaultLayoutConfig(),
		Mesh:   MeshConfig{Segments: 32},
		Assets: AssetPaths{Matcap: "matcap.png", Light: "light.png"},
		Pages: []PageSpec{
			{
				ID:     PageHome,
				Height: 3200,
				Anchors: []ElementSpec{
					{Selector: "[data-track='gradient']", Top: 600, Height: 1800},
				},
			},
			{ID: "about", Height: 1600},
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Keys missing from data keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse battery config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid battery config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read battery config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	var errs []error
	if c.HomePage == "" {
		errs = append(errs, errors.New("homePage is empty"))
	}
	if c.Anchor == "" {
		errs = append(errs, errors.New("anchor is empty"))
	}
	if !c.Track.Start.Valid() || !c.Track.End.Valid() {
		errs = append(errs, fmt.Errorf("track edges %q/%q: want top, center, or bottom", c.Track.Start, c.Track.End))
	}
	if c.TrackSettle < 0 {
		errs = append(errs, fmt.Errorf("trackSettle %v is negative", c.TrackSettle))
	}
	if c.MouseLerp <= 0 || c.MouseLerp > 1 {
		errs = append(errs, fmt.Errorf("mouseLerp %v: want (0, 1]", c.MouseLerp))
	}
	a := c.Animation
	if a.EnterDelay < 0 || a.EnterDuration < 0 || a.ExitDuration < 0 {
		errs = append(errs, errors.New("animation timings must not be negative"))
	}
	l := c.Layout
	if l.DesktopOffsetDivisor <= 0 || l.MobileBaselineDivisor <= 0 || l.MobileScale <= 0 {
		errs = append(errs, errors.New("layout divisors and mobileScale must be positive"))
	}
	if c.Mesh.Segments < 3 {
		errs = append(errs, fmt.Errorf("mesh segments %d: want at least 3", c.Mesh.Segments))
	}
	seen := make(map[string]bool, len(c.Pages))
	for _, p := range c.Pages {
		if p.ID == "" {
			errs = append(errs, errors.New("page with empty id"))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate page %q", p.ID))
		}
		seen[p.ID] = true
		if p.Height < 0 {
			errs = append(errs, fmt.Errorf("page %q has negative height", p.ID))
		}
	}
	return errors.Join(errs...)
}
