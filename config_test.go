package battery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
tiltDamping: 0.25
animation:
  exitDuration: 0.8
  cancelOnReentry: true
trackSettle: 50ms
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TiltDamping != 0.25 {
		t.Errorf("TiltDamping = %v", cfg.TiltDamping)
	}
	if cfg.Animation.ExitDuration != 0.8 || !cfg.Animation.CancelOnReentry {
		t.Errorf("Animation = %+v", cfg.Animation)
	}
	if cfg.Animation.EnterDelay != 0.2 {
		t.Errorf("EnterDelay = %v, want default 0.2", cfg.Animation.EnterDelay)
	}
	if cfg.TrackSettle != 50*time.Millisecond {
		t.Errorf("TrackSettle = %v, want 50ms", cfg.TrackSettle)
	}
	if cfg.HomePage != PageHome || cfg.Layout != DefaultLayoutConfig() {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseConfigPages(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
pages:
  - id: home
    height: 5000
    anchors:
      - selector: "#hero"
        top: 10
        height: 20
  - id: contact
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Pages) != 2 || cfg.Pages[1].ID != "contact" {
		t.Fatalf("Pages = %+v", cfg.Pages)
	}
	if a := cfg.Pages[0].Anchors[0]; a.Selector != "#hero" || a.Top != 10 || a.Height != 20 {
		t.Errorf("anchor = %+v", a)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad edge", "track: {start: middle, end: top}", "track edges"},
		{"empty home", `homePage: ""`, "homePage"},
		{"negative settle", "trackSettle: -1s", "trackSettle"},
		{"lerp zero", "mouseLerp: 0", "mouseLerp"},
		{"negative timing", "animation: {enterDelay: -1}", "timings"},
		{"bad layout", "layout: {desktopOffsetDivisor: 0}", "layout"},
		{"few segments", "mesh: {segments: 2}", "segments"},
		{"duplicate page", "pages: [{id: a}, {id: a}]", "duplicate"},
		{"empty page id", "pages: [{height: 10}]", "empty id"},
		{"malformed", "tiltDamping: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HomePage = ""
	cfg.Anchor = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "homePage") || !strings.Contains(msg, "anchor") {
		t.Errorf("err = %v, want both problems reported", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battery.yaml")
	if err := os.WriteFile(path, []byte("homePage: about\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HomePage != "about" {
		t.Errorf("HomePage = %q", cfg.HomePage)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSampleConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("examples", "battery", "battery.yaml"))
	if err != nil {
		t.Fatalf("sample config: %v", err)
	}
	if len(cfg.Pages) == 0 {
		t.Error("sample config has no pages")
	}
}
