package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Errorf("expected defaults %+v, got %+v", want, cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
listen_addr = "0.0.0.0:9000"
tick_hz = 90
grab_threshold = 0.7
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:9000" || cfg.TickHz != 90 || cfg.GrabThreshold != 0.7 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.ReleaseThreshold != Default().ReleaseThreshold {
		t.Errorf("expected default release threshold, got %v", cfg.ReleaseThreshold)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero tick rate", "tick_hz = 0"},
		{"grab threshold above one", "grab_threshold = 1.5"},
		{"release above grab", "grab_threshold = 0.4\nrelease_threshold = 0.6"},
		{"negative release", "release_threshold = -0.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("tick_hz = ["), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error, got nil")
	}
}
