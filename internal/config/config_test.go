package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/metadata"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[style]
background = "black"
font = "Courier"
safe_gutters = true

[display]
hidden = ["latitude", "longitude"]

[export]
dir = "out"
image_timeout = "3s"

[overrides]
photographer = "Jane Doe"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := compose.Style{Background: compose.Black, Font: fonts.Courier, SafeGutters: true}
	if diff := cmp.Diff(want, cfg.Style); diff != "" {
		t.Errorf("Style mismatch (-want +got):\n%s", diff)
	}
	d, err := cfg.DisplayConfig()
	if err != nil {
		t.Fatal(err)
	}
	if d.Visible(metadata.Latitude) || !d.Visible(metadata.Make) {
		t.Error("hidden fields not applied")
	}
	if timeout, _ := cfg.ImageTimeout(); timeout != 3*time.Second {
		t.Errorf("ImageTimeout() = %v, want 3s", timeout)
	}
	if cfg.Export.Dir != "out" || cfg.Overrides["photographer"] != "Jane Doe" {
		t.Errorf("Export/Overrides = %+v / %v", cfg.Export, cfg.Overrides)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[style]\nsafe_gutters = true\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Style.Background != compose.White || cfg.Style.Font != fonts.Montserrat {
		t.Errorf("defaults lost: %+v", cfg.Style)
	}
	if cfg.Export.ImageTimeout != "10s" {
		t.Errorf("ImageTimeout = %q, want 10s", cfg.Export.ImageTimeout)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"bad background", "[style]\nbackground = \"red\"\n", errors.ErrCodeInvalidStyle},
		{"bad font", "[style]\nfont = \"Papyrus\"\n", errors.ErrCodeInvalidFont},
		{"unknown hidden field", "[display]\nhidden = [\"altitude\"]\n", errors.ErrCodeUnknownField},
		{"unknown override", "[overrides]\naltitude = \"1m\"\n", errors.ErrCodeUnknownField},
		{"bad timeout", "[export]\nimage_timeout = \"soon\"\n", errors.ErrCodeInvalidInput},
		{"unknown key", "[export]\nformat = \"jpg\"\n", errors.ErrCodeInvalidInput},
		{"malformed", "[style\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polaroid", "config.toml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(default) error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("default round trip mismatch (-want +got):\n%s", diff)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault() should not overwrite")
	}
}

func TestDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "polaroid") {
		t.Errorf("Dir() = %q", dir)
	}
}
