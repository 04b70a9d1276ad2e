// Package config loads the polaroid configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/polaroid/config.toml
// (~/.config/polaroid/config.toml when XDG_CONFIG_HOME is unset). Every key
// is optional; a missing file yields the defaults.
//
//	[style]
//	background = "black"
//	font = "Courier"
//	safe_gutters = true
//
//	[display]
//	hidden = ["latitude", "longitude"]
//
//	[export]
//	dir = "~/Pictures/polaroids"
//	image_timeout = "10s"
//	logo_dir = "~/.config/polaroid/logos"
//
//	[overrides]
//	photographer = "Jane Doe"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/metadata"
)

const appName = "polaroid"

// Config is the decoded configuration file.
type Config struct {
	Style     compose.Style     `toml:"style"`
	Display   Display           `toml:"display"`
	Export    Export            `toml:"export"`
	Overrides map[string]string `toml:"overrides"`
}

// Display lists the fields hidden by default.
type Display struct {
	Hidden []string `toml:"hidden"`
}

// Export holds output settings.
type Export struct {
	Dir          string `toml:"dir"`
	ImageTimeout string `toml:"image_timeout"`
	LogoDir      string `toml:"logo_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Style:  compose.DefaultStyle(),
		Export: Export{Dir: ".", ImageTimeout: "10s"},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error. An empty path means the default location.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	cfg.Export.LogoDir = expandHome(cfg.Export.LogoDir)
	cfg.Style.FontFile = expandHome(cfg.Style.FontFile)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value that has a fixed domain.
func (c Config) Validate() error {
	if _, err := compose.ParseBackground(string(c.Style.Background)); err != nil {
		return err
	}
	if _, err := fonts.Parse(string(c.Style.Font)); err != nil {
		return err
	}
	if _, err := c.DisplayConfig(); err != nil {
		return err
	}
	if _, err := metadata.ParseOverrides(c.Overrides); err != nil {
		return err
	}
	if _, err := c.ImageTimeout(); err != nil {
		return err
	}
	return errors.ValidateOutputDir(c.Export.Dir)
}

// DisplayConfig returns the display config with the configured fields hidden.
func (c Config) DisplayConfig() (metadata.DisplayConfig, error) {
	d := metadata.NewDisplayConfig()
	if err := d.Hide(c.Display.Hidden...); err != nil {
		return metadata.DisplayConfig{}, err
	}
	return d, nil
}

// ImageTimeout parses the per-image timeout. Empty means zero (the default).
func (c Config) ImageTimeout() (time.Duration, error) {
	if c.Export.ImageTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Export.ImageTimeout)
	if err != nil || d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid image_timeout: %q", c.Export.ImageTimeout)
	}
	return d, nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path unless a file is
// already there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeInvalidPath, "%s already exists", path)
	}
	data, err := Default().Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
