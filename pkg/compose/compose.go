// Package compose defines the immutable description of one polaroid.
//
// A [Spec] is a snapshot taken when a capture begins. It copies the metadata,
// the display config, the orientation and the style, and references the
// photo handle; later edits to any of those do not reach an export that is
// already running.
package compose

import (
	"image/color"
	"strings"

	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/layout"
	"github.com/matzehuels/polaroid/pkg/metadata"
	"github.com/matzehuels/polaroid/pkg/orientation"
	"github.com/matzehuels/polaroid/pkg/photo"
)

// Background is the paper colour of the frame.
type Background string

const (
	White Background = "white"
	Black Background = "black"
)

// ParseBackground resolves a background name.
func ParseBackground(name string) (Background, error) {
	if err := errors.ValidateBackground(name); err != nil {
		return "", err
	}
	return Background(strings.ToLower(strings.TrimSpace(name))), nil
}

// Style holds the presentation options of a polaroid.
type Style struct {
	Background Background   `json:"background" toml:"background"`
	Font       fonts.Family `json:"font" toml:"font"`
	// FontFile, when set, replaces Font with a TrueType/OpenType file.
	FontFile string `json:"font_file,omitempty" toml:"font_file"`
	// SafeGutters reserves space at the top and bottom of the frame for
	// overlays added by story-style viewers.
	SafeGutters bool `json:"safe_gutters" toml:"safe_gutters"`
}

// DefaultStyle is a white frame with black Montserrat text.
func DefaultStyle() Style {
	return Style{Background: White, Font: fonts.Default}
}

// Colors returns the background and text colours. Text is always the
// inverse of the background.
func (s Style) Colors() (bg, fg color.RGBA) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black := color.RGBA{A: 0xFF}
	if s.Background == Black {
		return black, white
	}
	return white, black
}

// Validate checks the background and font family.
func (s Style) Validate() error {
	if _, err := ParseBackground(string(s.Background)); err != nil {
		return err
	}
	if s.FontFile == "" {
		if _, err := fonts.Parse(string(s.Font)); err != nil {
			return err
		}
	}
	return nil
}

// Spec is everything needed to render one polaroid.
type Spec struct {
	Image       *photo.Handle
	Metadata    metadata.Metadata
	Display     metadata.DisplayConfig
	Orientation orientation.Code
	Style       Style
}

// New snapshots the inputs into a Spec. It fails with NO_IMAGE when there is
// no live photo, and with a style error when the style is invalid.
func New(img *photo.Handle, m metadata.Metadata, d metadata.DisplayConfig, o orientation.Code, style Style) (Spec, error) {
	if img == nil || img.Released() {
		return Spec{}, errors.New(errors.ErrCodeNoImage, "no photo selected")
	}
	if style.Font == "" {
		style.Font = fonts.Default
	}
	if err := style.Validate(); err != nil {
		return Spec{}, err
	}
	return Spec{
		Image:       img,
		Metadata:    m,
		Display:     d,
		Orientation: orientation.Normalize(int(o)),
		Style:       style,
	}, nil
}

// Layout assembles the caption of s.
func (s Spec) Layout() layout.Layout {
	return layout.Assemble(s.Metadata, s.Display)
}

// Transform returns the orientation transform of the photo.
func (s Spec) Transform() orientation.Transform {
	return orientation.TransformFor(s.Orientation)
}
