// Package pipeline runs a polaroid editing session.
//
// A session owns the selected photo, its extracted metadata, the display
// config and the style. Every entry point (the export command, the watch
// loop and the interactive toggle list) goes through a [Runner] so the
// select → extract → compose → capture → deliver sequence behaves the same
// everywhere.
//
// # Architecture
//
// A session moves through four stages:
//
//  1. Select: acquire a photo handle and release the previous one
//  2. Extract: read EXIF and normalize it into display strings
//  3. Compose: snapshot photo, metadata, display config and style
//  4. Capture: mount, wait for resources, rasterize and deliver
//
// Edits between exports only touch the session state. In debug mode every
// edit also re-renders the inline preview.
//
// # Usage
//
//	runner, err := pipeline.NewRunner(pipeline.Options{
//	    Style:  compose.Style{Background: compose.Black},
//	    Hidden: []string{"latitude", "longitude"},
//	    Logger: logger,
//	})
//	if err != nil {
//	    return err
//	}
//	defer runner.Close()
//
//	if _, err := runner.Select(ctx, "DSC_0042.jpg"); err != nil {
//	    return err
//	}
//	result, err := runner.Export(ctx, export.DirSink{Dir: "out"})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polaroid/pkg/capture"
	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/metadata"
)

// =============================================================================
// Options - Session Configuration
// =============================================================================

// Options configures a session. The zero value is a white Montserrat frame
// with every field visible.
// This struct supports JSON serialization so a session can be described in
// a file.
type Options struct {
	Style compose.Style `json:"style"`

	// Hidden names the fields that start hidden.
	Hidden []string `json:"hidden,omitempty"`

	// Overrides replace extracted values, keyed by field name.
	Overrides map[string]string `json:"overrides,omitempty"`

	// Debug routes captures through the inline preview instead of a
	// transient overlay.
	Debug bool `json:"debug,omitempty"`

	// ImageTimeout bounds the load of each image resource. Fonts are
	// never bounded.
	ImageTimeout time.Duration `json:"image_timeout,omitempty"`

	// LogoDir holds brand logos named after the brand ("canon.png").
	// Brands without a file are drawn as wordmarks.
	LogoDir string `json:"logo_dir,omitempty"`

	// Logger receives session events. Nil discards them.
	Logger *log.Logger `json:"-"`

	display   metadata.DisplayConfig
	overrides metadata.Overrides
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// It validates the style, resolves Hidden into a display config and parses
// Overrides; an unknown field name in either is an error.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Style.Background == "" {
		o.Style.Background = compose.White
	}
	if o.Style.Font == "" {
		o.Style.Font = fonts.Default
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}

	o.display = metadata.NewDisplayConfig()
	if err := o.display.Hide(o.Hidden...); err != nil {
		return err
	}

	overrides, err := metadata.ParseOverrides(o.Overrides)
	if err != nil {
		return err
	}
	o.overrides = overrides

	if o.ImageTimeout <= 0 {
		o.ImageTimeout = capture.DefaultImageTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result describes one export.
type Result struct {
	ID       string        // Capture id, unique per export
	File     string        // Name the sink stored the PNG under
	Bytes    int           // Size of the PNG payload
	Duration time.Duration // Wall time from capture start to Done
}

// Stats counts what a session has done.
type Stats struct {
	Selections int           // Photos selected, including failed extractions
	Exports    int           // Exports delivered to a sink
	Failures   int           // Exports that failed in capture or delivery
	Rejected   int           // Exports refused because one was in flight
	LastExport time.Duration // Duration of the most recent delivered export
}
