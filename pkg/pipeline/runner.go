package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polaroid/pkg/capture"
	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/export"
	pkgio "github.com/matzehuels/polaroid/pkg/io"
	"github.com/matzehuels/polaroid/pkg/metadata"
	"github.com/matzehuels/polaroid/pkg/observability"
	"github.com/matzehuels/polaroid/pkg/orientation"
	"github.com/matzehuels/polaroid/pkg/photo"
	"github.com/matzehuels/polaroid/pkg/render"
)

// Runner holds one editing session.
//
// Edits (Select, Toggle, Set, SetStyle) may run while an export is in
// flight; the export works on the snapshot taken when it started.
type Runner struct {
	Logger *log.Logger

	debug     bool
	selection *photo.Selection
	inline    *render.Inline
	overlay   *render.Overlay
	capturer  *capture.Orchestrator

	mu          sync.Mutex
	extracted   metadata.Metadata
	overrides   metadata.Overrides
	orientation orientation.Code
	display     metadata.DisplayConfig
	style       compose.Style
	stats       Stats
}

// NewRunner creates a session with nothing selected.
func NewRunner(opts Options) (*Runner, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	renderOpts := render.Options{LogoDir: opts.LogoDir, Logger: opts.Logger}
	inline := render.NewInline(renderOpts)
	overlay := render.NewOverlay(renderOpts)

	r := &Runner{
		Logger:    opts.Logger,
		debug:     opts.Debug,
		selection: photo.NewSelection(),
		inline:    inline,
		overlay:   overlay,
		capturer: capture.NewOrchestrator(inline, overlay, render.Rasterizer{},
			capture.WithLogger(opts.Logger),
			capture.WithImageTimeout(opts.ImageTimeout)),
		overrides:   opts.overrides,
		orientation: orientation.Default,
		display:     opts.display,
		style:       opts.Style,
	}
	return r, nil
}

// =============================================================================
// Selection
// =============================================================================

// Select makes the photo at path current. The previous photo is released.
// Metadata extraction failures are logged and the photo is kept with empty
// metadata.
func (r *Runner) Select(ctx context.Context, path string) (*photo.Handle, error) {
	h, err := r.selection.Select(path)
	if err != nil {
		return nil, err
	}
	r.absorb(ctx, h)
	return h, nil
}

// SelectReader is Select for an in-memory photo.
func (r *Runner) SelectReader(ctx context.Context, name string, src io.Reader) (*photo.Handle, error) {
	h, err := r.selection.SelectReader(name, src)
	if err != nil {
		return nil, err
	}
	r.absorb(ctx, h)
	return h, nil
}

func (r *Runner) absorb(ctx context.Context, h *photo.Handle) {
	m, o, err := extract(h)
	observability.Metadata().OnExtract(ctx, h.Name(), m.Present(), err)
	if err != nil {
		r.Logger.Warn("metadata unavailable", "file", h.Name(), "error", errors.UserMessage(err))
	} else {
		r.Logger.Debug("extracted metadata", "file", h.Name(), "fields", m.Present(), "orientation", o)
	}

	r.mu.Lock()
	r.extracted = m
	r.orientation = o
	r.stats.Selections++
	r.mu.Unlock()

	r.refresh()
}

func extract(h *photo.Handle) (metadata.Metadata, orientation.Code, error) {
	src, err := h.Open()
	if err != nil {
		return metadata.Metadata{}, orientation.Default, err
	}
	raw, err := metadata.Extract(src)
	if err != nil {
		return metadata.Metadata{}, orientation.Default, err
	}
	m, o := metadata.Normalize(raw)
	return m, o, nil
}

// Photo returns the selected photo, or nil.
func (r *Runner) Photo() *photo.Handle {
	return r.selection.Current()
}

// =============================================================================
// Edits
// =============================================================================

// Toggle flips the visibility of the named field.
func (r *Runner) Toggle(name string) error {
	r.mu.Lock()
	err := r.display.Toggle(name)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.refresh()
	return nil
}

// Set applies a "key=value" override.
func (r *Runner) Set(assignment string) error {
	f, v, err := metadata.ParseAssignment(assignment)
	if err != nil {
		return err
	}
	r.mu.Lock()
	if r.overrides == nil {
		r.overrides = make(metadata.Overrides)
	}
	r.overrides[f] = v
	r.mu.Unlock()
	r.refresh()
	return nil
}

// SetStyle replaces the style.
func (r *Runner) SetStyle(style compose.Style) error {
	if style.Font == "" && style.FontFile == "" {
		style.Font = r.Style().Font
	}
	if err := style.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.style = style
	r.mu.Unlock()
	r.refresh()
	return nil
}

// Apply loads the overrides, hidden fields and style of doc. Fields the
// document does not hide become visible.
func (r *Runner) Apply(doc pkgio.Document) error {
	overrides, err := doc.Overrides()
	if err != nil {
		return err
	}
	display, err := doc.Display()
	if err != nil {
		return err
	}
	if doc.Style != nil {
		if err := doc.Style.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	if r.overrides == nil {
		r.overrides = make(metadata.Overrides)
	}
	for f, v := range overrides {
		r.overrides[f] = v
	}
	r.display = display
	if doc.Style != nil {
		r.style = *doc.Style
	}
	r.mu.Unlock()
	r.refresh()
	return nil
}

// =============================================================================
// Accessors
// =============================================================================

// Metadata returns the extracted metadata with overrides applied.
func (r *Runner) Metadata() metadata.Metadata {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.extracted.WithOverrides(r.overrides)
}

// Display returns a copy of the display config.
func (r *Runner) Display() metadata.DisplayConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.display
}

// Orientation returns the orientation of the selected photo.
func (r *Runner) Orientation() orientation.Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orientation
}

// Style returns the current style.
func (r *Runner) Style() compose.Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

// Stats returns the session counters.
func (r *Runner) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// State returns the capture state.
func (r *Runner) State() capture.State {
	return r.capturer.State()
}

// Snapshot captures the session as an immutable composition.
func (r *Runner) Snapshot() (compose.Spec, error) {
	h := r.selection.Current()
	r.mu.Lock()
	defer r.mu.Unlock()
	return compose.New(h, r.extracted.WithOverrides(r.overrides), r.display, r.orientation, r.style)
}

// Document describes the session as JSON. The style is included only when
// withStyle is set.
func (r *Runner) Document(withStyle bool) pkgio.Document {
	var file string
	if h := r.selection.Current(); h != nil {
		file = h.Name()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var style *compose.Style
	if withStyle {
		s := r.style
		style = &s
	}
	return pkgio.NewDocument(file, r.extracted.WithOverrides(r.overrides), r.display, r.orientation, style)
}

// Preview returns the inline scene. It is nil outside debug mode and before
// the first selection.
func (r *Runner) Preview() *render.Scene {
	return r.inline.Current()
}

// refresh re-renders the inline preview in debug mode.
func (r *Runner) refresh() {
	if !r.debug {
		return
	}
	spec, err := r.Snapshot()
	if err != nil {
		return
	}
	r.inline.Update(spec)
}

// =============================================================================
// Export
// =============================================================================

// Export captures the current composition and delivers it to sink.
func (r *Runner) Export(ctx context.Context, sink export.Sink) (*Result, error) {
	spec, err := r.Snapshot()
	if err != nil {
		return nil, err
	}

	res := r.capturer.Capture(ctx, spec, r.debug)
	err = export.New(sink, r.Logger).Deliver(ctx, res)

	r.mu.Lock()
	switch {
	case errors.Is(err, errors.ErrCodeExportInFlight):
		r.stats.Rejected++
	case err != nil:
		r.stats.Failures++
	default:
		r.stats.Exports++
		r.stats.LastExport = res.Duration
	}
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &Result{
		ID:       res.ID.String(),
		File:     export.FileName,
		Bytes:    len(res.Payload),
		Duration: res.Duration,
	}, nil
}

// Close releases the selected photo and the inline preview.
func (r *Runner) Close() error {
	r.inline.Close()
	r.selection.Close()
	return nil
}
