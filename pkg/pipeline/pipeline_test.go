package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/polaroid/pkg/capture"
	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/export"
	"github.com/matzehuels/polaroid/pkg/fonts"
	pkgio "github.com/matzehuels/polaroid/pkg/io"
	"github.com/matzehuels/polaroid/pkg/metadata"
	"github.com/matzehuels/polaroid/pkg/observability"
	"github.com/matzehuels/polaroid/pkg/orientation"
)

func writePhoto(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	r, err := NewRunner(opts)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if diff := cmp.Diff(compose.DefaultStyle(), opts.Style); diff != "" {
		t.Errorf("Style mismatch (-want +got):\n%s", diff)
	}
	if opts.ImageTimeout <= 0 {
		t.Errorf("ImageTimeout = %v, want default", opts.ImageTimeout)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call error = %v", err)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"background", Options{Style: compose.Style{Background: "sepia"}}, errors.ErrCodeInvalidStyle},
		{"font", Options{Style: compose.Style{Font: "Comic Sans"}}, errors.ErrCodeInvalidFont},
		{"hidden", Options{Hidden: []string{"altitude"}}, errors.ErrCodeUnknownField},
		{"override", Options{Overrides: map[string]string{"altitude": "1m"}}, errors.ErrCodeUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExportWithoutPhoto(t *testing.T) {
	r := newRunner(t, Options{})
	_, err := r.Export(context.Background(), export.DirSink{Dir: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeNoImage) {
		t.Errorf("Export() error = %v, want NO_IMAGE", err)
	}
}

func TestSelectWithoutExif(t *testing.T) {
	r := newRunner(t, Options{Overrides: map[string]string{"photographer": "Jane Doe"}})
	h, err := r.Select(context.Background(), writePhoto(t, 40, 30))
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if h.Name() != "photo.png" {
		t.Errorf("Name() = %q, want photo.png", h.Name())
	}

	m := r.Metadata()
	if m.Photographer != "Jane Doe" {
		t.Errorf("Photographer = %q, want override", m.Photographer)
	}
	if m.Present() != 1 {
		t.Errorf("Present() = %d, want 1", m.Present())
	}
	if got := r.Orientation(); got != orientation.Default {
		t.Errorf("Orientation() = %v, want %v", got, orientation.Default)
	}
	if got := r.Stats().Selections; got != 1 {
		t.Errorf("Selections = %d, want 1", got)
	}
}

func TestSelectReleasesPrevious(t *testing.T) {
	r := newRunner(t, Options{})
	ctx := context.Background()
	path := writePhoto(t, 8, 8)

	first, err := r.Select(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Select(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Released() {
		t.Error("previous handle should be released")
	}
	if second.Released() || r.Photo() != second {
		t.Error("new handle should be current")
	}

	if _, err := r.Select(ctx, filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("Select(missing) should fail")
	}
	if r.Photo() != second {
		t.Error("failed selection should keep the current photo")
	}
}

func TestToggleAndSet(t *testing.T) {
	r := newRunner(t, Options{Hidden: []string{"latitude"}})

	if r.Display().Visible(metadata.Latitude) {
		t.Error("latitude should start hidden")
	}
	if err := r.Toggle("latitude"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !r.Display().Visible(metadata.Latitude) {
		t.Error("latitude should be visible after toggle")
	}
	if err := r.Toggle("altitude"); !errors.Is(err, errors.ErrCodeUnknownField) {
		t.Errorf("Toggle(altitude) error = %v, want UNKNOWN_FIELD", err)
	}

	if err := r.Set("make=Canon"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := r.Metadata().Make; got != "Canon" {
		t.Errorf("Make = %q, want Canon", got)
	}
	if err := r.Set("make"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Set(make) error = %v, want INVALID_INPUT", err)
	}
}

func TestSetStyleKeepsFont(t *testing.T) {
	r := newRunner(t, Options{Style: compose.Style{Font: fonts.Courier}})
	if err := r.SetStyle(compose.Style{Background: compose.Black}); err != nil {
		t.Fatalf("SetStyle() error = %v", err)
	}
	want := compose.Style{Background: compose.Black, Font: fonts.Courier}
	if diff := cmp.Diff(want, r.Style()); diff != "" {
		t.Errorf("Style mismatch (-want +got):\n%s", diff)
	}
	if err := r.SetStyle(compose.Style{Background: "grey"}); err == nil {
		t.Error("SetStyle(grey) should fail")
	}
}

func TestApplyDocument(t *testing.T) {
	r := newRunner(t, Options{Hidden: []string{"make"}})
	style := compose.Style{Background: compose.Black, Font: fonts.Poppins}
	doc := pkgio.Document{
		Metadata: map[string]string{"model": "EOS R5", "iso": "ISO 100"},
		Hidden:   []string{"iso"},
		Style:    &style,
	}
	if err := r.Apply(doc); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	d := r.Display()
	if !d.Visible(metadata.Make) || d.Visible(metadata.ISO) {
		t.Errorf("Hidden() = %v, want [iso]", d.Hidden())
	}
	if got := r.Metadata().Model; got != "EOS R5" {
		t.Errorf("Model = %q, want EOS R5", got)
	}
	if r.Style() != style {
		t.Errorf("Style() = %+v, want %+v", r.Style(), style)
	}

	out := r.Document(true)
	if out.Metadata["model"] != "EOS R5" || out.Style == nil {
		t.Errorf("Document() = %+v", out)
	}
	if r.Document(false).Style != nil {
		t.Error("Document(false) should omit the style")
	}
}

func TestExport(t *testing.T) {
	r := newRunner(t, Options{
		Style:     compose.Style{Background: compose.Black},
		Overrides: map[string]string{"make": "Canon", "model": "EOS R5"},
	})
	ctx := context.Background()
	if _, err := r.Select(ctx, writePhoto(t, 120, 80)); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	res, err := r.Export(ctx, export.DirSink{Dir: dir})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.File != export.FileName || res.Bytes == 0 || res.ID == "" {
		t.Errorf("Export() = %+v", res)
	}

	data, err := os.ReadFile(filepath.Join(dir, export.FileName))
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if err := export.Validate(data); err != nil {
		t.Errorf("exported file invalid: %v", err)
	}

	stats := r.Stats()
	if stats.Exports != 1 || stats.Failures != 0 {
		t.Errorf("Stats() = %+v", stats)
	}
	if r.Preview() != nil {
		t.Error("Preview() should be nil outside debug mode")
	}
}

func TestExportDebugUsesPreview(t *testing.T) {
	r := newRunner(t, Options{Debug: true})
	ctx := context.Background()
	if _, err := r.Select(ctx, writePhoto(t, 30, 60)); err != nil {
		t.Fatal(err)
	}
	preview := r.Preview()
	if preview == nil {
		t.Fatal("Preview() should be mounted after selection in debug mode")
	}

	var buf bytes.Buffer
	if _, err := r.Export(ctx, export.WriterSink{W: &buf}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if err := export.Validate(buf.Bytes()); err != nil {
		t.Errorf("payload invalid: %v", err)
	}
	if r.Preview() != preview {
		t.Error("unchanged session should reuse the preview scene")
	}

	if err := r.Toggle("make"); err != nil {
		t.Fatal(err)
	}
	if r.Preview() == preview {
		t.Error("toggle should re-render the preview")
	}
}

// toggleOnRasterize hides a field once the capture starts painting.
type toggleOnRasterize struct {
	observability.NoopCaptureHooks
	runner *Runner
	field  string
	err    error
}

func (h *toggleOnRasterize) OnStateChange(_ context.Context, _, _, to string) {
	if to == capture.Rasterizing.String() {
		h.err = h.runner.Toggle(h.field)
	}
}

func TestExportDebugToggleDuringCapture(t *testing.T) {
	r := newRunner(t, Options{Debug: true, Overrides: map[string]string{"iso": "400"}})
	ctx := context.Background()
	if _, err := r.Select(ctx, writePhoto(t, 40, 30)); err != nil {
		t.Fatal(err)
	}
	before := r.Preview()

	hooks := &toggleOnRasterize{runner: r, field: "iso"}
	observability.SetCaptureHooks(hooks)
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	if _, err := r.Export(ctx, export.WriterSink{W: &buf}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if hooks.err != nil {
		t.Fatalf("Toggle() error = %v", hooks.err)
	}
	if err := export.Validate(buf.Bytes()); err != nil {
		t.Errorf("payload invalid: %v", err)
	}
	if r.Preview() == before {
		t.Error("toggle during the export did not re-render the preview")
	}
	if visible, _ := r.Display().IsVisible("iso"); visible {
		t.Error("iso should be hidden after the toggle")
	}
}

func TestExportCancelled(t *testing.T) {
	r := newRunner(t, Options{})
	if _, err := r.Select(context.Background(), writePhoto(t, 8, 8)); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	if _, err := r.Export(ctx, export.DirSink{Dir: dir}); err == nil {
		t.Fatal("Export() should fail when cancelled")
	}
	if _, err := os.Stat(filepath.Join(dir, export.FileName)); !os.IsNotExist(err) {
		t.Error("nothing should be written for a failed export")
	}
	if got := r.Stats().Failures; got != 1 {
		t.Errorf("Failures = %d, want 1", got)
	}
}

// cancelOnWait cancels the export once it starts waiting for resources.
type cancelOnWait struct {
	observability.NoopCaptureHooks
	cancel context.CancelFunc
}

func (h cancelOnWait) OnStateChange(_ context.Context, _, _, to string) {
	if to == capture.ResourceWait.String() {
		h.cancel()
	}
}

func TestExportCancelledDuringWait(t *testing.T) {
	r := newRunner(t, Options{})
	if _, err := r.Select(context.Background(), writePhoto(t, 8, 8)); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	observability.SetCaptureHooks(cancelOnWait{cancel: cancel})
	t.Cleanup(observability.Reset)

	dir := t.TempDir()
	if _, err := r.Export(ctx, export.DirSink{Dir: dir}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if ctx.Err() == nil {
		t.Fatal("context was not cancelled during the export")
	}
	if _, err := os.Stat(filepath.Join(dir, export.FileName)); err != nil {
		t.Errorf("export cancelled after resource wait not written: %v", err)
	}
}
