package export

import (
	"bytes"
	"context"
	stderrors "errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/polaroid/pkg/capture"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/render"
)

func canvasPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDeliverWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	payload := canvasPNG(t, render.CanvasWidth, render.CanvasHeight)

	e := New(DirSink{Dir: dir}, nil)
	if err := e.Deliver(context.Background(), capture.Result{Payload: payload}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("exported bytes differ from payload")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestDeliverFailedResult(t *testing.T) {
	dir := t.TempDir()
	cause := errors.New(errors.ErrCodeResourceLoad, "image photo not ready after 10s")

	e := New(DirSink{Dir: dir}, nil)
	err := e.Deliver(context.Background(), capture.Result{Err: cause})
	if !stderrors.Is(err, cause) {
		t.Errorf("Deliver() error = %v, want %v", err, cause)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Error("failed export produced a file")
	}
}

func TestDeliverAfterCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(DirSink{Dir: dir}, nil)
	payload := canvasPNG(t, render.CanvasWidth, render.CanvasHeight)
	if err := e.Deliver(ctx, capture.Result{Payload: payload}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Errorf("finished capture not written: %v", err)
	}
}

func TestDeliverRejectsWrongSize(t *testing.T) {
	dir := t.TempDir()
	e := New(DirSink{Dir: dir}, nil)
	err := e.Deliver(context.Background(), capture.Result{Payload: canvasPNG(t, 100, 100)})
	if !errors.Is(err, errors.ErrCodeRasterization) {
		t.Errorf("Deliver() error = %v, want %s", err, errors.ErrCodeRasterization)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Error("invalid payload produced a file")
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	payload := canvasPNG(t, render.CanvasWidth, render.CanvasHeight)
	if err := New(WriterSink{W: &buf}, nil).Deliver(context.Background(), capture.Result{Payload: payload}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), payload) {
		t.Error("writer received different bytes")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, stderrors.New("broken pipe") }

func TestWriterSinkFailure(t *testing.T) {
	payload := canvasPNG(t, render.CanvasWidth, render.CanvasHeight)
	err := New(WriterSink{W: failingWriter{}}, nil).Deliver(context.Background(), capture.Result{Payload: payload})
	if !errors.Is(err, errors.ErrCodeExportWrite) {
		t.Errorf("Deliver() error = %v, want %s", err, errors.ErrCodeExportWrite)
	}
}

func TestDirSinkOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := DirSink{Dir: dir}
	if err := s.Save(FileName, []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(FileName, []byte("new")); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(s.Path(FileName))
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}
