// Package export delivers a finished capture to its destination.
//
// The payload is validated as a 1080x1920 PNG and written under the fixed
// name [FileName]. Delivery is all-or-nothing: a [DirSink] writes to a
// temporary file in the destination directory and renames it into place, so
// a failed export never leaves a partial polaroid.png behind.
package export

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polaroid/pkg/capture"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/render"
)

// FileName is the name every export is saved under.
const FileName = "polaroid.png"

// Sink stores an exported file.
type Sink interface {
	Save(name string, data []byte) error
}

// DirSink writes files into a directory atomically.
type DirSink struct {
	Dir string
}

// Save writes data to Dir/name through a temporary file and rename.
func (s DirSink) Save(name string, data []byte) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeExportWrite, err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportWrite, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeExportWrite, err, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeExportWrite, err, "close %s", name)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExportWrite, err, "chmod %s", name)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		return errors.Wrap(errors.ErrCodeExportWrite, err, "rename %s", name)
	}
	committed = true
	return nil
}

// Path returns where name is saved.
func (s DirSink) Path(name string) string {
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// WriterSink streams the file to a writer, e.g. stdout. The name is ignored.
type WriterSink struct {
	W io.Writer
}

// Save writes data to W.
func (s WriterSink) Save(_ string, data []byte) error {
	if _, err := s.W.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeExportWrite, err, "write output")
	}
	return nil
}

// Exporter hands capture results to a sink.
type Exporter struct {
	sink   Sink
	logger *log.Logger
}

// New creates an exporter. A nil logger discards output.
func New(sink Sink, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Exporter{sink: sink, logger: logger}
}

// Deliver saves a successful result under FileName. A failed result is
// returned unchanged and nothing is written. There is no retry.
//
// A capture that reached ResourceWait is delivered even if ctx was cancelled
// in the meantime.
func (e *Exporter) Deliver(_ context.Context, res capture.Result) error {
	if res.Err != nil {
		return res.Err
	}
	if err := Validate(res.Payload); err != nil {
		return err
	}
	if err := e.sink.Save(FileName, res.Payload); err != nil {
		return err
	}
	e.logger.Info("exported polaroid",
		"file", FileName,
		"bytes", len(res.Payload),
		"duration", res.Duration)
	return nil
}

// Validate checks that data is a PNG of the canvas size.
func Validate(data []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRasterization, err, "payload is not a PNG")
	}
	if cfg.Width != render.CanvasWidth || cfg.Height != render.CanvasHeight {
		return errors.New(errors.ErrCodeRasterization, "payload is %dx%d, want %dx%d",
			cfg.Width, cfg.Height, render.CanvasWidth, render.CanvasHeight)
	}
	return nil
}
