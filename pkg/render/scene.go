package render

import (
	"context"
	"image"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polaroid/pkg/barrier"
	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/fonts"
	"github.com/matzehuels/polaroid/pkg/layout"
)

// Options configures scenes and targets.
type Options struct {
	// LogoDir holds brand logo images named after the brand ("canon.png").
	LogoDir string
	Logger  *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// Scene is a composition mounted for rendering. Its resources are loaded
// lazily through Resources and kept until Dispose.
type Scene struct {
	spec   compose.Spec
	layout layout.Layout
	opts   Options

	mu       sync.Mutex
	photo    image.Image
	logo     image.Image
	fonts    *fonts.Set
	disposed bool
}

// NewScene mounts spec.
func NewScene(spec compose.Spec, opts Options) *Scene {
	return &Scene{spec: spec, layout: spec.Layout(), opts: opts}
}

// Spec returns the mounted composition.
func (s *Scene) Spec() compose.Spec { return s.spec }

// Layout returns the caption of the mounted composition.
func (s *Scene) Layout() layout.Layout { return s.layout }

// Resources lists the photo, the brand logo (when the make is a known
// brand) and the caption font.
func (s *Scene) Resources() []barrier.Resource {
	rs := []barrier.Resource{
		{Name: s.spec.Image.Name(), Kind: barrier.KindImage, Ready: s.loadPhoto},
	}
	if mark := s.brandMark(); mark != nil {
		rs = append(rs, barrier.Resource{Name: mark.Name + " logo", Kind: barrier.KindImage, Ready: s.loadLogo})
	}
	return append(rs, barrier.Resource{Name: s.fontName(), Kind: barrier.KindFont, Ready: s.loadFonts})
}

func (s *Scene) brandMark() *layout.BrandMark {
	if line, ok := s.layout.Line(layout.LineBrand); ok {
		return line.Mark
	}
	return nil
}

func (s *Scene) fontName() string {
	if s.spec.Style.FontFile != "" {
		return s.spec.Style.FontFile
	}
	return string(s.spec.Style.Font)
}

// Dispose drops decoded images. Loading after Dispose fails.
func (s *Scene) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.photo = nil
	s.logo = nil
}

func (s *Scene) errDisposed() error {
	return errors.New(errors.ErrCodeResourceLoad, "scene was unmounted")
}

func (s *Scene) loadPhoto(ctx context.Context) error {
	s.mu.Lock()
	done := s.photo != nil
	s.mu.Unlock()
	if done {
		return nil
	}

	img, err := decodePhoto(s.spec.Image, s.spec.Transform())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return s.errDisposed()
	}
	s.photo = img
	return nil
}

func (s *Scene) loadFonts(ctx context.Context) error {
	s.mu.Lock()
	done := s.fonts != nil
	s.mu.Unlock()
	if done {
		return nil
	}

	var (
		set *fonts.Set
		err error
	)
	if s.spec.Style.FontFile != "" {
		set, err = fonts.LoadFile(s.spec.Style.FontFile)
	} else {
		set, err = fonts.Load(s.spec.Style.Font)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return s.errDisposed()
	}
	s.fonts = set
	return nil
}

func (s *Scene) loadLogo(ctx context.Context) error {
	mark := s.brandMark()
	if mark == nil {
		return nil
	}
	s.mu.Lock()
	done := s.logo != nil
	s.mu.Unlock()
	if done {
		return nil
	}

	img, err := loadLogo(*mark, s.opts.LogoDir)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return s.errDisposed()
	}
	s.logo = img
	return nil
}

// loaded returns the resources needed to paint, or an error naming the first
// one that is missing.
func (s *Scene) loaded() (photo, logo image.Image, set *fonts.Set, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.disposed:
		return nil, nil, nil, errors.New(errors.ErrCodeRasterization, "scene was unmounted")
	case s.photo == nil:
		return nil, nil, nil, errors.New(errors.ErrCodeRasterization, "photo not loaded")
	case s.fonts == nil:
		return nil, nil, nil, errors.New(errors.ErrCodeRasterization, "font not loaded")
	}
	return s.photo, s.logo, s.fonts, nil
}
