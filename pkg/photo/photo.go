// Package photo manages the lifetime of the selected photo's bytes.
//
// A [Handle] is acquired when a file is selected and must be released when the
// selection changes or the program exits. A [Selection] owns at most one live
// handle and performs that hand-over.
package photo

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/matzehuels/polaroid/pkg/errors"
)

// MaxSize bounds the size of a photo that may be selected.
const MaxSize = 256 << 20

// Handle is a scoped reference to a photo's bytes.
type Handle struct {
	id   uuid.UUID
	name string

	mu       sync.RWMutex
	data     []byte
	released bool
	onClose  func()
}

// ID returns the handle's unique id.
func (h *Handle) ID() uuid.UUID { return h.id }

// Name returns the base name of the selected file, or "" for a nil handle.
func (h *Handle) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

// URI returns an opaque reference to the handle, stable for its lifetime.
func (h *Handle) URI() string {
	return "polaroid:" + h.id.String()
}

// Open returns a reader over the photo bytes.
// It fails with HANDLE_RELEASED once the handle has been released.
func (h *Handle) Open() (io.Reader, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.released {
		return nil, errors.New(errors.ErrCodeHandleReleased, "photo %s was released", h.name)
	}
	return bytes.NewReader(h.data), nil
}

// Released reports whether Release has been called.
func (h *Handle) Released() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.released
}

// Release drops the photo bytes. It is safe to call more than once.
func (h *Handle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.data = nil
	onClose := h.onClose
	h.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// Selection holds the currently selected photo.
type Selection struct {
	mu      sync.Mutex
	current *Handle
	live    atomic.Int64
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Select reads the file at path and makes it the current photo, releasing the
// previous one. If the file cannot be read the previous selection stays.
func (s *Selection) Select(path string) (*Handle, error) {
	if err := errors.ValidateImagePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return s.SelectReader(filepath.Base(path), f)
}

// SelectReader makes the contents of r the current photo.
func (s *Selection) SelectReader(name string, r io.Reader) (*Handle, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > MaxSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d MiB", name, MaxSize>>20)
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is empty", name)
	}

	h := &Handle{id: uuid.New(), name: name, data: data}
	h.onClose = func() { s.live.Add(-1) }
	s.live.Add(1)

	s.mu.Lock()
	prev := s.current
	s.current = h
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
	return h, nil
}

// Current returns the selected handle, or nil.
func (s *Selection) Current() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Live returns the number of handles acquired through s and not yet released.
func (s *Selection) Live() int {
	return int(s.live.Load())
}

// Close releases the current handle.
func (s *Selection) Close() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
}
