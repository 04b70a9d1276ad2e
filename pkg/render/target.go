package render

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/matzehuels/polaroid/pkg/capture"
	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/errors"
)

// Overlay is the transient target. Every Mount stages a new scene that is
// disposed on Unmount.
type Overlay struct {
	opts    Options
	mounted atomic.Int32
}

var _ capture.Target = (*Overlay)(nil)

// NewOverlay creates a transient target.
func NewOverlay(opts Options) *Overlay {
	return &Overlay{opts: opts}
}

// Mount stages spec in a new scene.
func (t *Overlay) Mount(_ context.Context, spec compose.Spec) (capture.Subtree, error) {
	if spec.Image == nil {
		return nil, errors.New(errors.ErrCodeNoImage, "no photo selected")
	}
	t.mounted.Add(1)
	return NewScene(spec, t.opts), nil
}

// Unmount disposes the staged scene.
func (t *Overlay) Unmount(sub capture.Subtree) {
	if s, ok := sub.(*Scene); ok {
		s.Dispose()
	}
	t.mounted.Add(-1)
}

// Persistent reports false.
func (t *Overlay) Persistent() bool { return false }

// Mounted returns the number of scenes currently staged.
func (t *Overlay) Mounted() int { return int(t.mounted.Load()) }

// Inline is the persistent target used in debug mode. It keeps the most
// recent composition mounted so repeated captures reuse decoded resources.
//
// A scene returned by Mount is pinned until Unmount. Updates made while a
// scene is pinned swap in a new scene; the pinned one is disposed when its
// last Unmount arrives.
type Inline struct {
	opts Options

	mu     sync.Mutex
	scene  *Scene
	pinned map[*Scene]int
}

var _ capture.Target = (*Inline)(nil)

// NewInline creates a persistent target with nothing mounted.
func NewInline(opts Options) *Inline {
	return &Inline{opts: opts, pinned: make(map[*Scene]int)}
}

// Update re-renders the inline composition. The previous scene is disposed
// unless spec is unchanged or a capture still holds it.
func (t *Inline) Update(spec compose.Spec) *Scene {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.update(spec)
}

func (t *Inline) update(spec compose.Spec) *Scene {
	if t.scene != nil && t.scene.spec == spec {
		return t.scene
	}
	t.retire(t.scene)
	t.scene = NewScene(spec, t.opts)

	logger := t.opts.logger()
	for _, line := range t.scene.layout.Lines {
		logger.Debug("inline preview", "line", line.Kind, "text", line.String())
	}
	return t.scene
}

// retire disposes s unless it is pinned. Callers hold t.mu.
func (t *Inline) retire(s *Scene) {
	if s == nil || t.pinned[s] > 0 {
		return
	}
	s.Dispose()
}

// Current returns the mounted scene, or nil.
func (t *Inline) Current() *Scene {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scene
}

// Mount returns the inline scene, re-rendering it first if spec differs from
// what is displayed. The scene stays pinned until Unmount.
func (t *Inline) Mount(_ context.Context, spec compose.Spec) (capture.Subtree, error) {
	if spec.Image == nil {
		return nil, errors.New(errors.ErrCodeNoImage, "no photo selected")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.update(spec)
	t.pinned[s]++
	return s, nil
}

// Unmount releases a scene returned by Mount. The current scene stays
// mounted; a scene replaced in the meantime is disposed.
func (t *Inline) Unmount(sub capture.Subtree) {
	s, ok := sub.(*Scene)
	if !ok {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pinned[s] == 0 {
		return
	}
	t.pinned[s]--
	if t.pinned[s] > 0 {
		return
	}
	delete(t.pinned, s)
	if s != t.scene {
		s.Dispose()
	}
}

// Persistent reports true.
func (t *Inline) Persistent() bool { return true }

// Close disposes the inline scene. A pinned scene is disposed on its Unmount.
func (t *Inline) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.retire(t.scene)
	t.scene = nil
}
