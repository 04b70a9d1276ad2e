package capture

import (
	"context"

	"github.com/matzehuels/polaroid/pkg/barrier"
	"github.com/matzehuels/polaroid/pkg/compose"
)

// Subtree is a composition mounted in a render target.
type Subtree interface {
	// Resources lists what must be ready before rasterization. Timeouts are
	// assigned by the orchestrator.
	Resources() []barrier.Resource
}

// Target is somewhere a composition can be mounted for capture.
type Target interface {
	// Mount makes spec capturable and returns the mounted subtree.
	Mount(ctx context.Context, spec compose.Spec) (Subtree, error)
	// Unmount tears down what Mount staged. It must tolerate being called
	// for every subtree Mount returned, exactly once.
	Unmount(Subtree)
	// Persistent reports whether the target outlives a single capture.
	// Persistent targets are mounted ahead of time, so no Staging happens.
	Persistent() bool
}

// Rasterizer converts a ready subtree into PNG bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, s Subtree) ([]byte, error)
}
