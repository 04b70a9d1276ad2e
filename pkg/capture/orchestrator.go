package capture

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/polaroid/pkg/barrier"
	"github.com/matzehuels/polaroid/pkg/compose"
	"github.com/matzehuels/polaroid/pkg/errors"
	"github.com/matzehuels/polaroid/pkg/observability"
)

// DefaultImageTimeout bounds how long a single image may take to load.
const DefaultImageTimeout = 10 * time.Second

// Result is the outcome of one capture.
type Result struct {
	ID       uuid.UUID
	Payload  []byte
	Err      error
	Duration time.Duration
}

// OK reports whether the capture produced a payload.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Payload) > 0
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithImageTimeout sets the per-image load timeout (default 10s).
func WithImageTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.imageTimeout = d
		}
	}
}

// Orchestrator sequences captures. It is safe for concurrent use; concurrent
// captures beyond the first are rejected.
type Orchestrator struct {
	persistent Target
	transient  Target
	rasterizer Rasterizer

	imageTimeout time.Duration
	logger       *log.Logger

	inFlight atomic.Bool

	mu    sync.Mutex
	state State
}

// NewOrchestrator creates an orchestrator. persistent serves debug captures
// and transient serves all others.
func NewOrchestrator(persistent, transient Target, r Rasterizer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		persistent:   persistent,
		transient:    transient,
		rasterizer:   r,
		imageTimeout: DefaultImageTimeout,
		logger:       log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Capture runs one export of spec. debug selects the persistent target.
//
// Cancellation of ctx is observed until resources are being awaited; from
// then on the export runs to Done or Failed.
func (o *Orchestrator) Capture(ctx context.Context, spec compose.Spec, debug bool) Result {
	if !o.inFlight.CompareAndSwap(false, true) {
		observability.Capture().OnExportRejected(ctx)
		return Result{Err: errors.New(errors.ErrCodeExportInFlight, "an export is already in progress")}
	}
	defer o.inFlight.Store(false)

	id := uuid.New()
	start := time.Now()
	observability.Capture().OnExportStart(ctx, id.String(), debug)

	res := o.run(ctx, id, spec, debug)
	o.transition(ctx, id, Idle)

	res.ID = id
	res.Duration = time.Since(start)
	observability.Capture().OnExportComplete(ctx, id.String(), len(res.Payload), res.Duration, res.Err)
	return res
}

func (o *Orchestrator) run(ctx context.Context, id uuid.UUID, spec compose.Spec, debug bool) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}

	target := o.transient
	if debug {
		target = o.persistent
	}
	if !target.Persistent() {
		o.transition(ctx, id, Staging)
	}

	sub, err := target.Mount(ctx, spec)
	if err != nil {
		o.transition(ctx, id, Failed)
		return Result{Err: errors.Wrap(errors.ErrCodeRasterization, err, "mount composition")}
	}
	defer target.Unmount(sub)

	o.transition(ctx, id, ResourceWait)
	// Past this point the export is not cancellable.
	ctx = context.WithoutCancel(ctx)

	if err := barrier.Wait(ctx, o.bound(sub.Resources())...); err != nil {
		o.transition(ctx, id, Failed)
		return Result{Err: err}
	}

	o.transition(ctx, id, Rasterizing)
	payload, err := o.rasterizer.Rasterize(ctx, sub)
	if err != nil {
		o.transition(ctx, id, Failed)
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeRasterization, err, "rasterize")
		}
		return Result{Err: err}
	}
	if len(payload) == 0 {
		o.transition(ctx, id, Failed)
		return Result{Err: errors.New(errors.ErrCodeRasterization, "rasterizer produced no data")}
	}

	o.transition(ctx, id, Done)
	return Result{Payload: payload}
}

// bound applies the timeout policy: images are bounded, fonts are not.
func (o *Orchestrator) bound(rs []barrier.Resource) []barrier.Resource {
	out := make([]barrier.Resource, len(rs))
	for i, r := range rs {
		if r.Kind == barrier.KindImage {
			r.Timeout = o.imageTimeout
		} else {
			r.Timeout = 0
		}
		out[i] = r
	}
	return out
}

func (o *Orchestrator) transition(ctx context.Context, id uuid.UUID, to State) {
	o.mu.Lock()
	from := o.state
	o.state = to
	o.mu.Unlock()

	if from == to {
		return
	}
	o.logger.Debug("capture state", "export", id.String()[:8], "from", from, "to", to)
	observability.Capture().OnStateChange(ctx, id.String(), from.String(), to.String())
}
