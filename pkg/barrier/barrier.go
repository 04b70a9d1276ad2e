// Package barrier waits for a set of resources to become ready.
//
// [Wait] resolves once every resource reports ready and fails as soon as any
// one of them fails or exceeds its timeout. The remaining waits are cancelled
// through the shared context.
package barrier

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/polaroid/pkg/errors"
)

// Kind classifies a resource.
type Kind string

const (
	KindImage Kind = "image"
	KindFont  Kind = "font"
)

// Resource is something a render depends on.
type Resource struct {
	Name string
	Kind Kind
	// Timeout bounds Ready. Zero means no bound beyond the caller's context.
	Timeout time.Duration
	// Ready blocks until the resource is usable.
	Ready func(ctx context.Context) error
}

// Wait blocks until every resource is ready. The first failure wins and is
// returned as a RESOURCE_LOAD error naming the resource.
func Wait(ctx context.Context, resources ...Resource) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range resources {
		g.Go(func() error {
			return await(gctx, r)
		})
	}
	return g.Wait()
}

func await(ctx context.Context, r Resource) error {
	if r.Ready == nil {
		return nil
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- r.Ready(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			if errors.Is(err, errors.ErrCodeResourceLoad) {
				return err
			}
			return errors.Wrap(errors.ErrCodeResourceLoad, err, "%s %s failed to load", r.Kind, r.Name)
		}
		return nil
	case <-ctx.Done():
		if r.Timeout > 0 && ctx.Err() == context.DeadlineExceeded {
			return errors.Wrap(errors.ErrCodeResourceLoad, ctx.Err(), "%s %s not ready after %s", r.Kind, r.Name, r.Timeout)
		}
		return errors.Wrap(errors.ErrCodeResourceLoad, ctx.Err(), "%s %s wait cancelled", r.Kind, r.Name)
	}
}
