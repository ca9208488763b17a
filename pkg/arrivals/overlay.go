package arrivals

import (
	"context"
	"sync/atomic"

	"github.com/mosayeb-a/tehran-metro-sub000/pkg/metro"
	"github.com/rs/zerolog/log"
)

// Overlay computes an estimate in the background so an itinerary can be shown
// before its times are known. The result is published whole or not at all.
type Overlay struct {
	result atomic.Pointer[Estimate]
	err    atomic.Pointer[error]
	cancel context.CancelFunc
	done   chan struct{}
}

func StartOverlay(ctx context.Context, estimator *Estimator, items []metro.PathItem, options Options) *Overlay {
	ctx, cancel := context.WithCancel(ctx)

	overlay := &Overlay{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(overlay.done)
		defer cancel()

		estimate, err := estimator.Estimate(ctx, items, options)
		if err != nil {
			log.Debug().Err(err).Msg("Arrival overlay stopped")
			overlay.err.Store(&err)
			return
		}

		overlay.result.Store(estimate)
	}()

	return overlay
}

// Done is closed once the overlay has finished or been cancelled
func (o *Overlay) Done() <-chan struct{} {
	return o.done
}

// Result returns the published estimate, nil until the overlay has completed successfully
func (o *Overlay) Result() *Estimate {
	return o.result.Load()
}

func (o *Overlay) Err() error {
	if err := o.err.Load(); err != nil {
		return *err
	}

	return nil
}

func (o *Overlay) Cancel() {
	o.cancel()
}

// Wait blocks until the overlay finishes or ctx ends
func (o *Overlay) Wait(ctx context.Context) (*Estimate, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-o.done:
		return o.Result(), o.Err()
	}
}
