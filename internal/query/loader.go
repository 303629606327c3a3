package query

import (
	"context"
	"errors"
	"sync"

	"financas/internal/log"
)

// Fetch produces the value for a query. Implementations must honor ctx
// cancellation; a superseded reload is cancelled mid-flight.
type Fetch[Q comparable, V any] func(ctx context.Context, q Q) (V, error)

// Loader serializes view refreshes over a single fetch function. Each
// Reload cancels the in-flight fetch and the result is applied only if no
// newer reload was issued meanwhile, so a slow stale response can never
// overwrite a faster newer one.
type Loader[Q comparable, V any] struct {
	fetch  Fetch[Q, V]
	logger *log.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
	cancel  context.CancelFunc
	value   V
	query   Q
	loaded  bool
	onSwap  func(Q, V)
}

// NewLoader wraps fetch. onSwap, if non-nil, runs after every applied
// swap with the query and fresh value. It is called with the loader's
// lock held so callbacks observe swaps in apply order; it must not call
// back into the loader.
func NewLoader[Q comparable, V any](fetch Fetch[Q, V], logger *log.Logger, onSwap func(Q, V)) *Loader[Q, V] {
	return &Loader[Q, V]{
		fetch:  fetch,
		logger: logger.WithComponent(log.ComponentLoader),
		onSwap: onSwap,
	}
}

// Reload fetches the value for q, superseding any fetch still in flight.
// It returns the fetched value, or the error that stopped it. A reload
// overtaken by a newer one reports context.Canceled.
func (l *Loader[Q, V]) Reload(ctx context.Context, q Q) (V, error) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.issued++
	seq := l.issued
	l.mu.Unlock()

	v, err := l.fetch(fetchCtx, q)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			l.logger.ErrorContext(ctx, "reload failed",
				log.FieldOperation, log.OpReload, log.FieldError, err.Error())
		}
		var zero V
		return zero, err
	}

	l.mu.Lock()
	if seq < l.issued || seq <= l.applied {
		// A newer reload was issued while this one was in flight.
		l.mu.Unlock()
		var zero V
		return zero, context.Canceled
	}
	l.applied = seq
	l.value = v
	l.query = q
	l.loaded = true
	if l.onSwap != nil {
		l.onSwap(q, v)
	}
	l.mu.Unlock()
	return v, nil
}

// Snapshot returns the most recently applied value. ok is false until the
// first successful reload.
func (l *Loader[Q, V]) Snapshot() (v V, q Q, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.query, l.loaded
}

// Cancel aborts the in-flight fetch, if any.
func (l *Loader[Q, V]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
