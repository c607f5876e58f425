// Package resilient races a live data fetch against a timeout and degrades
// to a static fallback dataset instead of surfacing persistence errors.
package resilient

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTimeout bounds how long a live query may hold up a response.
const DefaultTimeout = 3 * time.Second

// Source records where an outcome's value came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Outcome carries the winning value plus its provenance, so callers can
// count degraded responses without changing the value's shape.
type Outcome[T any] struct {
	Value  T
	Source Source
	Err    error // live query error, nil when the value is live or the timer won
}

// Fallback reports whether the outcome was served from the fallback dataset.
func (o Outcome[T]) Fallback() bool {
	return o.Source == SourceFallback
}

type result[T any] struct {
	value T
	err   error
}

// Execute runs live against a timer of the given timeout. The first to
// settle wins: a live result inside the deadline is returned as-is, while a
// timeout or a live error yields the fallback value. The losing live call is
// cancelled through its context rather than abandoned. Execute never returns
// an error to the caller; worst-case latency is the timeout itself.
func Execute[T any](ctx context.Context, timeout time.Duration, live func(context.Context) (T, error), fallback T) Outcome[T] {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan result[T], 1)
	go func() {
		value, err := live(queryCtx)
		ch <- result[T]{value: value, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return Outcome[T]{Value: fallback, Source: SourceFallback, Err: res.err}
		}
		return Outcome[T]{Value: res.value, Source: SourceLive}
	case <-queryCtx.Done():
		return Outcome[T]{Value: fallback, Source: SourceFallback}
	}
}

// Log emits a warning when an outcome degraded, tagged with the query name.
func Log[T any](logger *slog.Logger, name string, o Outcome[T]) {
	if logger == nil || !o.Fallback() {
		return
	}
	if o.Err != nil {
		logger.Warn("live query failed, serving fallback", "query", name, slog.Any("error", o.Err))
		return
	}
	logger.Warn("live query timed out, serving fallback", "query", name)
}
