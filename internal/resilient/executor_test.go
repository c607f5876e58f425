package resilient

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecuteReturnsLiveResult(t *testing.T) {
	live := func(ctx context.Context) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}
	outcome := Execute(context.Background(), 500*time.Millisecond, live, -1)
	if outcome.Fallback() {
		t.Fatalf("expected live outcome, got fallback")
	}
	if outcome.Value != 42 {
		t.Fatalf("value = %d, want 42", outcome.Value)
	}
}

func TestExecuteFallsBackOnTimeout(t *testing.T) {
	live := func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	start := time.Now()
	outcome := Execute(context.Background(), 50*time.Millisecond, live, -1)
	if !outcome.Fallback() {
		t.Fatalf("expected fallback outcome")
	}
	if outcome.Value != -1 {
		t.Fatalf("value = %d, want fallback -1", outcome.Value)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("executor blocked %s past its timeout", elapsed)
	}
}

func TestExecuteFallsBackOnLiveError(t *testing.T) {
	wantErr := errors.New("connection refused")
	live := func(ctx context.Context) ([]string, error) {
		return nil, wantErr
	}
	outcome := Execute(context.Background(), time.Second, live, []string{"sample"})
	if !outcome.Fallback() {
		t.Fatalf("expected fallback outcome")
	}
	if !errors.Is(outcome.Err, wantErr) {
		t.Fatalf("err = %v, want %v", outcome.Err, wantErr)
	}
	if len(outcome.Value) != 1 || outcome.Value[0] != "sample" {
		t.Fatalf("value = %v, want fallback dataset", outcome.Value)
	}
}

func TestExecuteCancelsLosingQuery(t *testing.T) {
	cancelled := make(chan struct{})
	live := func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	}
	Execute(context.Background(), 20*time.Millisecond, live, 0)
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatalf("live query context was never cancelled")
	}
}

func TestExecuteDefaultsTimeout(t *testing.T) {
	outcome := Execute(context.Background(), 0, func(ctx context.Context) (string, error) {
		return "live", nil
	}, "fallback")
	if outcome.Value != "live" {
		t.Fatalf("value = %s, want live", outcome.Value)
	}
}
