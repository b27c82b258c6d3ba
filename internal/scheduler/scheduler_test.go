package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hamprop/backend/internal/fetch"
)

type fakeFetcher struct {
	name    string
	calls   *int32
	failure error
}

func (f fakeFetcher) Name() string { return f.name }

func (f fakeFetcher) Refresh(ctx context.Context) error {
	atomic.AddInt32(f.calls, 1)
	return f.failure
}

func TestRunTicksImmediatelyAndIsolatesFailures(t *testing.T) {
	var okCalls, failCalls int32
	ok := fakeFetcher{name: "ok", calls: &okCalls}
	bad := fakeFetcher{name: "bad", calls: &failCalls, failure: errors.New("boom")}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := New([]fetch.Fetcher{ok, bad}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := sched.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run error = %v, want context.DeadlineExceeded", err)
	}
	if atomic.LoadInt32(&okCalls) == 0 {
		t.Fatal("expected the ok fetcher to run at least once on the immediate tick")
	}
	if atomic.LoadInt32(&failCalls) == 0 {
		t.Fatal("expected the failing fetcher to still run on the immediate tick")
	}
}
