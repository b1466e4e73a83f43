package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func startExecutor(t *testing.T) *Executor {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	e := NewExecutor(zerolog.Nop())
	e.Start(ctx)
	return e
}

func TestExecutor_RunsOneAtATime(t *testing.T) {
	e := startExecutor(t)

	var (
		mu      sync.Mutex
		running int
		maxSeen int
		counter int
	)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := e.Do(context.Background(), func(context.Context) error {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()

				// Unsynchronised read-modify-write; safe only when serialized.
				v := counter
				time.Sleep(time.Microsecond)
				counter = v + 1

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("Do returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected at most one operation at a time, saw %d", maxSeen)
	}
	if counter != 50 {
		t.Fatalf("expected 50 increments, got %d", counter)
	}
}

func TestExecutor_ReturnsOperationError(t *testing.T) {
	e := startExecutor(t)
	boom := errors.New("boom")

	if err := e.Do(context.Background(), func(context.Context) error { return boom }); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestExecutor_SkipsCancelledOperation(t *testing.T) {
	e := startExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := e.Do(ctx, func(context.Context) error {
		ran = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ran {
		t.Fatalf("cancelled operation must not run")
	}
}

func TestExecutor_StartedOperationIsNotCancelled(t *testing.T) {
	e := startExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := e.Do(ctx, func(opCtx context.Context) error {
		cancel()
		return opCtx.Err()
	})
	if err != nil {
		t.Fatalf("operation context should outlive the request, got %v", err)
	}
}

func TestExecutor_Stopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewExecutor(zerolog.Nop())
	e.Start(ctx)
	cancel()
	<-e.stopped

	if err := e.Do(context.Background(), func(context.Context) error { return nil }); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestExecutor_PanicKeepsWorkerAlive(t *testing.T) {
	e := startExecutor(t)

	err := e.Do(context.Background(), func(context.Context) error {
		panic("boom")
	})
	if !errors.Is(err, ErrPanicked) {
		t.Fatalf("expected ErrPanicked, got %v", err)
	}

	ran := false
	if err := e.Do(context.Background(), func(context.Context) error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("next operation failed: %v", err)
	}
	if !ran {
		t.Fatal("worker did not run the next operation")
	}
}
