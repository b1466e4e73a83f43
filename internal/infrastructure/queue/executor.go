package queue

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/pkg/metrics"
)

const channelBuffer = 256

// ErrStopped is returned for operations submitted after the executor stopped.
var ErrStopped = errors.New("executor stopped")

// ErrPanicked wraps the value of an operation that panicked. The worker
// survives and moves on to the next operation.
var ErrPanicked = errors.New("operation panicked")

type job struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Executor runs operations one at a time on a single worker goroutine, in
// submission order. Every read-modify-write of the store goes through it so
// no two of them interleave inside this process.
type Executor struct {
	jobs    chan job
	stopped chan struct{}
	log     zerolog.Logger
}

func NewExecutor(log zerolog.Logger) *Executor {
	return &Executor{
		jobs:    make(chan job, channelBuffer),
		stopped: make(chan struct{}),
		log:     log,
	}
}

// Start launches the worker. It stops when ctx is cancelled, after the
// operation in flight completes.
func (e *Executor) Start(ctx context.Context) {
	go e.run(ctx)
}

// Do runs fn on the worker and returns its error. An operation whose ctx
// is done before its turn is skipped with ctx.Err(); once fn starts it
// runs to completion and sees a context that is never cancelled.
func (e *Executor) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}
	select {
	case e.jobs <- j:
		metrics.ExecutorQueueDepth.Inc()
	case <-ctx.Done():
		return ctx.Err()
	case <-e.stopped:
		return ErrStopped
	}

	select {
	case err := <-j.done:
		return err
	case <-e.stopped:
		// The worker may have finished this job right before exiting.
		select {
		case err := <-j.done:
			return err
		default:
			return ErrStopped
		}
	}
}

func (e *Executor) run(ctx context.Context) {
	defer close(e.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-e.jobs:
			metrics.ExecutorQueueDepth.Dec()
			j.done <- e.exec(j)
		}
	}
}

func (e *Executor) exec(j job) error {
	if err := j.ctx.Err(); err != nil {
		e.log.Debug().Err(err).Msg("skipping cancelled operation")
		return err
	}

	start := time.Now()
	err := e.call(j)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.OperationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return err
}

func (e *Executor) call(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("recovered panic in operation")
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return j.fn(context.WithoutCancel(j.ctx))
}
