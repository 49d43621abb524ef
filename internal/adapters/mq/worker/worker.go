// Package worker runs queued commands one at a time.
//
// Exactly one worker consumes a queue, which makes it the only writer of
// whatever state the commands touch.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/padelmatch/internal/adapters/mq/queue"
	"github.com/okian/padelmatch/pkg/logger"
	"github.com/okian/padelmatch/pkg/metrics"
)

// Queue defines how the worker receives commands.
type Queue interface {
	Dequeue() <-chan *queue.Command
}

// Worker executes commands until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled, Shutdown is called
	// or the queue is closed.
	Run(ctx context.Context)
	// Shutdown stops the worker and waits for the loop to exit.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue Queue
	name  string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker reading from q.
func NewInMemoryWorker(q Queue, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop. Commands still queued when the loop stops
// are failed with ErrStopped so no submitter waits forever.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)
	commands := w.queue.Dequeue()
	for {
		// Stop requests win over queued work.
		select {
		case <-ctx.Done():
			w.drain(ctx, commands)
			return
		case <-w.shutdown:
			w.drain(ctx, commands)
			return
		default:
		}
		select {
		case <-ctx.Done():
			w.drain(ctx, commands)
			return
		case <-w.shutdown:
			w.drain(ctx, commands)
			return
		case c, ok := <-commands:
			if !ok {
				return
			}
			w.process(c)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once the loop has exited.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) drain(ctx context.Context, commands <-chan *queue.Command) {
	n := 0
	for {
		select {
		case c, ok := <-commands:
			if !ok {
				return
			}
			c.Fail(ErrStopped)
			n++
		default:
			if n > 0 {
				w.logger.Warn(ctx, "dropped queued commands on stop", logger.Int("count", n))
			}
			return
		}
	}
}

// process executes one command and records its outcome.
func (w *InMemoryWorker) process(c *queue.Command) {
	metrics.RecordQueueDequeue()
	metrics.RecordQueueWaitLatency(ms(time.Since(c.EnqueuedAt)))

	start := time.Now()
	err := w.execute(c)
	took := time.Since(start)

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, queue.ErrCanceled):
		outcome = "canceled"
	case errors.Is(err, ErrPanic):
		outcome = "panic"
	default:
		outcome = "error"
	}
	metrics.RecordCommandProcessed(outcome, ms(took))
	w.logger.Debug(c.Context(), "command executed",
		logger.String("command", c.Name),
		logger.String("outcome", outcome),
		logger.Duration("took", took),
	)
}

// execute runs c, turning a panic into an error so the loop survives.
func (w *InMemoryWorker) execute(c *queue.Command) (err error) {
	published := false
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordWorkerPanic()
			err = fmt.Errorf("%w: %s: %v", ErrPanic, c.Name, r)
			w.logger.Error(c.Context(), "command panicked", logger.String("command", c.Name), logger.Any("panic", r))
			if !published {
				c.Fail(err)
			}
		}
	}()
	err = c.Execute()
	published = true
	return err
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
