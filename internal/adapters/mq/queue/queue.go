// Package queue defines the bounded command queue in front of the planner.
//
// Enqueue never blocks: a full queue is reported to the caller as
// backpressure instead of stalling request handlers.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/padelmatch/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a command to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, c *Command) bool

	// Dequeue returns the channel commands are delivered on.
	// The channel is closed when the queue is closed.
	Dequeue() <-chan *Command

	// Len returns the current number of queued commands.
	Len() int

	// Capacity returns the maximum number of queued commands.
	Capacity() int

	// Close stops accepting commands. Queued commands are still delivered.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	commands chan *Command
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.commands = make(chan *Command, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a command to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, c *Command) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}
	if ctx.Err() != nil {
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	}

	c.EnqueuedAt = time.Now()
	select {
	case q.commands <- c:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.commands))
		return true
	default:
		metrics.RecordQueueBackpressure()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns the command channel.
func (q *InMemoryQueue) Dequeue() <-chan *Command {
	return q.commands
}

// Len returns the current number of queued commands.
func (q *InMemoryQueue) Len() int {
	size := len(q.commands)
	metrics.UpdateQueueSize(size)
	return size
}

// Capacity returns the queue bound.
func (q *InMemoryQueue) Capacity() int { return q.capacity }

// Close stops accepting commands.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.commands)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
