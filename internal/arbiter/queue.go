// Package arbiter merges the periodic gravity tick and asynchronous player
// input into one ordered stream of commands for the engine loop.
package arbiter

import (
	"context"
	"errors"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrClosed is returned by Queue.Pop once the queue has been closed.
var ErrClosed = errors.New("arbiter: queue closed")

// Queue is an unbounded FIFO of commands. Any number of goroutines may push;
// a single consumer pops. Push never blocks.
type Queue struct {
	mu     sync.Mutex
	items  []core.Command
	closed bool

	signal    chan struct{} // capacity 1, poked on every push
	done      chan struct{}
	closeOnce sync.Once
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Push appends a command. It returns false if the queue is closed.
func (q *Queue) Push(c core.Command) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, c)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
		// consumer already has a pending wake-up
	}
	return true
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pop removes and returns the oldest command, blocking until one is
// available, the queue is closed, or ctx is done.
func (q *Queue) Pop(ctx context.Context) (core.Command, error) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return core.CommandIgnored, ErrClosed
		}
		if len(q.items) > 0 {
			c := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return c, nil
		}
		q.mu.Unlock()

		select {
		case <-q.signal:
		case <-q.done:
		case <-ctx.Done():
			return core.CommandIgnored, ctx.Err()
		}
	}
}

// Close discards pending commands and wakes the consumer.
// Safe to call multiple times.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.items = nil
		q.mu.Unlock()
		close(q.done)
	})
}
