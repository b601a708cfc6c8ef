package arbiter

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// DefaultTickPeriod is the gravity interval.
const DefaultTickPeriod = 1500 * time.Millisecond

// InputSource is a line-oriented raw input stream that can be interrupted
// while a read is blocked. cancelreader.CancelReader satisfies it.
type InputSource interface {
	io.Reader
	Cancel() bool
}

// Arbiter owns the command queue and its producers: a ticker that enqueues
// CommandTick only when the queue is empty, and any number of input sources
// whose classified commands are enqueued as they arrive.
type Arbiter struct {
	queue  *Queue
	period time.Duration
	logger *log.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
	pending []InputSource
	inputs  []*input
	wg      sync.WaitGroup // tick producer
	stop    sync.Once
}

// input tracks one running input producer.
type input struct {
	src  InputSource
	done chan struct{}
}

// Option configures an Arbiter.
type Option func(*Arbiter)

// WithPeriod sets the tick period.
func WithPeriod(d time.Duration) Option {
	return func(a *Arbiter) {
		if d > 0 {
			a.period = d
		}
	}
}

// WithLogger sets the logger. Arbiters log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(a *Arbiter) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an idle arbiter. Call Start to launch the producers.
func New(opts ...Option) *Arbiter {
	a := &Arbiter{
		queue:  NewQueue(),
		period: DefaultTickPeriod,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Period returns the tick period.
func (a *Arbiter) Period() time.Duration {
	return a.period
}

// Start launches the tick producer and any input sources attached so far.
// Producers run until Stop is called or ctx is done.
func (a *Arbiter) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctx != nil || a.stopped {
		return
	}
	a.ctx, a.cancel = context.WithCancel(ctx)

	ticker := time.NewTicker(a.period)
	tickCtx := a.ctx
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer ticker.Stop()
		a.runTicks(tickCtx, ticker.C)
	}()

	for _, src := range a.pending {
		a.startInput(src)
	}
	a.pending = nil
}

// Attach registers an input source. Sources attached before Start are
// launched by Start; later ones start immediately. Sources attached after
// Stop are cancelled right away.
func (a *Arbiter) Attach(src InputSource) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		src.Cancel()
		return
	}
	if a.ctx == nil {
		a.pending = append(a.pending, src)
		return
	}
	a.startInput(src)
}

// startInput must be called with a.mu held.
func (a *Arbiter) startInput(src InputSource) {
	in := &input{src: src, done: make(chan struct{})}
	a.inputs = append(a.inputs, in)
	ctx := a.ctx
	go func() {
		defer close(in.done)
		a.readInput(ctx, src)
	}()
}

// Stop cancels the producers, closes the queue and waits for the ticker and
// every input whose blocked read could be interrupted. An input that cannot
// be interrupted exits on its next read. Sources attached but never started
// are cancelled.
func (a *Arbiter) Stop() {
	a.stop.Do(func() {
		a.mu.Lock()
		a.stopped = true
		if a.cancel != nil {
			a.cancel()
		}
		inputs := a.inputs
		pending := a.pending
		a.pending = nil
		a.mu.Unlock()

		for _, src := range pending {
			src.Cancel()
		}

		a.queue.Close()
		for _, in := range inputs {
			if in.src.Cancel() {
				<-in.done
			} else {
				a.logger.Debug("input source left to drain")
			}
		}
		a.wg.Wait()
		a.logger.Debug("arbiter stopped")
	})
}

// Submit enqueues a classified command. CommandIgnored is dropped here and
// never reaches the queue. It reports whether the command was enqueued.
func (a *Arbiter) Submit(cmd core.Command) bool {
	if cmd == core.CommandIgnored {
		return false
	}
	return a.queue.Push(cmd)
}

// SubmitRune classifies a single key press and enqueues it.
func (a *Arbiter) SubmitRune(r rune) bool {
	return a.Submit(core.ClassifyRune(r))
}

// SubmitLine classifies one line of text input and enqueues it.
func (a *Arbiter) SubmitLine(line string) bool {
	return a.Submit(core.ClassifyLine(line))
}

// Next blocks until a command is available and returns it.
func (a *Arbiter) Next(ctx context.Context) (core.Command, error) {
	return a.queue.Pop(ctx)
}

// Pending returns the number of queued commands.
func (a *Arbiter) Pending() int {
	return a.queue.Len()
}

// tick enqueues CommandTick if the queue is empty. A queued command means
// the consumer is busy, so the period is skipped rather than accumulated.
func (a *Arbiter) tick() bool {
	// The length check and push are not atomic; an input landing in between
	// only costs one extra tick.
	if a.queue.Len() > 0 {
		a.logger.Debug("tick skipped", "pending", a.queue.Len())
		return false
	}
	return a.queue.Push(core.CommandTick)
}

func (a *Arbiter) runTicks(ctx context.Context, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			a.tick()
		}
	}
}

func (a *Arbiter) readInput(ctx context.Context, src io.Reader) {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()
		if !a.SubmitLine(line) {
			a.logger.Debug("input ignored", "line", line)
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		a.logger.Warn("input stream failed", "error", err)
	}
}
