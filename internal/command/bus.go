// Package command runs key sequences one at a time on a dedicated worker so
// presses from different menu actions never interleave.
package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/pad-overlay/internal/keys"
	"github.com/atomicstack/pad-overlay/internal/logging"
	"github.com/atomicstack/pad-overlay/internal/logging/events"
	"github.com/google/uuid"
)

const (
	DefaultDelay = 20 * time.Millisecond
	DefaultDepth = 4
)

var (
	ErrQueueFull = errors.New("key sequence queue full")
	ErrClosed    = errors.New("key sequence bus closed")
)

// Request is a key sequence waiting to be pressed.
type Request struct {
	ID    string
	Label string
	Keys  keys.Sequence
}

// Bus serialises key sequence emission.
type Bus struct {
	presser keys.Presser
	delay   time.Duration
	onError func(error)

	ctx    context.Context
	cancel context.CancelFunc

	last time.Time

	mu     sync.Mutex
	closed bool
	queue  chan Request
	wg     sync.WaitGroup
}

type Option func(*Bus)

// WithDelay sets the pause between consecutive presses.
func WithDelay(d time.Duration) Option {
	return func(b *Bus) {
		if d >= 0 {
			b.delay = d
		}
	}
}

// WithDepth sets how many sequences may wait behind the running one.
func WithDepth(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.queue = make(chan Request, n)
		}
	}
}

// WithErrorHandler replaces the default error logger.
func WithErrorHandler(fn func(error)) Option {
	return func(b *Bus) {
		if fn != nil {
			b.onError = fn
		}
	}
}

// New starts a bus pressing keys through p.
func New(p keys.Presser, opts ...Option) *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bus{
		presser: p,
		delay:   DefaultDelay,
		onError: logging.Error,
		ctx:     ctx,
		cancel:  cancel,
		queue:   make(chan Request, DefaultDepth),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.wg.Add(1)
	go b.run()
	return b
}

// Emit queues seq, logging when it has to be dropped.
func (b *Bus) Emit(label string, seq keys.Sequence) {
	req := Request{ID: uuid.NewString(), Label: label, Keys: seq}
	if err := b.Submit(req); err != nil {
		events.Keys.Drop(req.ID, label)
		b.onError(fmt.Errorf("drop %q: %w", label, err))
	}
}

// Submit queues req without blocking.
func (b *Bus) Submit(req Request) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	select {
	case b.queue <- req:
		events.Keys.Queue(req.ID, req.Label, req.Keys.Names())
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting requests and waits until queued sequences have
// been pressed.
func (b *Bus) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.mu.Unlock()
	b.wg.Wait()
}

// Stop abandons pending delays and queued sequences, then waits for the
// worker to exit.
func (b *Bus) Stop() {
	b.cancel()
	b.Close()
}

func (b *Bus) run() {
	defer b.wg.Done()
	for req := range b.queue {
		if b.ctx.Err() != nil {
			events.Keys.Cancel(req.ID, len(req.Keys))
			continue
		}
		b.execute(req)
	}
}

func (b *Bus) execute(req Request) {
	pressed := 0
	for i, k := range req.Keys {
		if !k.Valid {
			err := fmt.Errorf("%s: %w %q", req.Label, keys.ErrUnknownKey, k.Name)
			events.Keys.Invalid(req.ID, k.Name, err)
			b.onError(err)
			continue
		}
		if !b.wait() {
			events.Keys.Cancel(req.ID, len(req.Keys)-i)
			return
		}
		if err := b.presser.Press(k); err != nil {
			events.Keys.Invalid(req.ID, k.Name, err)
			b.onError(err)
			continue
		}
		b.last = time.Now()
		pressed++
		events.Keys.Press(req.ID, k.Name)
	}
	events.Keys.Done(req.ID, pressed)
}

// wait holds off until the inter-key delay since the previous press has
// passed. It reports false when the bus was stopped meanwhile.
func (b *Bus) wait() bool {
	remaining := b.delay
	if b.last.IsZero() {
		remaining = 0
	} else {
		remaining -= time.Since(b.last)
	}
	if remaining <= 0 {
		return b.ctx.Err() == nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-b.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
