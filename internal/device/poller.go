package device

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/pad-overlay/internal/input"
	"github.com/atomicstack/pad-overlay/internal/logging"
	"github.com/atomicstack/pad-overlay/internal/logging/events"
)

const (
	DefaultInterval = 10 * time.Millisecond
	DefaultBackoff  = time.Second
)

// Poller owns a Source for its whole lifetime: it acquires the device,
// polls it at a fixed interval, hands every event to the handler on the
// polling goroutine, and releases the device only after polling stopped.
type Poller struct {
	open     Opener
	interval time.Duration
	retry    *throttle
	handle   func(input.Event)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewPoller creates a poller. Events are delivered to handle in order.
func NewPoller(open Opener, interval, backoff time.Duration, handle func(input.Event)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		open:     open,
		interval: interval,
		retry:    newThrottle(backoff),
		handle:   handle,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the polling goroutine. Calling Start more than once has no
// effect.
func (p *Poller) Start() {
	p.once.Do(func() {
		p.wg.Add(1)
		go p.run()
	})
}

// Stop ends polling and waits until the device has been released.
func (p *Poller) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *Poller) run() {
	defer p.wg.Done()
	var lastErr string
	for p.retry.wait(p.ctx) {
		src, err := p.open()
		if err != nil {
			if msg := err.Error(); msg != lastErr {
				logging.Error(fmt.Errorf("open device: %w", err))
				lastErr = msg
			}
			continue
		}
		lastErr = ""
		events.Device.Open(src.Name(), "")
		err = p.poll(src)
		if cerr := src.Close(); cerr != nil {
			logging.Error(fmt.Errorf("release device: %w", cerr))
		}
		if err == nil {
			return
		}
		events.Device.Lost(err)
		logging.Error(fmt.Errorf("device %s: %w", src.Name(), err))
	}
}

// poll reads src until the poller is stopped (nil) or the source fails.
func (p *Poller) poll(src Source) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		evs, err := src.Poll()
		if err != nil {
			return err
		}
		for _, ev := range evs {
			if p.ctx.Err() != nil {
				return nil
			}
			p.handle(ev)
		}
		select {
		case <-p.ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// IsMissing reports whether err means no device could be used.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNoDevice) || errors.Is(err, ErrNoGUID)
}
