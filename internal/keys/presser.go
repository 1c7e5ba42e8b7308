package keys

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/atomicstack/pad-overlay/internal/logging/events"
	"github.com/micmonay/keybd_event"
)

// Presser presses and releases a single key.
type Presser interface {
	Press(Key) error
}

// Injector sends key presses to the operating system.
type Injector struct {
	mu sync.Mutex
	kb keybd_event.KeyBonding
}

// NewInjector prepares the OS keyboard injector.
func NewInjector() (*Injector, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keyboard injector: %w", err)
	}
	// the uinput device needs a moment before events are delivered
	if runtime.GOOS == "linux" {
		time.Sleep(2 * time.Second)
	}
	return &Injector{kb: kb}, nil
}

// Press implements Presser.
func (i *Injector) Press(k Key) error {
	if !k.Valid {
		return fmt.Errorf("%w %q", ErrUnknownKey, k.Name)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.kb.Clear()
	i.kb.SetKeys(k.Code)
	if err := i.kb.Launching(); err != nil {
		return fmt.Errorf("press %s: %w", k.Name, err)
	}
	return nil
}

// DryRun records presses in the trace log instead of injecting them.
type DryRun struct{}

// Press implements Presser.
func (DryRun) Press(k Key) error {
	if !k.Valid {
		return fmt.Errorf("%w %q", ErrUnknownKey, k.Name)
	}
	events.Keys.DryRun(k.Name, k.Code)
	return nil
}
