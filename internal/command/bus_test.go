package command

import (
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/pad-overlay/internal/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPresser struct {
	mock.Mock
}

func (m *mockPresser) Press(k keys.Key) error {
	return m.Called(k.Name).Error(0)
}

type timedPresser struct {
	mu    sync.Mutex
	names []string
	times []time.Time
}

func (p *timedPresser) Press(k keys.Key) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names = append(p.names, k.Name)
	p.times = append(p.times, time.Now())
	return nil
}

type blockingPresser struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func (p *blockingPresser) Press(keys.Key) error {
	p.once.Do(func() { close(p.started) })
	<-p.release
	return nil
}

type errorLog struct {
	mu   sync.Mutex
	errs []error
}

func (l *errorLog) add(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func seq(names ...string) keys.Sequence {
	table := keys.NewTable(map[string]int{"X": 1, "Y": 2, "Z": 3})
	s, _ := table.Compile(names)
	return s
}

func TestUnknownKeyIsSkippedAndSequenceContinues(t *testing.T) {
	p := &mockPresser{}
	p.On("Press", "Y").Return(nil).Once()
	p.On("Press", "Z").Return(nil).Once()
	log := &errorLog{}

	bus := New(p, WithDelay(time.Millisecond), WithErrorHandler(log.add))
	bus.Emit("wing", seq("Y", "BOGUS", "Z"))
	bus.Close()

	p.AssertExpectations(t)
	p.AssertNotCalled(t, "Press", "BOGUS")
	require.Len(t, log.errs, 1)
	assert.ErrorIs(t, log.errs[0], keys.ErrUnknownKey)
	assert.Contains(t, log.errs[0].Error(), "BOGUS")
}

func TestPressErrorDoesNotAbortSequence(t *testing.T) {
	p := &mockPresser{}
	p.On("Press", "X").Return(assert.AnError).Once()
	p.On("Press", "Y").Return(nil).Once()
	log := &errorLog{}

	bus := New(p, WithDelay(0), WithErrorHandler(log.add))
	bus.Emit("pair", seq("X", "Y"))
	bus.Close()

	p.AssertExpectations(t)
	require.Len(t, log.errs, 1)
	assert.ErrorIs(t, log.errs[0], assert.AnError)
}

func TestSequencesRunInOrderWithDelay(t *testing.T) {
	p := &timedPresser{}
	bus := New(p, WithDelay(20*time.Millisecond))
	bus.Emit("first", seq("X", "Y"))
	bus.Emit("second", seq("Z"))
	bus.Close()

	require.Equal(t, []string{"X", "Y", "Z"}, p.names)
	for i := 1; i < len(p.times); i++ {
		assert.GreaterOrEqual(t, p.times[i].Sub(p.times[i-1]), 15*time.Millisecond)
	}
}

func TestQueueFullDropsRequest(t *testing.T) {
	p := &blockingPresser{release: make(chan struct{}), started: make(chan struct{})}
	log := &errorLog{}
	bus := New(p, WithDepth(1), WithDelay(0), WithErrorHandler(log.add))

	bus.Emit("running", seq("X"))
	<-p.started
	require.NoError(t, bus.Submit(Request{Label: "queued", Keys: seq("Y")}))
	assert.ErrorIs(t, bus.Submit(Request{Label: "overflow", Keys: seq("Z")}), ErrQueueFull)

	bus.Emit("dropped", seq("Z"))
	close(p.release)
	bus.Close()

	require.Len(t, log.errs, 1)
	assert.ErrorIs(t, log.errs[0], ErrQueueFull)
}

func TestStopCancelsPendingDelay(t *testing.T) {
	p := &timedPresser{}
	bus := New(p, WithDelay(time.Hour))
	bus.Emit("slow", seq("X", "Y"))

	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return len(p.names) == 1
	}, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		bus.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("stop blocked on pending delay")
	}
	assert.Equal(t, []string{"X"}, p.names)
}

func TestSubmitAfterCloseFails(t *testing.T) {
	bus := New(&timedPresser{})
	bus.Close()
	bus.Close()
	assert.ErrorIs(t, bus.Submit(Request{Label: "late"}), ErrClosed)
}
