package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/pad-overlay/internal/logging/events"
	"github.com/atomicstack/pad-overlay/internal/nav"
	"github.com/atomicstack/pad-overlay/internal/theme"
	uistate "github.com/atomicstack/pad-overlay/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuHeaderSeparator = "→"
	// DefaultFrameInterval redraws at roughly 60Hz.
	DefaultFrameInterval = time.Second / 60
	infoDuration         = 5 * time.Second
)

var styles = theme.Default()

// Source provides navigator snapshots.
type Source interface {
	Snapshot() nav.Snapshot
}

// closer is implemented by sources that can hide the menu on request.
type closer interface {
	Close()
}

type msgHandler func(tea.Msg) tea.Cmd

type tickMsg time.Time

// VisibilityMsg announces that the menu was opened or closed.
type VisibilityMsg struct {
	Visible bool
}

// StatusMsg shows a transient message below the menu. Err takes precedence.
type StatusMsg struct {
	Text string
	Err  error
}

type keyMap struct {
	Quit key.Binding
	Hide key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Hide: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "hide menu")),
	}
}

// Options tune the renderer.
type Options struct {
	Width         int
	Height        int
	ShowFooter    bool
	FrameInterval time.Duration
}

// Model implements the Bubble Tea model that draws the overlay. It never
// mutates navigation state except through the optional hide binding.
type Model struct {
	source      Source
	snap        nav.Snapshot
	viewport    uistate.Viewport
	keys        keyMap
	interval    time.Duration
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	errMsg      string
	infoMsg     string
	infoExpire  time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel creates a renderer over src.
func NewModel(src Source, opts Options) *Model {
	m := &Model{
		source:     src,
		keys:       defaultKeyMap(),
		interval:   opts.FrameInterval,
		showFooter: opts.ShowFooter,
	}
	if m.interval <= 0 {
		m.interval = DefaultFrameInterval
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.refresh()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(VisibilityMsg{}):     m.handleVisibilityMsg,
		reflect.TypeOf(StatusMsg{}):         m.handleStatusMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) refresh() {
	if m.source == nil {
		m.snap = nav.Snapshot{}
		return
	}
	m.snap = m.source.Snapshot()
	m.viewport.Follow(m.snap.Title, m.snap.Depth())
}

func (m *Model) handleTickMsg(tea.Msg) tea.Cmd {
	m.refresh()
	return m.tick()
}

func (m *Model) handleVisibilityMsg(msg tea.Msg) tea.Cmd {
	vis, ok := msg.(VisibilityMsg)
	if !ok {
		if ptr, isPtr := msg.(*VisibilityMsg); isPtr && ptr != nil {
			vis = *ptr
		}
	}
	events.UI.Visibility(vis.Visible)
	m.refresh()
	return nil
}

func (m *Model) handleStatusMsg(msg tea.Msg) tea.Cmd {
	status, ok := msg.(StatusMsg)
	if !ok {
		return nil
	}
	if status.Err != nil {
		m.errMsg = status.Err.Error()
		return nil
	}
	m.errMsg = ""
	m.setInfo(status.Text)
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Hide):
		if c, ok := m.source.(closer); ok {
			return hideCmd(c)
		}
	}
	return nil
}

// hideCmd closes the menu off the event loop; closing notifies visibility
// observers, which may send back into the program.
func hideCmd(c closer) tea.Cmd {
	return func() tea.Msg {
		c.Close()
		return VisibilityMsg{Visible: false}
	}
}

// NotifyVisibility returns a visibility observer that forwards flips to p.
// It never blocks the caller, so it is safe to invoke from the event loop.
func NotifyVisibility(p *tea.Program) nav.VisibilityFunc {
	return func(visible bool) {
		go p.Send(VisibilityMsg{Visible: visible})
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = strings.TrimSpace(message)
	m.infoExpire = time.Now().Add(infoDuration)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
