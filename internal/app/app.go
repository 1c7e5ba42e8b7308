// Package app wires the controller poller, menu navigator, key emitter and
// renderer together and owns their lifetimes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/atomicstack/pad-overlay/internal/command"
	"github.com/atomicstack/pad-overlay/internal/data/dispatcher"
	"github.com/atomicstack/pad-overlay/internal/device"
	"github.com/atomicstack/pad-overlay/internal/format/table"
	"github.com/atomicstack/pad-overlay/internal/input"
	"github.com/atomicstack/pad-overlay/internal/keys"
	"github.com/atomicstack/pad-overlay/internal/logging"
	"github.com/atomicstack/pad-overlay/internal/logging/events"
	"github.com/atomicstack/pad-overlay/internal/menu"
	"github.com/atomicstack/pad-overlay/internal/nav"
	"github.com/atomicstack/pad-overlay/internal/theme"
	"github.com/atomicstack/pad-overlay/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	ConfigDir    string
	MenuFile     string
	JoystickFile string
	MenuPath     string
	JoystickPath string
	RootMenu     string
	PollInterval time.Duration
	KeyDelay     time.Duration
	DryRun       bool
	Headless     bool
	ListDevices  bool
	Watch        bool
	Width        int
	Height       int
	ShowFooter   bool
}

// Hardware is the controller backend.
type Hardware struct {
	Init func() error
	Quit func()
	List func() []device.Info
	Open func(guid string) device.Opener
	// Backoff overrides the delay between attempts to acquire the device.
	Backoff time.Duration
}

// Run bootstraps the overlay and blocks until the renderer exits or, when
// headless, until SIGINT or SIGTERM.
func Run(cfg Config, hw Hardware) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.ListDevices {
		return ListDevices(os.Stdout, hw)
	}
	return run(ctx, cfg, hw, nil)
}

// ListDevices writes a table of attached controllers to w.
func ListDevices(w io.Writer, hw Hardware) error {
	if err := hw.Init(); err != nil {
		return err
	}
	defer hw.Quit()
	infos := hw.List()
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "no controllers attached")
		return err
	}
	for i, line := range deviceRows(infos) {
		if i == 0 {
			line = theme.Default().TableHeader.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func deviceRows(infos []device.Info) []string {
	rows := make([][]string, 0, len(infos)+1)
	rows = append(rows, []string{"#", "NAME", "GUID", "BUTTONS", "HATS"})
	for _, info := range infos {
		rows = append(rows, []string{
			strconv.Itoa(info.Index),
			info.Name,
			info.GUID,
			strconv.Itoa(info.Buttons),
			strconv.Itoa(info.Hats),
		})
	}
	return table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight})
}

// overlay holds the running collaborators.
type overlay struct {
	cfg      Config
	hw       Hardware
	resolver *keys.Table
	bus      *command.Bus
	nav      *nav.Navigator
	poller   *device.Poller
	watcher  *menu.Watcher
	hwReady  bool

	statusMu sync.Mutex
	status   func(ui.StatusMsg)
}

// run starts every collaborator. A nil presser selects one from cfg.
func run(ctx context.Context, cfg Config, hw Hardware, presser keys.Presser) error {
	o := &overlay{cfg: cfg, hw: hw, resolver: keys.DefaultTable()}
	defer o.shutdown()

	if presser == nil {
		presser = o.presser()
	}
	o.bus = command.New(presser, command.WithDelay(cfg.KeyDelay))
	o.nav = nav.New(o.loadMenu(), o.bus)
	o.startPoller()
	o.startWatcher()

	if cfg.Headless {
		logging.Info("pad-overlay running headless; press Ctrl+C to exit")
		<-ctx.Done()
		events.App.Stop(ctx.Err().Error())
		return nil
	}
	return o.render(ctx)
}

func (o *overlay) presser() keys.Presser {
	if o.cfg.DryRun {
		return keys.DryRun{}
	}
	inj, err := keys.NewInjector()
	if err != nil {
		logging.Error(err)
		logging.Info("key injection unavailable, falling back to dry run: %v", err)
		return keys.DryRun{}
	}
	return inj
}

// loadMenu returns the navigator root, or nil when no usable menu exists.
func (o *overlay) loadMenu() *menu.Node {
	tree, err := menu.Load(o.cfg.MenuPath)
	if err != nil {
		logging.Error(err)
		logging.Info("menu unavailable (%v); the overlay will not open", err)
		return nil
	}
	if warn := tree.Compile(o.resolver); warn != nil {
		logging.Error(fmt.Errorf("menu %s: %w", o.cfg.MenuPath, warn))
	}
	return o.root(tree)
}

// root applies the root-menu override to tree.
func (o *overlay) root(tree *menu.Tree) *menu.Node {
	if o.cfg.RootMenu == "" {
		return tree.Root
	}
	sub, ok := tree.Subtree(o.cfg.RootMenu)
	if !ok {
		logging.Error(fmt.Errorf("root menu %q not found in %s, using the full menu", o.cfg.RootMenu, o.cfg.MenuPath))
		return tree.Root
	}
	return sub.Root
}

func (o *overlay) startPoller() {
	cfg, err := input.LoadConfig(o.cfg.JoystickPath)
	if err != nil {
		logging.Error(err)
		logging.Info("controller mapping unavailable (%v); input is disabled", err)
		return
	}
	mapping, err := input.NewTable(cfg)
	if err != nil {
		logging.Error(fmt.Errorf("mapping %s: %w", o.cfg.JoystickPath, err))
		logging.Info("controller mapping rejected (%v); input is disabled", err)
		return
	}
	if err := o.hw.Init(); err != nil {
		logging.Error(err)
		logging.Info("controller backend unavailable: %v", err)
		return
	}
	o.hwReady = true
	if mapping.DeviceGUID == "" {
		o.logDevices()
		return
	}
	d := dispatcher.New(input.NewMapper(mapping), o.nav)
	o.poller = device.NewPoller(o.hw.Open(mapping.DeviceGUID), o.cfg.PollInterval, o.hw.Backoff, func(ev input.Event) {
		d.Handle(ev)
	})
	o.poller.Start()
}

// logDevices reports attached controllers so a GUID can be configured.
func (o *overlay) logDevices() {
	logging.Info("no JoystickGUID in %s; attached controllers:", o.cfg.JoystickPath)
	infos := o.hw.List()
	if len(infos) == 0 {
		logging.Info("  (none)")
		return
	}
	for _, line := range deviceRows(infos) {
		logging.Info("  %s", line)
	}
}

func (o *overlay) startWatcher() {
	if !o.cfg.Watch {
		return
	}
	w, err := menu.Watch(o.cfg.MenuPath, o.resolver, o.reload)
	if err != nil {
		logging.Error(err)
		return
	}
	o.watcher = w
}

func (o *overlay) reload(tree *menu.Tree, warn, err error) {
	events.Menu.Reload(o.cfg.MenuPath, err)
	if err != nil {
		logging.Error(fmt.Errorf("reload %s: %w", o.cfg.MenuPath, err))
		o.notify(ui.StatusMsg{Err: fmt.Errorf("menu reload failed: %w", err)})
		return
	}
	if warn != nil {
		logging.Error(fmt.Errorf("menu %s: %w", o.cfg.MenuPath, warn))
	}
	o.nav.SetRoot(o.root(tree))
	o.notify(ui.StatusMsg{Text: "menu reloaded"})
}

func (o *overlay) render(ctx context.Context) error {
	model := ui.NewModel(o.nav, ui.Options{
		Width:      o.cfg.Width,
		Height:     o.cfg.Height,
		ShowFooter: o.cfg.ShowFooter,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	detach := o.nav.OnVisibilityChange(ui.NotifyVisibility(program))
	defer detach()
	o.setStatus(func(msg ui.StatusMsg) { program.Send(msg) })

	logging.SetConsole(false)
	defer logging.SetConsole(true)
	_, err := program.Run()
	o.setStatus(nil)
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		events.App.Stop("signal")
		return nil
	}
	events.App.Stop("quit")
	return err
}

func (o *overlay) setStatus(fn func(ui.StatusMsg)) {
	o.statusMu.Lock()
	o.status = fn
	o.statusMu.Unlock()
}

// notify forwards msg to the renderer when one is running.
func (o *overlay) notify(msg ui.StatusMsg) {
	o.statusMu.Lock()
	fn := o.status
	o.statusMu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

// shutdown stops input first so nothing new is queued, then abandons
// pending key presses and releases the controller backend.
func (o *overlay) shutdown() {
	if o.poller != nil {
		o.poller.Stop()
	}
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			logging.Error(err)
		}
	}
	if o.nav != nil {
		o.nav.Close()
	}
	if o.bus != nil {
		o.bus.Stop()
	}
	if o.hwReady && o.hw.Quit != nil {
		o.hw.Quit()
	}
}
