package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/pad-overlay/internal/menu"
	"github.com/atomicstack/pad-overlay/internal/nav"
	tea "github.com/charmbracelet/bubbletea"
)

type stubSource struct {
	snap   nav.Snapshot
	closed int
}

func (s *stubSource) Snapshot() nav.Snapshot { return s.snap }

func (s *stubSource) Close() {
	s.closed++
	s.snap = nav.Snapshot{}
}

func visibleSnap(selection int, path []string, items ...string) nav.Snapshot {
	return nav.Snapshot{
		Visible:   true,
		Title:     path[len(path)-1],
		Items:     items,
		Selection: selection,
		Path:      path,
	}
}

func TestHiddenMenuRendersNothing(t *testing.T) {
	m := NewModel(&stubSource{}, Options{})
	if view := m.View(); view != "" {
		t.Fatalf("expected empty view, got %q", view)
	}
}

func TestViewShowsItemsAndBreadcrumb(t *testing.T) {
	src := &stubSource{snap: visibleSnap(1, []string{"Main", "Comms"}, "Tower", "Wingman")}
	m := NewModel(src, Options{Width: 40})
	view := m.View()
	if !strings.Contains(view, "Main→Comms") {
		t.Fatalf("expected breadcrumb, got:\n%s", view)
	}
	for _, label := range []string{"Tower", "Wingman"} {
		if !strings.Contains(view, label) {
			t.Fatalf("expected %q in view, got:\n%s", label, view)
		}
	}
}

func TestViewEmptyMenu(t *testing.T) {
	src := &stubSource{snap: visibleSnap(0, []string{"Main"})}
	m := NewModel(src, Options{})
	if view := m.View(); !strings.Contains(view, "(no entries)") {
		t.Fatalf("expected placeholder, got:\n%s", view)
	}
}

func TestFrameTickPicksUpNewSnapshot(t *testing.T) {
	src := &stubSource{}
	h := NewHarness(NewModel(src, Options{}))
	src.snap = visibleSnap(0, []string{"Main"}, "Alpha")
	if h.View() != "" {
		t.Fatalf("view should not change before the next frame")
	}
	h.Frame()
	if !strings.Contains(h.View(), "Alpha") {
		t.Fatalf("expected refreshed view, got:\n%s", h.View())
	}
}

func TestVisibilityMsgRefreshesImmediately(t *testing.T) {
	src := &stubSource{}
	h := NewHarness(NewModel(src, Options{}))
	src.snap = visibleSnap(0, []string{"Main"}, "Alpha")
	h.Send(VisibilityMsg{Visible: true})
	if !strings.Contains(h.View(), "Alpha") {
		t.Fatalf("expected menu after visibility message, got:\n%s", h.View())
	}
}

func TestViewportKeepsSelectionVisible(t *testing.T) {
	items := make([]string, 20)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	src := &stubSource{snap: visibleSnap(15, []string{"Main"}, items...)}
	m := NewModel(src, Options{Height: 6})
	view := m.View()
	if !strings.Contains(view, "item-15") {
		t.Fatalf("expected selected item on screen, got:\n%s", view)
	}
	if strings.Contains(view, "item-00") {
		t.Fatalf("expected list to be scrolled, got:\n%s", view)
	}
}

func TestViewportResetsForNewMenu(t *testing.T) {
	items := make([]string, 20)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	src := &stubSource{snap: visibleSnap(19, []string{"Main"}, items...)}
	h := NewHarness(NewModel(src, Options{Height: 6}))
	_ = h.View()
	src.snap = visibleSnap(0, []string{"Main", "Sub"}, items...)
	h.Frame()
	if !strings.Contains(h.View(), "item-00") {
		t.Fatalf("expected top of submenu, got:\n%s", h.View())
	}
}

func TestLongLabelsAreTruncated(t *testing.T) {
	src := &stubSource{snap: visibleSnap(0, []string{"Main"}, strings.Repeat("x", 80))}
	m := NewModel(src, Options{Width: 20})
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.Contains(line, strings.Repeat("x", 20)) {
			t.Fatalf("expected truncated line, got %q", line)
		}
	}
}

func TestStatusMsgShowsError(t *testing.T) {
	h := NewHarness(NewModel(&stubSource{}, Options{}))
	h.Send(StatusMsg{Err: errors.New("menu reload failed")})
	if !strings.Contains(h.View(), "Error: menu reload failed") {
		t.Fatalf("expected error in view, got %q", h.View())
	}
	h.Send(StatusMsg{Text: "menu reloaded"})
	if strings.Contains(h.View(), "Error") {
		t.Fatalf("expected error to clear, got %q", h.View())
	}
}

func TestQuitKey(t *testing.T) {
	h := NewHarness(NewModel(&stubSource{}, Options{}))
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !h.Quit() {
		t.Fatalf("expected quit")
	}
}

func TestEscHidesMenu(t *testing.T) {
	src := &stubSource{snap: visibleSnap(0, []string{"Main"}, "Alpha")}
	h := NewHarness(NewModel(src, Options{}))
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if src.closed != 1 {
		t.Fatalf("expected close request via command, got %d", src.closed)
	}
	if h.View() != "" {
		t.Fatalf("expected hidden menu, got %q", h.View())
	}
}

func TestHideKeyDefersCloseToCommand(t *testing.T) {
	src := &stubSource{snap: visibleSnap(0, []string{"Main"}, "Alpha")}
	m := NewModel(src, Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if src.closed != 0 {
		t.Fatalf("close must not run inside Update")
	}
	if cmd == nil {
		t.Fatalf("expected hide command")
	}
	msg := cmd()
	if src.closed != 1 {
		t.Fatalf("expected close when command runs, got %d", src.closed)
	}
	if vis, ok := msg.(VisibilityMsg); !ok || vis.Visible {
		t.Fatalf("expected hidden VisibilityMsg, got %#v", msg)
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel(&stubSource{}, Options{Width: 30})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.width != 30 || m.height != 40 {
		t.Fatalf("expected 30x40, got %dx%d", m.width, m.height)
	}
}

func TestRendersLiveNavigator(t *testing.T) {
	tree, err := menu.Parse([]byte(`{"Label": "Main", "Submenu": [
	  {"Label": "Comms", "Submenu": [{"Label": "Tower"}], "CloseMenuAfterAction": false},
	  {"Label": "Jettison"}
	]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n := nav.New(tree.Root, nil)
	h := NewHarness(NewModel(n, Options{}))
	n.Select()
	n.Select()
	h.Frame()
	view := h.View()
	if !strings.Contains(view, "Main→Comms") || !strings.Contains(view, "Tower") {
		t.Fatalf("expected submenu, got:\n%s", view)
	}
}
