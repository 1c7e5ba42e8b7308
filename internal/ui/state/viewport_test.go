package state

import "testing"

func TestEnsureVisibleScrollsDown(t *testing.T) {
	var v Viewport
	v.EnsureVisible(4, 10, 3)
	if v.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", v.Offset)
	}
	start, end := v.Window(10, 3)
	if start != 2 || end != 5 {
		t.Fatalf("expected window [2,5), got [%d,%d)", start, end)
	}
}

func TestEnsureVisibleScrollsUp(t *testing.T) {
	v := Viewport{Offset: 5}
	v.EnsureVisible(1, 10, 3)
	if v.Offset != 1 {
		t.Fatalf("expected offset 1, got %d", v.Offset)
	}
}

func TestEnsureVisibleFollowsWrap(t *testing.T) {
	var v Viewport
	v.EnsureVisible(9, 10, 4)
	if v.Offset != 6 {
		t.Fatalf("expected offset 6, got %d", v.Offset)
	}
	v.EnsureVisible(0, 10, 4)
	if v.Offset != 0 {
		t.Fatalf("expected offset 0 after wrap, got %d", v.Offset)
	}
}

func TestEnsureVisibleClampsAfterShrink(t *testing.T) {
	v := Viewport{Offset: 8}
	v.EnsureVisible(1, 3, 5)
	if v.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", v.Offset)
	}
	start, end := v.Window(3, 5)
	if start != 0 || end != 3 {
		t.Fatalf("expected full window, got [%d,%d)", start, end)
	}
}

func TestFollowResetsOnMenuChange(t *testing.T) {
	v := Viewport{Offset: 3, Title: "Comms", Depth: 2}
	v.Follow("Comms", 2)
	if v.Offset != 3 {
		t.Fatalf("same menu should keep offset, got %d", v.Offset)
	}
	v.Follow("Tower", 3)
	if v.Offset != 0 {
		t.Fatalf("expected reset offset, got %d", v.Offset)
	}
}
