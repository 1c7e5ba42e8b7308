// Package state holds renderer-local state derived from navigator snapshots.
package state

// Viewport tracks which window of a menu's items is on screen.
type Viewport struct {
	Offset int
	// Title identifies the menu the offset belongs to; a different menu
	// starts from the top.
	Title string
	Depth int
}

// Follow resets the offset when the displayed menu changes.
func (v *Viewport) Follow(title string, depth int) {
	if v.Title == title && v.Depth == depth {
		return
	}
	v.Title = title
	v.Depth = depth
	v.Offset = 0
}

// EnsureVisible adjusts the offset so cursor stays within maxVisible rows of
// a list of count items.
func (v *Viewport) EnsureVisible(cursor, count, maxVisible int) {
	if count == 0 || maxVisible <= 0 {
		v.Offset = 0
		return
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= count {
		cursor = count - 1
	}
	maxOffset := count - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if cursor < v.Offset {
		v.Offset = cursor
	}
	upper := v.Offset + maxVisible - 1
	if cursor > upper {
		v.Offset = cursor - maxVisible + 1
		if v.Offset > maxOffset {
			v.Offset = maxOffset
		}
	}
}

// Window returns the half-open item range currently on screen.
func (v *Viewport) Window(count, maxVisible int) (int, int) {
	if maxVisible <= 0 || count <= maxVisible {
		return 0, count
	}
	start := v.Offset
	if start+maxVisible > count {
		start = count - maxVisible
	}
	if start < 0 {
		start = 0
	}
	return start, start + maxVisible
}
