package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const footerHint = "pad: up/down move  right/select open  left back   esc hide  q quit"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model. A hidden menu renders as an empty frame.
func (m *Model) View() string {
	if !m.snap.Visible {
		if m.errMsg == "" {
			return ""
		}
		return renderLines(applyWidth([]styledLine{m.statusLine()}, m.width))
	}

	lines := make([]styledLine, 0, 16)
	if header := m.menuHeader(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	items := m.snap.Items
	if len(items) == 0 {
		lines = append(lines, styledLine{text: "(no entries)", style: styles.Info})
	} else {
		maxItems := m.maxVisibleItems()
		m.viewport.EnsureVisible(m.snap.Selection, len(items), maxItems)
		start, end := m.viewport.Window(len(items), maxItems)
		for idx := start; idx < end; idx++ {
			lines = append(lines, m.buildItemLine(items[idx], idx, m.width))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-1, m.width)
	lines = append(lines, m.statusLine())
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) statusLine() styledLine {
	if m.errMsg == "" {
		return styledLine{}
	}
	return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
}

// buildItemLine constructs a single styledLine for a menu item. When width
// is positive the text is padded so the selected item's background spans the
// full row.
func (m *Model) buildItemLine(label string, idx int, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.snap.Selection {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) menuHeader() string {
	segments := make([]string, 0, len(m.snap.Path))
	for _, label := range m.snap.Path {
		if label = strings.TrimSpace(label); label != "" {
			segments = append(segments, label)
		}
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 1 // status line
	if m.menuHeader() != "" {
		used++
	}
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return string([]rune(text)[:1])
	}
	return truncate.StringWithTail(text, uint(width-1), "") + "…"
}
