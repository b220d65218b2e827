package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/streamscout/internal/search"
	"github.com/mmcdole/streamscout/internal/tui/styles"
)

// row is one renderable line in the results list
type row struct {
	header    string // non-empty for section header rows
	item      *search.ContentItem
	available bool
}

// ResultsList renders partitioned search results as a scrollable list
// with an "available" section above an "other" section.
type ResultsList struct {
	rows        []row
	itemRows    []int // indexes into rows that hold items
	cursor      int   // index into itemRows
	offset      int   // first visible row
	width       int
	height      int
	focused     bool
	filter      string
	filteredIdx []int // filtered view of itemRows, nil = unfiltered
}

// NewResultsList creates an empty results list
func NewResultsList() ResultsList {
	return ResultsList{}
}

// SetResults replaces the list contents and resets cursor and filter
func (l *ResultsList) SetResults(results search.Results) {
	l.rows = l.rows[:0]
	l.itemRows = l.itemRows[:0]

	appendSection := func(header string, items []search.ContentItem, available bool) {
		if len(items) == 0 {
			return
		}
		l.rows = append(l.rows, row{header: header})
		for i := range items {
			l.itemRows = append(l.itemRows, len(l.rows))
			l.rows = append(l.rows, row{item: &items[i], available: available})
		}
	}

	appendSection("Available on your services", results.Available, true)
	appendSection("Other results", results.Other, false)

	l.cursor = 0
	l.offset = 0
	l.filter = ""
	l.filteredIdx = nil
}

// Clear empties the list
func (l *ResultsList) Clear() {
	l.SetResults(search.Results{})
}

// Len returns the number of selectable items in the current view
func (l *ResultsList) Len() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.itemRows)
}

// Selected returns the item under the cursor, or nil
func (l *ResultsList) Selected() *search.ContentItem {
	visible := l.visibleItemRows()
	if l.cursor < 0 || l.cursor >= len(visible) {
		return nil
	}
	return l.rows[visible[l.cursor]].item
}

// SetFilter narrows the visible items with fuzzy title matching.
// An empty filter restores the full list.
func (l *ResultsList) SetFilter(query string) {
	l.filter = query
	l.cursor = 0
	l.offset = 0

	if query == "" {
		l.filteredIdx = nil
		return
	}

	titles := make([]string, len(l.itemRows))
	for i, ri := range l.itemRows {
		titles[i] = strings.ToLower(l.rows[ri].item.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)
	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = l.itemRows[match.Index]
	}
}

// visibleItemRows returns the row indexes of currently visible items
func (l *ResultsList) visibleItemRows() []int {
	if l.filteredIdx != nil {
		return l.filteredIdx
	}
	return l.itemRows
}

// CursorUp moves the selection up one item
func (l *ResultsList) CursorUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// CursorDown moves the selection down one item
func (l *ResultsList) CursorDown() {
	if l.cursor < l.Len()-1 {
		l.cursor++
	}
}

// SetSize sets the rendering bounds
func (l *ResultsList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Focus marks the list as the active pane
func (l *ResultsList) Focus()   { l.focused = true }
func (l *ResultsList) Blur()    { l.focused = false }
func (l *ResultsList) Focused() bool { return l.focused }

// View renders the list
func (l *ResultsList) View() string {
	if l.Len() == 0 {
		empty := styles.DimStyle.Render("No results")
		if l.filter != "" {
			empty = styles.DimStyle.Render(fmt.Sprintf("No results matching %q", l.filter))
		}
		return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, empty)
	}

	var b strings.Builder
	visible := l.visibleItemRows()
	selectedRow := -1
	if l.cursor >= 0 && l.cursor < len(visible) {
		selectedRow = visible[l.cursor]
	}

	lines := 0
	for ri, r := range l.rows {
		if l.filteredIdx != nil && r.item != nil && !containsInt(l.filteredIdx, ri) {
			continue
		}
		if lines >= l.height {
			break
		}

		if r.header != "" {
			b.WriteString(styles.SectionStyle.Render(r.header))
			b.WriteString("\n")
			lines++
			continue
		}

		b.WriteString(l.renderItem(r, ri == selectedRow))
		b.WriteString("\n")
		lines++
	}

	return strings.TrimRight(b.String(), "\n")
}

func (l *ResultsList) renderItem(r row, selected bool) string {
	dot := styles.OtherDot
	if r.available {
		dot = styles.AvailableDot
	}

	label := r.item.Title
	if r.item.Year > 0 {
		label = fmt.Sprintf("%s (%d)", r.item.Title, r.item.Year)
	}

	kind := styles.DimStyle.Render(r.item.Kind.String())

	line := fmt.Sprintf("%s %s %s", dot, label, kind)
	if selected {
		line = fmt.Sprintf("%s %s %s", dot, styles.HighlightStyle.Render(label), kind)
	}

	if l.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(l.width).Render(line)
	}
	return "  " + line
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
