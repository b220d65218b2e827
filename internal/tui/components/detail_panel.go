package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/streamscout/internal/domain"
	"github.com/mmcdole/streamscout/internal/tui/styles"
)

// DetailPanel displays full detail for the selected item: title, year,
// rating, overview, and the providers carrying it in the user's region.
type DetailPanel struct {
	detail   *domain.ContentDetail
	viewport viewport.Model
	width    int
	height   int
	loading  bool
}

// NewDetailPanel creates an empty detail panel
func NewDetailPanel() DetailPanel {
	return DetailPanel{viewport: viewport.New(0, 0)}
}

// SetDetail sets the item to display
func (d *DetailPanel) SetDetail(detail *domain.ContentDetail) {
	d.detail = detail
	d.loading = false
	d.viewport.SetContent(d.renderContent())
	d.viewport.GotoTop()
}

// SetLoading marks the panel as waiting for a repository load
func (d *DetailPanel) SetLoading() {
	d.loading = true
}

// Clear empties the panel
func (d *DetailPanel) Clear() {
	d.detail = nil
	d.loading = false
	d.viewport.SetContent("")
}

// SetSize sets the rendering bounds
func (d *DetailPanel) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.viewport.Height = height
	if d.detail != nil {
		d.viewport.SetContent(d.renderContent())
	}
}

// ScrollUp scrolls the overview up
func (d *DetailPanel) ScrollUp() { d.viewport.LineUp(1) }

// ScrollDown scrolls the overview down
func (d *DetailPanel) ScrollDown() { d.viewport.LineDown(1) }

// View renders the panel
func (d *DetailPanel) View() string {
	if d.loading {
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render("Loading..."))
	}
	if d.detail == nil {
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render("Select a result to see where to watch it"))
	}
	return d.viewport.View()
}

func (d *DetailPanel) renderContent() string {
	var b strings.Builder
	detail := d.detail

	title := detail.Title
	if detail.Year > 0 {
		title = fmt.Sprintf("%s (%d)", detail.Title, detail.Year)
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")

	meta := detail.Kind.String()
	if detail.Rating > 0 {
		meta = fmt.Sprintf("%s · %.1f/10", meta, detail.Rating)
	}
	b.WriteString(styles.SubtitleStyle.Render(meta))
	b.WriteString("\n\n")

	if detail.Overview != "" {
		wrapped := lipgloss.NewStyle().Width(d.width).Render(detail.Overview)
		b.WriteString(wrapped)
		b.WriteString("\n\n")
	}

	b.WriteString(styles.SectionStyle.Render("Streaming on"))
	b.WriteString("\n")
	if len(detail.Providers) == 0 {
		b.WriteString(styles.DimStyle.Render("Not available for streaming in your region"))
	} else {
		for _, p := range detail.Providers {
			name := p.ProviderName
			if svc, ok := domain.ServiceForProvider(p.ProviderName); ok {
				name = svc.DisplayName()
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", styles.AvailableDot, name))
		}
	}

	return b.String()
}
