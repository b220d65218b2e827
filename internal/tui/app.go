package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/streamscout/internal/domain"
	"github.com/mmcdole/streamscout/internal/repository"
	"github.com/mmcdole/streamscout/internal/search"
	"github.com/mmcdole/streamscout/internal/tui/components"
	"github.com/mmcdole/streamscout/internal/tui/styles"
)

// Pane identifies the focused pane
type Pane int

const (
	PaneQuery Pane = iota
	PaneResults
	PaneFilter
)

// Layout proportions
const (
	listPercent   = 45
	detailPercent = 55
	chromeHeight  = 4 // query line + borders + status line
	minPaneWidth  = 20
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	repo *repository.Repository
	agg  *search.Aggregator
	cfg  domain.ConfigSource

	// UI components
	keys        KeyMap
	queryInput  textinput.Model
	filterInput textinput.Model
	spinner     spinner.Model
	resultsList components.ResultsList
	detailPanel components.DetailPanel

	// State
	focus     Pane
	searching bool
	status    string
	statusErr bool
	width     int
	height    int
	ready     bool
}

// NewModel creates the application model
func NewModel(repo *repository.Repository, agg *search.Aggregator, cfg domain.ConfigSource) Model {
	query := textinput.New()
	query.Placeholder = "Search movies and TV shows..."
	query.Prompt = styles.AccentStyle.Render("> ")
	query.Focus()

	filter := textinput.New()
	filter.Placeholder = "filter results"
	filter.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	return Model{
		repo:        repo,
		agg:         agg,
		cfg:         cfg,
		keys:        DefaultKeyMap(),
		queryInput:  query,
		filterInput: filter,
		spinner:     sp,
		resultsList: components.NewResultsList(),
		detailPanel: components.NewDetailPanel(),
		focus:       PaneQuery,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SearchResultsMsg:
		m.searching = false
		m.resultsList.SetResults(msg.Results)
		m.detailPanel.Clear()
		if msg.Results.Err != "" {
			m.status = msg.Results.Err
			m.statusErr = true
			return m, nil
		}
		m.status = ""
		if m.resultsList.Len() > 0 {
			m.focus = PaneResults
			m.queryInput.Blur()
			return m, m.loadSelected()
		}
		return m, nil

	case DetailLoadedMsg:
		m.detailPanel.SetDetail(msg.Detail)
		return m, nil

	case RefreshedMsg:
		m.detailPanel.SetDetail(msg.Detail)
		m.status = "Refreshed"
		m.statusErr = false
		return m, ClearStatusAfterCmd(2 * time.Second)

	case ErrMsg:
		m.searching = false
		m.status = msg.Error()
		m.statusErr = true
		return m, ClearStatusAfterCmd(5 * time.Second)

	case ClearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.focus {
	case PaneQuery:
		return m.handleQueryKey(msg)
	case PaneFilter:
		return m.handleFilterKey(msg)
	default:
		return m.handleResultsKey(msg)
	}
}

func (m Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		query := m.queryInput.Value()
		if len(query) < search.MinQueryLength {
			m.status = "Type at least 2 characters to search"
			m.statusErr = false
			return m, ClearStatusAfterCmd(2 * time.Second)
		}
		m.searching = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, SearchCmd(m.agg, m.cfg, query))

	case key.Matches(msg, m.keys.Escape):
		if m.resultsList.Len() > 0 {
			m.focus = PaneResults
			m.queryInput.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Escape):
		if key.Matches(msg, m.keys.Escape) {
			m.filterInput.SetValue("")
			m.resultsList.SetFilter("")
		}
		m.focus = PaneResults
		m.filterInput.Blur()
		return m, m.loadSelected()
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.resultsList.SetFilter(m.filterInput.Value())
	return m, cmd
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.resultsList.CursorUp()
		return m, m.loadSelected()

	case key.Matches(msg, m.keys.Down):
		m.resultsList.CursorDown()
		return m, m.loadSelected()

	case key.Matches(msg, m.keys.Search), key.Matches(msg, m.keys.Escape):
		m.focus = PaneQuery
		m.queryInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Filter):
		m.focus = PaneFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		if item := m.resultsList.Selected(); item != nil {
			m.detailPanel.SetLoading()
			return m, RefreshCmd(m.repo, item.Kind, item.ID)
		}
		return m, nil
	}

	return m, nil
}

// loadSelected loads detail for the item under the cursor
func (m *Model) loadSelected() tea.Cmd {
	item := m.resultsList.Selected()
	if item == nil {
		m.detailPanel.Clear()
		return nil
	}
	m.detailPanel.SetLoading()
	return LoadDetailCmd(m.repo, item.Kind, item.ID)
}

// layout recomputes component sizes from the window size
func (m *Model) layout() {
	listWidth := m.width * listPercent / 100
	detailWidth := m.width - listWidth - 2
	if listWidth < minPaneWidth {
		listWidth = minPaneWidth
	}
	if detailWidth < minPaneWidth {
		detailWidth = minPaneWidth
	}

	paneHeight := m.height - chromeHeight
	if paneHeight < 3 {
		paneHeight = 3
	}

	m.queryInput.Width = m.width - 6
	m.resultsList.SetSize(listWidth-2, paneHeight-2)
	m.detailPanel.SetSize(detailWidth-2, paneHeight-2)
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.queryInput.View()
	if m.searching {
		header = header + " " + m.spinner.View()
	}

	listWidth := m.width * listPercent / 100
	detailWidth := m.width - listWidth - 2
	paneHeight := m.height - chromeHeight

	listBorder := styles.InactiveBorder
	detailBorder := styles.InactiveBorder
	if m.focus == PaneResults || m.focus == PaneFilter {
		listBorder = styles.ActiveBorder
	}

	listView := listBorder.Width(listWidth - 2).Height(paneHeight - 2).Render(m.resultsList.View())
	detailView := detailBorder.Width(detailWidth - 2).Height(paneHeight - 2).Render(m.detailPanel.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, listView, detailView)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusLine())
}

// statusLine renders the bottom status bar
func (m Model) statusLine() string {
	if m.focus == PaneFilter {
		return m.filterInput.View()
	}
	if m.status != "" {
		if m.statusErr {
			return styles.ErrorStyle.Render(m.status)
		}
		return styles.SuccessStyle.Render(m.status)
	}
	return styles.DimStyle.Render("enter search · j/k navigate · / filter · r refresh · q quit")
}
