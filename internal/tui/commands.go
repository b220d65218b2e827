package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/streamscout/internal/domain"
	"github.com/mmcdole/streamscout/internal/repository"
	"github.com/mmcdole/streamscout/internal/search"
)

// Command factories for async operations. Every remote call runs inside
// a tea.Cmd with its own timeout so the UI loop never blocks.

// SearchCmd runs an aggregated search
func SearchCmd(agg *search.Aggregator, cfg domain.ConfigSource, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		results := agg.Search(ctx, query, cfg.Subscriptions())
		return SearchResultsMsg{Results: results, Query: query}
	}
}

// LoadDetailCmd loads full detail for one item through the repository
func LoadDetailCmd(repo *repository.Repository, kind domain.ContentKind, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := repo.Get(ctx, kind, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading detail"}
		}
		return DetailLoadedMsg{Detail: detail}
	}
}

// RefreshCmd forces a live refresh of one item, bypassing the cache
func RefreshCmd(repo *repository.Repository, kind domain.ContentKind, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := repo.Refresh(ctx, kind, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "refreshing"}
		}
		return RefreshedMsg{Detail: detail}
	}
}

// ClearStatusAfterCmd clears the status line after d elapses
func ClearStatusAfterCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
