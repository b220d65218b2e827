package tui

import (
	"github.com/mmcdole/streamscout/internal/domain"
	"github.com/mmcdole/streamscout/internal/search"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchResultsMsg signals that partitioned search results are ready
type SearchResultsMsg struct {
	Results search.Results
	Query   string
}

// DetailLoadedMsg signals that full detail for an item is ready
type DetailLoadedMsg struct {
	Detail *domain.ContentDetail
}

// RefreshedMsg signals that a forced refresh completed
type RefreshedMsg struct {
	Detail *domain.ContentDetail
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
