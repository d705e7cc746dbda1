package model

import (
	"context"

	"github.com/b9s/b9s/internal/model1"
	"github.com/b9s/b9s/internal/pager"
)

// TableModel defines the interface for a table data model that fetches data.
type TableModel interface {
	// Header returns the table header.
	Header() model1.Header

	// RowCount returns the number of visible rows.
	RowCount() int

	// RowEvents returns the current row events.
	RowEvents() *model1.RowEvents

	// TotalCount returns the dataset size reported by the backend.
	TotalCount() int

	// PageModel returns the current page position.
	PageModel() pager.PageModel

	// Watch starts watching/refreshing data periodically.
	Watch(context.Context) error

	// Refresh fetches data from the source immediately.
	Refresh(context.Context) error

	// SetSearch records new search text; its effect is debounced.
	SetSearch(string)

	// SetFilters replaces the filter set.
	SetFilters(map[string]string)

	// AddListener registers a table listener.
	AddListener(TableListener)

	// RemoveListener unregisters a table listener.
	RemoveListener(TableListener)
}
