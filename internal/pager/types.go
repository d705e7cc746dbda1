// Package pager implements the adaptive pagination controller that feeds
// every b9s list view.
//
// The admin backend is inconsistent about pagination: some endpoints return
// one page at a time, others ignore page parameters and return the whole
// dataset. The controller probes the backend once per query change and then
// either forwards page turns to the server or filters a cached full list
// locally, without the caller having to know which mode is active.
package pager

import "context"

// SortDirection is the order applied to a sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SortOrder names a column and the direction to sort it by.
type SortOrder struct {
	Key       string
	Direction SortDirection
}

// FetchParams is the query handed to a FetchFunc. A nil Page means "first
// page / backend default"; the mode-determining fetch always asks for page 0.
type FetchParams struct {
	Page          *int
	PageSize      int
	SearchKeyword string
	Filters       map[string]string
	Sorting       []SortOrder
}

// PageDetails reports how the backend actually paginated a response.
// Pointer fields distinguish "absent" from zero.
type PageDetails struct {
	PageNumber        *int `json:"pageNumber,omitempty"`
	PageSize          *int `json:"pageSize,omitempty"`
	PaginationEnabled bool `json:"paginationEnabled"`
}

// Response is what a FetchFunc returns. A nil List is tolerated and treated
// as empty; a missing TotalCount decodes to zero.
type Response[T any] struct {
	List        []T
	TotalCount  int
	PageDetails *PageDetails
}

// FetchFunc retrieves one page (or, for non-paginating endpoints, the whole
// dataset) from the backend. Implementations must honor ctx cancellation:
// a preempted fetch returns ctx.Err() and the controller discards it
// silently.
type FetchFunc[T any] func(ctx context.Context, params FetchParams) (*Response[T], error)

// PageModel is the UI's requested page position, 0-based.
type PageModel struct {
	Page     int
	PageSize int
}

// Listener is notified whenever the controller's visible state changes.
// Callbacks run on the fetching goroutine; implementations must not call
// back into the controller while handling them.
type Listener[T any] interface {
	// PagerDataChanged fires after rows or totalCount were replaced.
	PagerDataChanged(rows []T, totalCount int)

	// PagerLoadFailed fires when a non-cancelled fetch errored. The
	// controller has already cleared rows and totalCount.
	PagerLoadFailed(err error)
}

// Config configures a Controller.
type Config[T any] struct {
	// Fetch is the data source. Required.
	Fetch FetchFunc[T]

	// PageSize is the initial page size. Defaults to DefaultPageSize.
	PageSize int

	// Enabled gates all fetching; a disabled controller ignores every
	// trigger until re-enabled via a new controller.
	Enabled bool

	// AutoFetch makes Reset immediately re-run mode determination.
	AutoFetch bool

	// Filters seeds the initial filter set.
	Filters map[string]string

	// Sorting seeds the initial sort order, forwarded verbatim to the
	// backend on every fetch.
	Sorting []SortOrder

	// SearchDebounce delays the search effect after the last keystroke.
	// Defaults to DefaultSearchDebounce.
	SearchDebounce int64 // milliseconds

	// Threshold is the row count above which a backend that declined to
	// paginate gets flagged in the log. Defaults to DefaultThreshold.
	Threshold int

	// SearchText extracts the searchable values of an item for client-mode
	// filtering. When nil, all string and numeric fields of the item are
	// matched via reflection.
	SearchText func(T) []string
}
