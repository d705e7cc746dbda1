package pager

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/b9s/b9s/internal/logging"
	"github.com/wI2L/jsondiff"
)

const (
	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 25

	// DefaultSearchDebounce is the milliseconds waited after the last
	// search keystroke before the search takes effect.
	DefaultSearchDebounce = 500

	// DefaultThreshold is the client-mode row count above which the
	// backend is flagged for refusing to paginate.
	DefaultThreshold = 1000
)

type fetchOptions struct {
	// determine re-probes the backend's pagination mode.
	determine bool

	// force preempts an in-flight fetch instead of yielding to it.
	force bool

	// page/pageSize override the current page model for page turns.
	page     *int
	pageSize int
}

// Controller drives pagination, search and filtering for one list view.
// All state transitions are serialized under a single mutex; response
// application is guarded by a generation counter so a preempted fetch can
// never clobber the state of the fetch that replaced it.
type Controller[T any] struct {
	cfg Config[T]

	mx        sync.Mutex
	rows      []T
	total     int
	loading   bool
	page      int
	pageSize  int
	search    string
	filters   map[string]string
	sorting   []SortOrder
	listeners []Listener[T]

	serverPaginated bool
	determined      bool
	allData         []T

	lastPage      int
	lastPageSize  int
	lastSignature string

	inFlight   bool
	generation uint64
	cancelFn   context.CancelFunc
	debounce   *time.Timer

	baseCtx    context.Context
	baseCancel context.CancelFunc
	stopped    bool
}

// NewController returns a controller seeded from cfg. No fetch is issued
// until Fetch, Refresh or one of the mutators is called.
func NewController[T any](cfg Config[T]) *Controller[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = DefaultSearchDebounce
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Controller[T]{
		cfg:          cfg,
		pageSize:     cfg.PageSize,
		filters:      cloneFilters(cfg.Filters),
		sorting:      append([]SortOrder(nil), cfg.Sorting...),
		lastPage:     -1,
		lastPageSize: -1,
		baseCtx:      ctx,
		baseCancel:   cancel,
	}
}

// AddListener registers a new state listener.
func (c *Controller[T]) AddListener(l Listener[T]) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters a state listener.
func (c *Controller[T]) RemoveListener(l Listener[T]) {
	c.mx.Lock()
	defer c.mx.Unlock()
	victim := -1
	for i, lis := range c.listeners {
		if lis == l {
			victim = i
			break
		}
	}
	if victim >= 0 {
		c.listeners = append(c.listeners[:victim], c.listeners[victim+1:]...)
	}
}

// Rows returns the currently visible rows.
func (c *Controller[T]) Rows() []T {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.rows
}

// TotalCount returns the dataset size as of the last mode-determining fetch
// (server mode) or the filtered row count (client mode).
func (c *Controller[T]) TotalCount() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.total
}

// Loading reports whether a fetch is currently in flight.
func (c *Controller[T]) Loading() bool {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.loading
}

// PageModel returns the current page position.
func (c *Controller[T]) PageModel() PageModel {
	c.mx.Lock()
	defer c.mx.Unlock()
	return PageModel{Page: c.page, PageSize: c.pageSize}
}

// SearchKeyword returns the current search text, including text whose
// debounced effect has not fired yet.
func (c *Controller[T]) SearchKeyword() string {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.search
}

// Filters returns a copy of the active filter set.
func (c *Controller[T]) Filters() map[string]string {
	c.mx.Lock()
	defer c.mx.Unlock()
	return cloneFilters(c.filters)
}

// ServerPaginated reports whether the last mode determination found a
// paginating backend. Meaningless until a determination completed.
func (c *Controller[T]) ServerPaginated() bool {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.serverPaginated
}

// Determined reports whether a mode-determining fetch has completed for the
// current search/filter state.
func (c *Controller[T]) Determined() bool {
	c.mx.Lock()
	defer c.mx.Unlock()
	return c.determined
}

// Fetch runs the fetch appropriate for the current state: a mode-determining
// fetch when none has completed yet, a page fetch in server mode, a no-op in
// client mode. It preempts any in-flight fetch and blocks until its own
// fetch settles or is itself preempted.
func (c *Controller[T]) Fetch(ctx context.Context) {
	c.mx.Lock()
	if c.determined && c.lastSignature == c.signatureLocked() {
		if !c.serverPaginated || (c.lastPage == c.page && c.lastPageSize == c.pageSize) {
			c.mx.Unlock()
			return
		}
		page := c.page
		size := c.pageSize
		c.mx.Unlock()
		c.fetch(ctx, fetchOptions{force: true, page: &page, pageSize: size})
		return
	}
	c.mx.Unlock()
	c.fetch(ctx, fetchOptions{force: true, determine: true})
}

// Refresh unconditionally re-runs mode determination for the current
// search/filter state, preempting any in-flight fetch.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.fetch(ctx, fetchOptions{force: true, determine: true})
}

// Reload re-fetches the data backing the current view without resetting the
// query state: the current page in server mode, the full dataset in client
// mode. Used by periodic refresh.
func (c *Controller[T]) Reload(ctx context.Context) {
	c.mx.Lock()
	if c.determined && c.serverPaginated {
		page := c.page
		size := c.pageSize
		c.mx.Unlock()
		c.fetch(ctx, fetchOptions{force: true, page: &page, pageSize: size})
		return
	}
	c.mx.Unlock()
	c.fetch(ctx, fetchOptions{force: true, determine: true})
}

// SetPageModel records a new page position. In server mode a position that
// differs from the last fetched one triggers an asynchronous page fetch; in
// client mode paging is purely visual and no request is made. TotalCount is
// never touched by a page turn.
func (c *Controller[T]) SetPageModel(page, pageSize int) {
	c.mx.Lock()
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = c.pageSize
	}
	if c.page == page && c.pageSize == pageSize {
		c.mx.Unlock()
		return
	}
	c.page, c.pageSize = page, pageSize
	if !c.determined || !c.serverPaginated {
		c.mx.Unlock()
		return
	}
	if c.lastPage == page && c.lastPageSize == pageSize {
		// Reconciling the model to a page the server already clamped us
		// to. Nothing to fetch.
		c.mx.Unlock()
		return
	}
	p := page
	c.mx.Unlock()
	go c.fetch(c.baseCtx, fetchOptions{page: &p, pageSize: pageSize})
}

// SetSearchKeyword records new search text immediately and schedules its
// effect after the configured debounce. In client mode the effect filters
// the cached dataset locally with no network traffic; otherwise it re-runs
// mode determination from page 0.
func (c *Controller[T]) SetSearchKeyword(keyword string) {
	c.mx.Lock()
	if c.stopped || c.search == keyword {
		c.mx.Unlock()
		return
	}
	c.search = keyword
	if c.debounce != nil {
		c.debounce.Stop()
	}
	d := time.Duration(c.cfg.SearchDebounce) * time.Millisecond
	c.debounce = time.AfterFunc(d, c.searchFire)
	c.mx.Unlock()
}

// SetFilters replaces the filter set. A deep-equal set is a no-op; any real
// change drops the cached dataset, collapses a pending search debounce and
// immediately re-runs mode determination from page 0.
func (c *Controller[T]) SetFilters(filters map[string]string) {
	c.mx.Lock()
	if c.stopped || sameFilters(c.filters, filters) {
		c.mx.Unlock()
		return
	}
	c.filters = cloneFilters(filters)
	c.invalidateLocked()
	c.mx.Unlock()
	go c.fetch(c.baseCtx, fetchOptions{force: true, determine: true})
}

// SetSorting replaces the sort order and re-runs mode determination so the
// backend can apply it.
func (c *Controller[T]) SetSorting(sorting []SortOrder) {
	c.mx.Lock()
	if c.stopped {
		c.mx.Unlock()
		return
	}
	c.sorting = append([]SortOrder(nil), sorting...)
	c.invalidateLocked()
	c.mx.Unlock()
	go c.fetch(c.baseCtx, fetchOptions{force: true, determine: true})
}

// Reset returns the controller to its initial query state: empty search, no
// filters, page 0, caches dropped. Calling it twice in a row leaves the same
// state as calling it once. With AutoFetch set it immediately re-runs mode
// determination.
func (c *Controller[T]) Reset() {
	c.mx.Lock()
	if c.stopped {
		c.mx.Unlock()
		return
	}
	c.search = ""
	c.filters = nil
	c.sorting = append([]SortOrder(nil), c.cfg.Sorting...)
	c.pageSize = c.cfg.PageSize
	c.invalidateLocked()
	auto := c.cfg.AutoFetch
	c.mx.Unlock()
	if auto {
		go c.fetch(c.baseCtx, fetchOptions{force: true, determine: true})
	}
}

// Stop cancels any in-flight fetch and pending debounce and renders the
// controller inert. Safe to call more than once.
func (c *Controller[T]) Stop() {
	c.mx.Lock()
	if c.stopped {
		c.mx.Unlock()
		return
	}
	c.stopped = true
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	if c.cancelFn != nil {
		c.cancelFn()
		c.cancelFn = nil
	}
	c.mx.Unlock()
	c.baseCancel()
}

// invalidateLocked drops the cached dataset and pending debounce so the next
// fetch re-determines the pagination mode from page 0.
func (c *Controller[T]) invalidateLocked() {
	c.determined = false
	c.allData = nil
	c.page = 0
	c.lastPage, c.lastPageSize = -1, -1
	c.lastSignature = ""
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

// searchFire is the debounced search effect.
func (c *Controller[T]) searchFire() {
	c.mx.Lock()
	if c.stopped {
		c.mx.Unlock()
		return
	}
	if c.determined && !c.serverPaginated {
		c.page = 0
		c.applyLocalLocked()
		rows, total := c.rows, c.total
		listeners := append([]Listener[T](nil), c.listeners...)
		c.mx.Unlock()
		for _, l := range listeners {
			l.PagerDataChanged(rows, total)
		}
		return
	}
	c.determined = false
	c.allData = nil
	c.page = 0
	c.lastPage, c.lastPageSize = -1, -1
	c.mx.Unlock()
	c.fetch(c.baseCtx, fetchOptions{force: true, determine: true})
}

// applyLocalLocked recomputes rows and totalCount from the cached dataset.
func (c *Controller[T]) applyLocalLocked() {
	rows := c.allData
	if c.search != "" {
		rows = matchRows(c.allData, c.search, c.cfg.SearchText)
	}
	c.rows = rows
	c.total = len(rows)
}

func (c *Controller[T]) signatureLocked() string {
	sig := struct {
		Search  string            `json:"search"`
		Filters map[string]string `json:"filters"`
		Sorting []SortOrder       `json:"sorting"`
	}{c.search, c.filters, c.sorting}
	bb, err := json.Marshal(sig)
	if err != nil {
		return ""
	}
	return string(bb)
}

func (c *Controller[T]) fetch(ctx context.Context, opts fetchOptions) {
	c.mx.Lock()
	if c.stopped || !c.cfg.Enabled || c.cfg.Fetch == nil {
		c.mx.Unlock()
		return
	}
	if c.inFlight && !opts.force {
		logging.Log.Debug("pager: fetch already in flight, skipping")
		c.mx.Unlock()
		return
	}
	if c.cancelFn != nil {
		c.cancelFn()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.cancelFn = cancel
	c.generation++
	gen := c.generation
	c.inFlight = true
	c.loading = true

	size := c.pageSize
	if opts.pageSize > 0 {
		size = opts.pageSize
	}
	params := FetchParams{
		PageSize:      size,
		SearchKeyword: c.search,
		Filters:       cloneFilters(c.filters),
		Sorting:       append([]SortOrder(nil), c.sorting...),
	}
	if opts.determine {
		zero := 0
		params.Page = &zero
	} else {
		params.Page = opts.page
	}
	sig := c.signatureLocked()
	fetchFn := c.cfg.Fetch
	c.mx.Unlock()

	resp, err := fetchFn(fctx, params)

	c.mx.Lock()
	if gen != c.generation || c.stopped {
		// Preempted. The replacing fetch owns the state now.
		c.mx.Unlock()
		return
	}
	c.inFlight = false
	c.loading = false
	c.cancelFn = nil

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(fctx.Err(), context.Canceled) {
			c.mx.Unlock()
			return
		}
		c.rows = nil
		c.total = 0
		listeners := append([]Listener[T](nil), c.listeners...)
		c.mx.Unlock()
		logging.Log.Errorf("pager: fetch failed: %v", err)
		for _, l := range listeners {
			l.PagerLoadFailed(err)
		}
		for _, l := range listeners {
			l.PagerDataChanged(nil, 0)
		}
		return
	}
	if resp == nil {
		resp = &Response[T]{}
	}

	if opts.determine {
		c.applyDeterminationLocked(resp, size, sig)
	} else {
		c.applyPageLocked(resp, opts, size)
	}
	rows, total := c.rows, c.total
	listeners := append([]Listener[T](nil), c.listeners...)
	c.mx.Unlock()
	for _, l := range listeners {
		l.PagerDataChanged(rows, total)
	}
}

func (c *Controller[T]) applyDeterminationLocked(resp *Response[T], size int, sig string) {
	pd := resp.PageDetails
	if pd != nil && pd.PaginationEnabled {
		c.serverPaginated = true
		c.allData = nil
		c.rows = resp.List
		c.total = resp.TotalCount
		fetched := 0
		if pd.PageNumber != nil {
			fetched = *pd.PageNumber
		}
		c.page = fetched
		c.lastPage, c.lastPageSize = fetched, size
	} else {
		c.serverPaginated = false
		c.allData = resp.List
		if len(c.allData) > c.cfg.Threshold {
			logging.Log.Warnf("pager: backend declined to paginate %d rows", len(c.allData))
		}
		c.applyLocalLocked()
		c.lastPage, c.lastPageSize = -1, -1
	}
	c.determined = true
	c.lastSignature = sig
}

func (c *Controller[T]) applyPageLocked(resp *Response[T], opts fetchOptions, size int) {
	c.rows = resp.List
	requested := 0
	if opts.page != nil {
		requested = *opts.page
	}
	fetched := requested
	if pd := resp.PageDetails; pd != nil && pd.PageNumber != nil && *pd.PageNumber != requested {
		// Server clamped us, e.g. past the last page. Reconcile without
		// triggering another fetch.
		fetched = *pd.PageNumber
		c.page = fetched
	}
	c.lastPage, c.lastPageSize = fetched, size
}

func cloneFilters(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// sameFilters deep-compares two filter sets, treating nil and empty alike.
func sameFilters(a, b map[string]string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	patch, err := jsondiff.Compare(a, b)
	return err == nil && len(patch) == 0
}
