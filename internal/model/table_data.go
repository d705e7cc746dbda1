package model

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/logging"
	"github.com/b9s/b9s/internal/model1"
	"github.com/b9s/b9s/internal/pager"
	"github.com/b9s/b9s/internal/render"
)

// TableData fetches and manages resource data from a DAO through the
// pagination controller.
type TableData struct {
	rid         *dao.ResourceID
	accessor    dao.Accessor
	factory     dao.Factory
	renderer    model1.Renderer
	pages       *pager.Controller[dao.Object]
	data        *model1.TableData
	refreshRate time.Duration
	listeners   []TableListener
	cancelFn    context.CancelFunc
	loadErr     error
	mx          sync.RWMutex
}

// NewTableData creates a new table data model. A non-positive
// searchDebounce selects the controller's default delay.
func NewTableData(rid *dao.ResourceID, factory dao.Factory, refreshRate time.Duration, pageSize, searchDebounce int) *TableData {
	t := &TableData{
		rid:         rid,
		factory:     factory,
		data:        model1.NewTableData(),
		refreshRate: refreshRate,
		listeners:   make([]TableListener, 0, 2),
	}
	t.pages = pager.NewController(pager.Config[dao.Object]{
		Fetch:          t.fetchPage,
		PageSize:       pageSize,
		SearchDebounce: int64(searchDebounce),
		Enabled:        true,
		SearchText: func(o dao.Object) []string {
			vv := pager.SearchableValues(o.GetRaw())
			return append(vv, o.GetID(), o.GetName(), o.GetStatus())
		},
	})
	t.pages.AddListener(t)

	return t
}

// SetAccessor sets the DAO accessor.
func (t *TableData) SetAccessor(a dao.Accessor) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.accessor = a
}

// SetRenderer sets the renderer for converting DAO objects to rows.
func (t *TableData) SetRenderer(r model1.Renderer) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.renderer = r
}

// fetchPage is the pagination controller's data source.
func (t *TableData) fetchPage(ctx context.Context, params pager.FetchParams) (*pager.Response[dao.Object], error) {
	t.mx.RLock()
	accessor := t.accessor
	t.mx.RUnlock()

	if accessor == nil {
		return nil, fmt.Errorf("no accessor configured")
	}

	return accessor.List(ctx, params)
}

// Header returns the table header.
func (t *TableData) Header() model1.Header {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Header()
}

// RowCount returns the number of visible rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.RowCount()
}

// RowEvents returns the current row events.
func (t *TableData) RowEvents() *model1.RowEvents {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.RowEvents()
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Empty()
}

// Peek returns a clone of the current table data.
func (t *TableData) Peek() *model1.TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.data.Clone()
}

// TotalCount returns the dataset size reported by the backend.
func (t *TableData) TotalCount() int {
	return t.pages.TotalCount()
}

// PageModel returns the current page position.
func (t *TableData) PageModel() pager.PageModel {
	return t.pages.PageModel()
}

// ServerPaginated reports whether the backend paginates this resource.
func (t *TableData) ServerPaginated() bool {
	return t.pages.ServerPaginated()
}

// Loading reports whether a fetch is in flight.
func (t *TableData) Loading() bool {
	return t.pages.Loading()
}

// SetPage turns to a 0-based page, keeping the current page size.
func (t *TableData) SetPage(page int) {
	pm := t.pages.PageModel()
	t.pages.SetPageModel(page, pm.PageSize)
}

// NextPage advances one page when one remains.
func (t *TableData) NextPage() {
	pm := t.pages.PageModel()
	if t.pages.ServerPaginated() {
		if (pm.Page+1)*pm.PageSize >= t.pages.TotalCount() {
			return
		}
	}
	t.pages.SetPageModel(pm.Page+1, pm.PageSize)
}

// PrevPage backs up one page.
func (t *TableData) PrevPage() {
	pm := t.pages.PageModel()
	if pm.Page == 0 {
		return
	}
	t.pages.SetPageModel(pm.Page-1, pm.PageSize)
}

// SetSearch records new search text; its effect is debounced.
func (t *TableData) SetSearch(keyword string) {
	t.pages.SetSearchKeyword(keyword)
}

// Search returns the current search text.
func (t *TableData) Search() string {
	return t.pages.SearchKeyword()
}

// SetFilters replaces the filter set and refetches on any real change.
func (t *TableData) SetFilters(filters map[string]string) {
	t.pages.SetFilters(filters)
}

// Filters returns the active filter set.
func (t *TableData) Filters() map[string]string {
	return t.pages.Filters()
}

// SetSorting replaces the sort order and refetches.
func (t *TableData) SetSorting(sorting []pager.SortOrder) {
	t.pages.SetSorting(sorting)
}

// ClearQuery resets search, filters and page position, then refetches.
func (t *TableData) ClearQuery(ctx context.Context) {
	t.pages.Reset()
	t.pages.Refresh(ctx)
}

// AddListener registers a table listener.
func (t *TableData) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a table listener.
func (t *TableData) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// Watch starts watching/refreshing data periodically.
func (t *TableData) Watch(ctx context.Context) error {
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	t.cancelFn = cancel
	t.mx.Unlock()

	t.pages.Fetch(watchCtx)

	go t.watchLoop(watchCtx)
	return nil
}

// watchLoop periodically reloads the current page.
func (t *TableData) watchLoop(ctx context.Context) {
	t.mx.RLock()
	refreshRate := t.refreshRate
	t.mx.RUnlock()

	if refreshRate <= 0 {
		refreshRate = 5 * time.Second
	}

	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.pages.Reload(ctx)
		}
	}
}

// Refresh re-fetches the current page immediately.
func (t *TableData) Refresh(ctx context.Context) error {
	t.pages.Reload(ctx)
	return nil
}

// Stop stops the watch loop and the pagination controller.
func (t *TableData) Stop() {
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
		t.cancelFn = nil
	}
	t.mx.Unlock()
	t.pages.Stop()
}

// PagerDataChanged implements pager.Listener. It renders the visible rows
// into table data and fans out to table listeners.
func (t *TableData) PagerDataChanged(rows []dao.Object, total int) {
	t.mx.RLock()
	renderer := t.renderer
	prev := t.data
	env := ""
	if t.factory != nil {
		env = t.factory.Env()
	}
	t.mx.RUnlock()

	if renderer == nil {
		logging.Log.Errorf("model: no renderer for %s", t.rid)
		return
	}

	newData := model1.NewTableData()
	header := renderer.Header(env)
	newData.SetHeader(header)
	newData.SetEnv(env)

	for _, obj := range rows {
		row := model1.NewRow(len(header))
		if err := renderer.Render(obj, env, &row); err != nil {
			logging.Log.Warnf("model: render %s failed: %v", obj.GetID(), err)
			continue
		}
		old, known := prev.RowEvents().Get(row.ID)
		if !known {
			newData.RowEvents().Add(model1.NewRowEvent(model1.EventAdd, row))
			continue
		}
		if deltas := model1.NewDeltaRow(old.Row, row, header); !deltas.IsBlank() {
			newData.RowEvents().Add(model1.NewRowEventWithDeltas(row, deltas))
		} else {
			newData.RowEvents().Add(model1.NewRowEvent(model1.EventUnchanged, row))
		}
	}
	pm := t.pages.PageModel()
	newData.SetPageInfo(total, pm.Page, pm.PageSize, t.pages.ServerPaginated())

	t.mx.Lock()
	oldEmpty := t.data.Empty()
	// A failed fetch reports the error first, then clears the rows. The
	// cleared snapshot must keep carrying that error until data returns.
	if t.loadErr != nil {
		newData.SetError(t.loadErr.Error())
		t.loadErr = nil
	}
	t.data = newData
	t.mx.Unlock()

	if newData.Empty() && !oldEmpty {
		t.notifyNoData(newData)
		return
	}
	// Refresh ticks with identical data skip the redraw.
	if !newData.Diff(prev) && !prev.HasError() {
		return
	}
	t.notifyDataChanged(newData)
}

// PagerLoadFailed implements pager.Listener.
func (t *TableData) PagerLoadFailed(err error) {
	t.mx.Lock()
	t.loadErr = err
	t.data.SetError(err.Error())
	t.mx.Unlock()

	t.notifyLoadFailed(err)
}

// notifyNoData notifies listeners that no data is available.
func (t *TableData) notifyNoData(data *model1.TableData) {
	t.mx.RLock()
	listeners := make([]TableListener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mx.RUnlock()

	for _, l := range listeners {
		l.TableNoData(data)
	}
}

// notifyDataChanged notifies listeners that data has changed.
func (t *TableData) notifyDataChanged(data *model1.TableData) {
	t.mx.RLock()
	listeners := make([]TableListener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mx.RUnlock()

	for _, l := range listeners {
		l.TableDataChanged(data)
	}
}

// notifyLoadFailed notifies listeners that loading failed.
func (t *TableData) notifyLoadFailed(err error) {
	t.mx.RLock()
	listeners := make([]TableListener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mx.RUnlock()

	for _, l := range listeners {
		l.TableLoadFailed(err)
	}
}

// RendererFor returns the appropriate renderer for the given resource ID.
func RendererFor(rid *dao.ResourceID) (model1.Renderer, error) {
	switch rid.String() {
	case "sales/order":
		return &render.Order{}, nil
	case "catalog/product":
		return &render.Product{}, nil
	case "catalog/category":
		return &render.Category{}, nil
	case "marketing/promocode":
		return &render.PromoCode{}, nil
	case "comms/notification":
		return &render.Notification{}, nil
	default:
		return nil, fmt.Errorf("no renderer for resource: %s", rid.String())
	}
}
