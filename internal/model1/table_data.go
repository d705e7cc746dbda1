package model1

import "sync"

// TableData tracks resource data for tabular display.
type TableData struct {
	header     Header
	rowEvents  *RowEvents
	env        string
	totalCount int
	page       int
	pageSize   int
	paginated  bool
	errMsg     string
	mx         sync.RWMutex
}

// NewTableData returns a new table.
func NewTableData() *TableData {
	return &TableData{
		rowEvents: NewRowEvents(10),
	}
}

// Header returns the table header.
func (t *TableData) Header() Header {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.header
}

// SetHeader sets the table header.
func (t *TableData) SetHeader(h Header) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.header = h
}

// RowEvents returns the row events.
func (t *TableData) RowEvents() *RowEvents {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents
}

// Env returns the environment the rows were fetched from.
func (t *TableData) Env() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.env
}

// SetEnv sets the environment the rows were fetched from.
func (t *TableData) SetEnv(env string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.env = env
}

// TotalCount returns the dataset size reported by the backend.
func (t *TableData) TotalCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.totalCount
}

// Page returns the current 0-based page and the page size.
func (t *TableData) Page() (int, int) {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.page, t.pageSize
}

// Paginated reports whether the backend paginates this table.
func (t *TableData) Paginated() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.paginated
}

// SetPageInfo records the pagination status of the current rows.
func (t *TableData) SetPageInfo(total, page, pageSize int, paginated bool) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.totalCount = total
	t.page = page
	t.pageSize = pageSize
	t.paginated = paginated
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Empty()
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Count()
}

// Diff reports whether the table differs from another, ignoring time columns.
func (t *TableData) Diff(d *TableData) bool {
	if d == nil {
		return true
	}
	t.mx.RLock()
	defer t.mx.RUnlock()

	if t.header.Diff(d.Header()) {
		return true
	}
	if t.totalCount != d.TotalCount() {
		return true
	}
	if page, size := d.Page(); t.page != page || t.pageSize != size {
		return true
	}
	timeCol := t.header.TimeColIdx()
	events := d.RowEvents()
	if t.rowEvents.Len() != events.Len() {
		return true
	}
	diff := false
	t.rowEvents.Range(func(i int, re RowEvent) bool {
		// Kinds flip between add/unchanged across refreshes; only the
		// row content decides whether listeners need a redraw.
		other, ok := events.At(i)
		if !ok || re.Row.Diff(other.Row, timeCol) {
			diff = true
			return false
		}
		return true
	})
	return diff
}

// Clone returns a shallow copy of the table data.
func (t *TableData) Clone() *TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return &TableData{
		header:     t.header,
		rowEvents:  t.rowEvents,
		env:        t.env,
		totalCount: t.totalCount,
		page:       t.page,
		pageSize:   t.pageSize,
		paginated:  t.paginated,
		errMsg:     t.errMsg,
	}
}

// SetError sets an error message to display instead of data.
func (t *TableData) SetError(msg string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.errMsg = msg
}

// Error returns the error message, if any.
func (t *TableData) Error() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg
}

// HasError returns true if there's an error message.
func (t *TableData) HasError() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg != ""
}
