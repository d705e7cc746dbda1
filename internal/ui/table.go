// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/model1"
	"github.com/b9s/b9s/internal/pager"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	// EnvTitleFmt formats the table title with resource type, environment, and count.
	EnvTitleFmt = " <%s>[%s][%s] "

	// PageTitleFmt formats the table title when the dataset spans multiple pages.
	PageTitleFmt = " <%s>[%s][%s] page %d/%d "
)

// Table represents a table view for dashboard resources.
type Table struct {
	*SelectTable

	resourceID   *dao.ResourceID
	actions      *KeyActions
	header       model1.Header
	sortColName  string
	sortAsc      bool
	searchText   string
	searchActive bool
	data         *model1.TableData
	isUpdating   bool
	mx           sync.RWMutex
}

// NewTable returns a new table instance.
func NewTable(rid *dao.ResourceID) *Table {
	return &Table{
		SelectTable: &SelectTable{
			Table: tview.NewTable(),
			marks: make(map[string]struct{}),
		},
		resourceID: rid,
		actions:    NewKeyActions(),
	}
}

// Init initializes the table component.
func (t *Table) Init(ctx context.Context) error {
	t.SetFixed(1, 0)
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetSelectable(true, false)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderColor(tcell.ColorWhite)
	t.Select(1, 0)

	if t.resourceID != nil {
		t.SetTitle(fmt.Sprintf(EnvTitleFmt, t.resourceID.String(), "-", "0"))
	}

	t.showNoData("Loading...")

	t.SetInputCapture(t.keyboard)

	t.bindKeys()
	return nil
}

// keyboard handles table keyboard input.
func (t *Table) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	key := evt.Key()

	t.mx.RLock()
	searchActive := t.searchActive
	t.mx.RUnlock()

	if searchActive {
		return t.handleSearchInput(evt)
	}

	row, col := t.GetSelection()
	rowCount := t.GetRowCount()

	// Handle vim-style navigation
	if key == tcell.KeyRune {
		switch evt.Rune() {
		case 'j': // Down
			if row < rowCount-1 {
				t.Select(row+1, col)
			}
			return nil
		case 'k': // Up
			if row > 1 { // Skip header row
				t.Select(row-1, col)
			}
			return nil
		case 'g': // Go to top
			if rowCount > 1 {
				t.Select(1, col)
			}
			return nil
		case 'G': // Go to bottom
			if rowCount > 1 {
				t.Select(rowCount-1, col)
			}
			return nil
		}
	}

	// Handle arrow keys
	switch key {
	case tcell.KeyDown:
		if row < rowCount-1 {
			t.Select(row+1, col)
		}
		return nil
	case tcell.KeyUp:
		if row > 1 { // Skip header row
			t.Select(row-1, col)
		}
		return nil
	case tcell.KeyHome:
		if rowCount > 1 {
			t.Select(1, col)
		}
		return nil
	case tcell.KeyEnd:
		if rowCount > 1 {
			t.Select(rowCount-1, col)
		}
		return nil
	}

	// Check for registered action handlers
	actionKey := key
	if key == tcell.KeyRune {
		actionKey = tcell.Key(evt.Rune())
	}
	if action, ok := t.actions.Get(actionKey); ok {
		return action.Action(evt)
	}

	return evt
}

// handleSearchInput handles keyboard input when search mode is active.
// Each keystroke is pushed to the model, which debounces the actual fetch.
func (t *Table) handleSearchInput(evt *tcell.EventKey) *tcell.EventKey {
	key := evt.Key()

	switch key {
	case tcell.KeyEsc:
		// Cancel search
		t.mx.Lock()
		t.searchActive = false
		t.searchText = ""
		t.mx.Unlock()
		if m := t.GetModel(); m != nil {
			m.SetSearch("")
		}
		t.updateTitleWithSearch()
		return nil

	case tcell.KeyEnter:
		// Confirm search
		t.mx.Lock()
		t.searchActive = false
		t.mx.Unlock()
		t.updateTitleWithSearch()
		return nil

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.mx.Lock()
		if len(t.searchText) > 0 {
			t.searchText = t.searchText[:len(t.searchText)-1]
		}
		text := t.searchText
		t.mx.Unlock()
		if m := t.GetModel(); m != nil {
			m.SetSearch(text)
		}
		t.updateTitleWithSearch()
		return nil

	case tcell.KeyRune:
		t.mx.Lock()
		t.searchText += string(evt.Rune())
		text := t.searchText
		t.mx.Unlock()
		if m := t.GetModel(); m != nil {
			m.SetSearch(text)
		}
		t.updateTitleWithSearch()
		return nil
	}

	return evt
}

// ActivateSearch enters search input mode.
func (t *Table) ActivateSearch() {
	t.mx.Lock()
	t.searchActive = true
	t.mx.Unlock()
	t.updateTitleWithSearch()
}

// SearchActive reports whether search input mode is on.
func (t *Table) SearchActive() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.searchActive
}

// ClearSearch drops any search state and reports whether there was any.
func (t *Table) ClearSearch() bool {
	t.mx.Lock()
	had := t.searchActive || t.searchText != ""
	t.searchActive = false
	t.searchText = ""
	t.mx.Unlock()

	if had {
		if m := t.GetModel(); m != nil {
			m.SetSearch("")
		}
		t.updateTitleWithSearch()
	}
	return had
}

// showNoData displays a message when there's no data.
func (t *Table) showNoData(msg string) {
	t.showMessage(msg, tcell.ColorGray)
}

// showError displays an error message in red.
func (t *Table) showError(msg string) {
	t.showMessage(msg, tcell.ColorRed)
}

// showMessage displays a centered message with the given color.
func (t *Table) showMessage(msg string, color tcell.Color) {
	t.Clear()
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(color)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	t.SetCell(0, 0, cell)
}

// SetModel sets the table data model.
func (t *Table) SetModel(m Tabular) {
	if old := t.GetModel(); old != nil {
		old.RemoveListener(t)
	}
	t.SelectTable.SetModel(m)
	if m != nil {
		m.AddListener(t)
	}
}

// ResourceID returns the resource identifier.
func (t *Table) ResourceID() *dao.ResourceID {
	return t.resourceID
}

// Actions returns the key actions.
func (t *Table) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *Table) Hints() MenuHints {
	return t.actions.Hints()
}

// bindKeys sets up common table key bindings.
func (t *Table) bindKeys() {
	t.actions.Bulk(KeyMap{
		tcell.KeyCtrlS:  NewKeyAction("Sort", t.sortHandler, true),
		tcell.KeyEnter:  NewKeyAction("Select", t.selectHandler, true),
		KeySlash:        NewKeyAction("Search", t.searchHandler, true),
		tcell.KeyEsc:    NewKeyAction("Clear Search", t.clearSearchHandler, false),
		KeyBracketRight: NewKeyAction("Next Page", t.nextPageHandler, true),
		KeyBracketLeft:  NewKeyAction("Prev Page", t.prevPageHandler, true),
	})
}

// sortHandler cycles the sort column. A second press on the same column
// flips the direction before advancing.
func (t *Table) sortHandler(evt *tcell.EventKey) *tcell.EventKey {
	t.mx.Lock()
	if len(t.header) == 0 {
		t.mx.Unlock()
		return nil
	}

	currentIdx := -1
	for i, col := range t.header {
		if col.Name == t.sortColName {
			currentIdx = i
			break
		}
	}

	if currentIdx >= 0 && t.sortAsc {
		t.sortAsc = false
	} else {
		t.sortColName = t.header[(currentIdx+1)%len(t.header)].Name
		t.sortAsc = true
	}
	name, asc := t.sortColName, t.sortAsc
	t.mx.Unlock()

	if m := t.GetModel(); m != nil {
		m.SetSorting([]pager.SortOrder{{Key: sortKey(name), Direction: sortDirection(asc)}})
	}
	t.refresh()

	return nil
}

func sortKey(col string) string {
	return strings.ReplaceAll(strings.ToLower(col), " ", "_")
}

func sortDirection(asc bool) pager.SortDirection {
	if asc {
		return pager.SortAsc
	}
	return pager.SortDesc
}

// selectHandler handles row selection.
func (t *Table) selectHandler(evt *tcell.EventKey) *tcell.EventKey {
	// Override in specific table implementations
	return nil
}

// searchHandler activates search input mode.
func (t *Table) searchHandler(evt *tcell.EventKey) *tcell.EventKey {
	t.mx.Lock()
	t.searchActive = true
	t.searchText = ""
	t.mx.Unlock()
	t.updateTitleWithSearch()
	return nil
}

// clearSearchHandler clears the active search.
func (t *Table) clearSearchHandler(evt *tcell.EventKey) *tcell.EventKey {
	t.mx.Lock()
	wasActive := t.searchActive || t.searchText != ""
	t.searchActive = false
	t.searchText = ""
	t.mx.Unlock()

	if wasActive {
		if m := t.GetModel(); m != nil {
			m.SetSearch("")
		}
		t.updateTitleWithSearch()
	}
	return nil
}

// nextPageHandler moves to the next page.
func (t *Table) nextPageHandler(evt *tcell.EventKey) *tcell.EventKey {
	if m := t.GetModel(); m != nil {
		m.NextPage()
	}
	return nil
}

// prevPageHandler moves to the previous page.
func (t *Table) prevPageHandler(evt *tcell.EventKey) *tcell.EventKey {
	if m := t.GetModel(); m != nil {
		m.PrevPage()
	}
	return nil
}

// renderData renders the given data to the table.
func (t *Table) renderData(data *model1.TableData) {
	if data == nil || data.Empty() {
		t.showNoData("No matching resources")
		t.updateTitleWithSearch()
		return
	}

	t.Clear()

	header := data.Header()
	t.buildHeader(header)

	if rowEvents := data.RowEvents(); rowEvents != nil {
		for idx, re := range t.sortedRows(rowEvents, header, data.Env()) {
			t.buildRow(re.Row, header, idx+1)
		}
	}

	t.updateTitleWithSearch()

	if t.GetRowCount() > 1 {
		t.Select(1, 0)
	}
}

// sortedRows filters out invalid rows and orders the rest by the active
// sort column. Without a sort column the backend order is kept.
func (t *Table) sortedRows(re *model1.RowEvents, header model1.Header, env string) []model1.RowEvent {
	t.mx.RLock()
	name, asc := t.sortColName, t.sortAsc
	t.mx.RUnlock()

	rows := make([]model1.RowEvent, 0, re.Len())
	re.Range(func(_ int, e model1.RowEvent) bool {
		if model1.IsValid(env, header, e.Row) {
			rows = append(rows, e)
		}
		return true
	})

	idx, ok := header.IndexOf(name, true)
	if !ok {
		return rows
	}

	col := header[idx]
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Row, rows[j].Row
		if idx >= len(ri.Fields) || idx >= len(rj.Fields) {
			return false
		}
		less := model1.Less(col.Capacity, col.Time, false, ri.ID, rj.ID, ri.Fields[idx], rj.Fields[idx])
		if asc {
			return less
		}
		return !less
	})

	return rows
}

// updateTitleWithSearch updates title including search text and page info.
func (t *Table) updateTitleWithSearch() {
	t.mx.RLock()
	search := t.searchText
	searchActive := t.searchActive
	data := t.data
	t.mx.RUnlock()

	env := "-"
	count := "0"
	var page, pages int
	if data != nil {
		if data.Env() != "" {
			env = data.Env()
		}
		count = fmt.Sprintf("%d", data.TotalCount())
		pg, size := data.Page()
		if data.Paginated() && size > 0 {
			page = pg + 1
			pages = (data.TotalCount() + size - 1) / size
		}
	}

	resource := t.resourceID.String()
	var title string
	switch {
	case searchActive || search != "":
		title = fmt.Sprintf(" <%s>[%s][%s] Search: %s█ ", resource, env, count, search)
	case pages > 1:
		title = fmt.Sprintf(PageTitleFmt, resource, env, count, page, pages)
	default:
		title = fmt.Sprintf(EnvTitleFmt, resource, env, count)
	}

	t.SetTitle(title)
}

// UpdateUI updates the table display from TableData.
func (t *Table) UpdateUI(data *model1.TableData) {
	t.mx.Lock()
	if t.isUpdating {
		t.mx.Unlock()
		return
	}
	t.isUpdating = true
	t.data = data
	t.mx.Unlock()

	defer func() {
		t.mx.Lock()
		t.isUpdating = false
		t.mx.Unlock()
	}()

	if data != nil && data.HasError() {
		t.showError(data.Error())
		t.updateTitleWithSearch()
		return
	}

	if data == nil || data.Empty() {
		t.showNoData("No resources found")
		t.updateTitleWithSearch()
		return
	}

	t.renderData(data)
}

// buildHeader builds the table header row.
func (t *Table) buildHeader(header model1.Header) {
	t.mx.Lock()
	t.header = header
	sortName, asc := t.sortColName, t.sortAsc
	t.mx.Unlock()

	marker := " ▼"
	if asc {
		marker = " ▲"
	}

	for col, h := range header {
		cell := tview.NewTableCell(h.Name)
		cell.SetTextColor(tcell.ColorYellow)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(h.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)

		if h.Name == sortName {
			cell.SetText(h.Name + marker)
			cell.SetAttributes(tcell.AttrBold)
		}

		t.SetCell(0, col, cell)
	}
}

// buildRow builds a single data row.
func (t *Table) buildRow(row model1.Row, header model1.Header, rowIdx int) {
	for col, field := range row.Fields {
		if col >= len(header) {
			break
		}

		cell := tview.NewTableCell(field)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(header[col].Align)
		cell.SetExpansion(1)

		color := t.cellColor(header[col].Name, field)
		cell.SetTextColor(color)

		// Store row ID in first column
		if col == 0 {
			cell.SetReference(row.ID)
		}

		t.SetCell(rowIdx, col, cell)
	}
}

// cellColor returns the appropriate color for a cell based on column and value.
func (t *Table) cellColor(colName, value string) tcell.Color {
	colUpper := strings.ToUpper(colName)
	valLower := strings.ToLower(value)

	if colUpper == "STATUS" {
		switch valLower {
		case "paid", "shipped", "delivered", "active", "sent":
			return tcell.ColorGreen
		case "cancelled", "refunded", "archived", "expired", "inactive":
			return tcell.ColorRed
		case "pending", "draft", "scheduled":
			return tcell.ColorYellow
		}
	}

	if colUpper == "NAME" || colUpper == "NUMBER" || colUpper == "CODE" || colUpper == "TITLE" {
		if value != "" && value != "-" {
			return tcell.ColorAqua
		}
	}

	if colUpper == "ID" {
		return tcell.ColorSteelBlue
	}

	return tcell.ColorWhite
}

// refresh triggers a table refresh.
func (t *Table) refresh() {
	if m := t.GetModel(); m != nil {
		data := m.Peek()
		t.UpdateUI(data)
	}
}

// TableDataChanged implements model.TableListener.
func (t *Table) TableDataChanged(data *model1.TableData) {
	t.UpdateUI(data)
}

// TableLoadFailed implements model.TableListener.
func (t *Table) TableLoadFailed(err error) {
	t.Clear()
	title := fmt.Sprintf(" [Error] %s: %v ", t.resourceID.String(), err)
	t.SetTitle(title)
}

// TableNoData implements model.TableListener.
func (t *Table) TableNoData(data *model1.TableData) {
	t.mx.Lock()
	t.data = data
	t.mx.Unlock()
	t.showNoData("No resources found")
	t.updateTitleWithSearch()
}
