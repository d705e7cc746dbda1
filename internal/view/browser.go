// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package view

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/b9s/b9s/internal/config"
	"github.com/b9s/b9s/internal/config/data"
	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/logging"
	"github.com/b9s/b9s/internal/model"
	"github.com/b9s/b9s/internal/model1"
	"github.com/b9s/b9s/internal/ui"
	"github.com/derailed/tcell/v2"
)

const defaultActionTimeout = 2 * time.Minute

// Browser displays a pageable, searchable resource table.
type Browser struct {
	*Table

	factory  dao.Factory
	model    *model.TableData
	cancelFn context.CancelFunc
	mx       sync.RWMutex
}

// NewBrowser creates a new browser view for the given resource.
func NewBrowser(rid *dao.ResourceID) *Browser {
	return &Browser{
		Table: NewTable(rid),
	}
}

// SetFactory sets the resource factory.
func (b *Browser) SetFactory(f dao.Factory) {
	b.factory = f
}

// Init initializes the browser and its data model.
func (b *Browser) Init(ctx context.Context) error {
	if err := b.Table.Init(ctx); err != nil {
		return err
	}

	refresh, pageSize, debounce := b.settings()
	b.model = model.NewTableData(b.ResourceID(), b.factory, refresh, pageSize, debounce)

	acc, err := dao.AccessorFor(b.factory, b.ResourceID())
	if err != nil {
		return err
	}
	b.model.SetAccessor(acc)

	renderer, err := model.RendererFor(b.ResourceID())
	if err != nil {
		return err
	}
	b.model.SetRenderer(renderer)

	b.SetModel(b.model)
	b.SetEnterFn(describeResource)
	b.bindKeys()

	return nil
}

func (b *Browser) settings() (time.Duration, int, int) {
	refresh := time.Duration(float64(time.Second) * float64(config.DefaultRefreshRate))
	pageSize := config.DefaultPageSize
	debounce := 0
	if b.app != nil && b.app.Config() != nil && b.app.Config().B9s != nil {
		b9s := b.app.Config().B9s
		if b9s.RefreshRate > 0 {
			refresh = time.Duration(float64(time.Second) * float64(b9s.RefreshRate))
		}
		if b9s.PageSize > 0 {
			pageSize = b9s.PageSize
		}
		if b9s.SearchDebounce > 0 {
			debounce = b9s.SearchDebounce
		}
	}
	return refresh, pageSize, debounce
}

// Start begins watching the resource.
func (b *Browser) Start() {
	b.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	b.mx.Lock()
	b.cancelFn = cancel
	b.mx.Unlock()

	b.model.AddListener(b)
	if err := b.model.Watch(ctx); err != nil {
		if b.app != nil {
			b.app.Flash().Err(err)
		}
	}
}

// Stop ends the view lifecycle.
func (b *Browser) Stop() {
	b.mx.Lock()
	cancel := b.cancelFn
	b.cancelFn = nil
	b.mx.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	b.model.RemoveListener(b)
	b.model.Stop()
}

// SetSearch pushes search text to the data model.
func (b *Browser) SetSearch(text string) {
	if b.model != nil {
		b.model.SetSearch(text)
	}
}

// TableDataChanged is invoked when table rows change.
func (b *Browser) TableDataChanged(data *model1.TableData) {
	if !b.watching() {
		return
	}
	b.app.QueueUpdateDraw(func() {
		b.UpdateUI(data)
	})
}

// TableNoData is invoked when the table comes up empty.
func (b *Browser) TableNoData(data *model1.TableData) {
	if !b.watching() {
		return
	}
	b.app.QueueUpdateDraw(func() {
		b.UpdateUI(data)
	})
}

// TableLoadFailed is invoked when a table load fails.
func (b *Browser) TableLoadFailed(err error) {
	if !b.watching() {
		return
	}
	b.app.QueueUpdateDraw(func() {
		b.Table.Table.TableLoadFailed(err)
	})
}

func (b *Browser) watching() bool {
	b.mx.RLock()
	defer b.mx.RUnlock()

	return b.cancelFn != nil && b.app != nil
}

func (b *Browser) bindKeys() {
	b.Actions().Bulk(ui.KeyMap{
		tcell.KeyCtrlR: ui.NewKeyAction("Refresh", b.refreshHandler, true),
		tcell.KeyCtrlE: ui.NewKeyAction("Export", b.exportHandler, false),
		ui.KeyD:        ui.NewKeyAction("Describe", b.describeHandler, true),
		ui.KeyE:        ui.NewKeyAction("Edit", b.editHandler, true),
		ui.KeySpace:    ui.NewKeyAction("Mark", b.markHandler, false),
	})

	for _, action := range ui.GetActions(b.ResourceID()) {
		action := action
		b.Actions().Add(action.Key, ui.NewKeyAction(action.Name, func(evt *tcell.EventKey) *tcell.EventKey {
			b.executeAction(action)
			return nil
		}, true))
	}
}

func (b *Browser) refreshHandler(evt *tcell.EventKey) *tcell.EventKey {
	ctx, cancel := context.WithTimeout(context.Background(), b.apiTimeout())
	go func() {
		defer cancel()
		if err := b.model.Refresh(ctx); err != nil {
			logging.Log.Warnf("refresh failed: %v", err)
		}
	}()
	return nil
}

func (b *Browser) describeHandler(evt *tcell.EventKey) *tcell.EventKey {
	id := b.GetSelectedItem()
	if id == "" {
		return nil
	}
	describeResource(b.app, b.ResourceID(), id)
	return nil
}

func (b *Browser) editHandler(evt *tcell.EventKey) *tcell.EventKey {
	id := b.GetSelectedItem()
	if id == "" {
		return nil
	}
	b.edit(id)
	return nil
}

func (b *Browser) markHandler(evt *tcell.EventKey) *tcell.EventKey {
	b.ToggleMark()
	return nil
}

func (b *Browser) exportHandler(evt *tcell.EventKey) *tcell.EventKey {
	if !b.gateEnabled(data.GateExports) {
		ui.WarningDialog(b.app.Content, "Feature Disabled",
			"Exports are not enabled for this environment").Show()
		return nil
	}

	path, err := b.exportCSV()
	if err != nil {
		b.app.Flash().Errf("Export failed: %v", err)
		return nil
	}
	b.app.Flash().Infof("Exported %s", path)

	return nil
}

// exportCSV dumps the current table snapshot to the screen-dumps dir.
func (b *Browser) exportCSV() (string, error) {
	snap := b.model.Peek()
	if snap == nil || snap.Empty() {
		return "", fmt.Errorf("no rows to export")
	}

	name := fmt.Sprintf("%s-%s.csv",
		strings.ReplaceAll(b.ResourceID().String(), "/", "-"),
		time.Now().Format("20060102-150405"))
	path := filepath.Join(config.AppDumpsDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(snap.Header().ColumnNames(true)); err != nil {
		return "", err
	}
	var werr error
	snap.RowEvents().Range(func(_ int, re model1.RowEvent) bool {
		werr = w.Write(re.Row.Fields)
		return werr == nil
	})
	if werr != nil {
		return "", werr
	}
	w.Flush()

	return path, w.Error()
}

// executeAction confirms and runs a resource action on the selected row.
func (b *Browser) executeAction(action ui.ResourceAction) {
	if b.app == nil {
		return
	}
	if b.readOnly() {
		ui.WarningDialog(b.app.Content, "Read-Only",
			fmt.Sprintf("%s denied: b9s is in read-only mode", action.Name)).Show()
		return
	}
	if action.Gate != "" && !b.gateEnabled(action.Gate) {
		ui.WarningDialog(b.app.Content, "Feature Disabled",
			fmt.Sprintf("%s requires the %s feature gate for this environment", action.Name, action.Gate)).Show()
		return
	}

	id := b.GetSelectedItem()
	if id == "" {
		b.app.Flash().Warn("No row selected")
		return
	}

	confirm := ui.NewConfirm(b.app.Content)
	confirm.SetTitle(fmt.Sprintf(" %s ", action.Name))
	confirm.SetMessage(fmt.Sprintf("%s %s?", action.Name, id))
	confirm.SetDangerous(action.Dangerous)
	confirm.SetOnConfirm(func() {
		b.doExecuteAction(action, id)
	})
	confirm.Show()
}

func (b *Browser) doExecuteAction(action ui.ResourceAction, id string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultActionTimeout)
		defer cancel()

		err := action.Handler(ctx, b.factory, id)
		b.app.QueueUpdateDraw(func() {
			if err != nil {
				b.app.Flash().Errf("%s failed: %v", action.Name, err)
				return
			}
			b.app.Flash().Infof("%s succeeded for %s", action.Name, id)
		})
		if err == nil {
			refreshCtx, refreshCancel := context.WithTimeout(context.Background(), b.apiTimeout())
			defer refreshCancel()
			if rerr := b.model.Refresh(refreshCtx); rerr != nil {
				logging.Log.Warnf("refresh after %s failed: %v", action.Name, rerr)
			}
		}
	}()
}

func (b *Browser) edit(id string) {
	if b.readOnly() {
		ui.WarningDialog(b.app.Content, "Read-Only",
			"Edit denied: b9s is in read-only mode").Show()
		return
	}

	go func() {
		err := EditResource(context.Background(), b.app, b.factory, b.ResourceID(), id)
		b.app.QueueUpdateDraw(func() {
			switch {
			case err == nil:
				b.app.Flash().Infof("Updated %s", id)
			case err == ErrEditorCancelled:
				b.app.Flash().Info("Edit cancelled")
			case err == ErrNoChanges:
				b.app.Flash().Info("No changes")
			default:
				b.app.Flash().Errf("Edit failed: %v", err)
			}
		})
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), b.apiTimeout())
			defer cancel()
			if rerr := b.model.Refresh(ctx); rerr != nil {
				logging.Log.Warnf("refresh after edit failed: %v", rerr)
			}
		}
	}()
}

// readOnly honors the per-env override when one is set, else the global flag.
func (b *Browser) readOnly() bool {
	if b.app == nil || b.app.Config() == nil || b.app.Config().B9s == nil {
		return false
	}
	b9s := b.app.Config().B9s

	if ac := b9s.ActiveConfig(); ac != nil {
		if envCtx := ac.GetContext(); envCtx != nil && envCtx.ReadOnly != nil {
			return envCtx.IsReadOnly()
		}
	}

	return b9s.ReadOnly
}

// gateEnabled checks the named feature gate on the active env config.
// Gated features stay off when no env config is loaded.
func (b *Browser) gateEnabled(gate string) bool {
	if b.app == nil || b.app.Config() == nil || b.app.Config().B9s == nil {
		return false
	}
	ac := b.app.Config().B9s.ActiveConfig()
	if ac == nil {
		return false
	}
	envCtx := ac.GetContext()
	if envCtx == nil {
		return false
	}

	return envCtx.FeatureGates.Enabled(gate)
}

func (b *Browser) apiTimeout() time.Duration {
	if b.app != nil && b.app.Config() != nil && b.app.Config().B9s != nil {
		if d, err := b.app.Config().B9s.GetAPITimeout(); err == nil {
			return d
		}
	}
	return config.DefaultAPITimeout
}

// describeResource pushes a describe view for the given resource entity.
func describeResource(app *App, rid *dao.ResourceID, id string) {
	if app == nil {
		return
	}

	d := NewDescribe(app, rid, app.GetFactory(), id)
	if err := d.Init(context.Background()); err != nil {
		app.Flash().Err(err)
		return
	}
	d.SetBackFn(app.handleEscape)

	app.Content.Push(d)
	app.SetFocus(d)
}
