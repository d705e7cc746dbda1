// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package view

import (
	"context"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/ui"
	"github.com/derailed/tcell/v2"
)

// EnterFunc handles selection of a table row.
type EnterFunc func(app *App, rid *dao.ResourceID, id string)

// Table wraps a ui.Table with application level bindings.
type Table struct {
	*ui.Table

	app     *App
	enterFn EnterFunc
}

// NewTable creates a new table view for the given resource.
func NewTable(rid *dao.ResourceID) *Table {
	return &Table{
		Table: ui.NewTable(rid),
	}
}

// Init initializes the table view.
func (t *Table) Init(ctx context.Context) error {
	if err := t.Table.Init(ctx); err != nil {
		return err
	}
	t.bindKeys()
	return nil
}

// App returns the owning application.
func (t *Table) App() *App {
	return t.app
}

// SetApp sets the owning application.
func (t *Table) SetApp(app *App) {
	t.app = app
}

// SetEnterFn sets the handler invoked when a row is selected.
func (t *Table) SetEnterFn(fn EnterFunc) {
	t.enterFn = fn
}

// Name returns the view name.
func (t *Table) Name() string {
	return t.ResourceID().String()
}

func (t *Table) bindKeys() {
	t.Actions().Bulk(ui.KeyMap{
		tcell.KeyEnter: ui.NewKeyAction("Select", t.enterHandler, true),
		ui.KeyY:        ui.NewKeyAction("Copy ID", t.copyHandler, false),
	})
}

func (t *Table) enterHandler(evt *tcell.EventKey) *tcell.EventKey {
	id := t.GetSelectedItem()
	if id == "" || t.enterFn == nil {
		return nil
	}
	t.enterFn(t.app, t.ResourceID(), id)
	return nil
}

func (t *Table) copyHandler(evt *tcell.EventKey) *tcell.EventKey {
	id := t.GetSelectedItem()
	if id == "" {
		return nil
	}
	if t.app != nil {
		t.app.Flash().Infof("ID: %s", id)
	}
	return nil
}
