// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// Describe displays a read-only detail view of a single entity.
type Describe struct {
	*tview.TextView

	app     *App
	rid     *dao.ResourceID
	factory dao.Factory
	id      string
	format  string
	wrapOn  bool
	actions *ui.KeyActions
	backFn  func()
}

// NewDescribe creates a new describe view.
func NewDescribe(app *App, rid *dao.ResourceID, factory dao.Factory, id string) *Describe {
	return &Describe{
		TextView: tview.NewTextView(),
		app:      app,
		rid:      rid,
		factory:  factory,
		id:       id,
		format:   formatYAML,
		actions:  ui.NewKeyActions(),
	}
}

// Init initializes the describe view and loads the entity.
func (d *Describe) Init(ctx context.Context) error {
	d.SetDynamicColors(true)
	d.SetScrollable(true)
	d.SetWrap(d.wrapOn)
	d.SetBorder(true)
	d.SetBorderColor(tcell.ColorAqua)
	d.SetBackgroundColor(tcell.ColorDefault)
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetInputCapture(d.keyboard)
	d.bindKeys()
	d.updateTitle()

	return d.refresh(ctx)
}

// SetBackFn sets the callback invoked when leaving the view.
func (d *Describe) SetBackFn(fn func()) {
	d.backFn = fn
}

// Start begins the view lifecycle.
func (d *Describe) Start() {
	d.refreshAsync()
}

// Stop ends the view lifecycle.
func (d *Describe) Stop() {}

// Name returns the view name.
func (d *Describe) Name() string {
	return fmt.Sprintf("%s/%s", d.rid.String(), d.id)
}

// Hints returns menu hints.
func (d *Describe) Hints() ui.MenuHints {
	return d.actions.Hints()
}

func (d *Describe) bindKeys() {
	d.actions.Bulk(ui.KeyMap{
		ui.KeyY:        ui.NewKeyAction("YAML", d.formatHandler(formatYAML), true),
		ui.KeyJ:        ui.NewKeyAction("JSON", d.formatHandler(formatJSON), true),
		ui.KeyW:        ui.NewKeyAction("Toggle Wrap", d.wrapHandler, true),
		ui.KeyE:        ui.NewKeyAction("Edit", d.editHandler, true),
		tcell.KeyCtrlR: ui.NewKeyAction("Refresh", d.refreshHandler, true),
	})
}

func (d *Describe) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if evt.Key() == tcell.KeyEsc {
		if d.backFn != nil {
			d.backFn()
		}
		return nil
	}

	key := evt.Key()
	if key == tcell.KeyRune {
		switch evt.Rune() {
		case 'g':
			d.ScrollToBeginning()
			return nil
		case 'G':
			d.ScrollToEnd()
			return nil
		}
		key = tcell.Key(evt.Rune())
	}

	if action, ok := d.actions.Get(key); ok {
		return action.Action(evt)
	}

	return evt
}

func (d *Describe) formatHandler(format string) ui.ActionHandler {
	return func(evt *tcell.EventKey) *tcell.EventKey {
		if d.format == format {
			return nil
		}
		d.format = format
		d.refreshAsync()
		return nil
	}
}

func (d *Describe) wrapHandler(evt *tcell.EventKey) *tcell.EventKey {
	d.wrapOn = !d.wrapOn
	d.SetWrap(d.wrapOn)
	return nil
}

func (d *Describe) refreshHandler(evt *tcell.EventKey) *tcell.EventKey {
	d.refreshAsync()
	return nil
}

func (d *Describe) editHandler(evt *tcell.EventKey) *tcell.EventKey {
	go func() {
		err := EditResource(context.Background(), d.app, d.factory, d.rid, d.id)
		d.app.QueueUpdateDraw(func() {
			switch {
			case err == nil:
				d.app.Flash().Infof("Updated %s", d.id)
			case err == ErrEditorCancelled:
				d.app.Flash().Info("Edit cancelled")
			case err == ErrNoChanges:
				d.app.Flash().Info("No changes")
			default:
				d.app.Flash().Errf("Edit failed: %v", err)
			}
		})
		if err == nil {
			d.refreshAsync()
		}
	}()
	return nil
}

func (d *Describe) refreshAsync() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultActionTimeout)
		defer cancel()
		if err := d.refresh(ctx); err != nil {
			d.app.QueueUpdateDraw(func() {
				d.app.Flash().Err(err)
			})
		}
	}()
}

// refresh fetches the entity and renders it in the current format.
func (d *Describe) refresh(ctx context.Context) error {
	acc, err := dao.AccessorFor(d.factory, d.rid)
	if err != nil {
		return err
	}

	describer, ok := acc.(dao.Describer)
	if !ok {
		return fmt.Errorf("describe not supported for %s", d.rid.String())
	}

	var body string
	switch d.format {
	case formatJSON:
		body, err = describer.ToJSON(ctx, d.id)
	default:
		body, err = describer.Describe(ctx, d.id)
	}
	if err != nil {
		return err
	}

	render := func() {
		d.Clear()
		if d.format == formatYAML {
			fmt.Fprint(d.TextView, highlightYAML(body))
		} else {
			fmt.Fprint(d.TextView, tview.Escape(body))
		}
		d.updateTitle()
		d.ScrollToBeginning()
	}

	if d.app != nil && d.app.IsRunning() {
		d.app.QueueUpdateDraw(render)
	} else {
		render()
	}

	return nil
}

func (d *Describe) updateTitle() {
	d.SetTitle(fmt.Sprintf(" %s(%s)[%s] ", d.rid.String(), d.id, d.format))
	d.SetTitleAlign(tview.AlignCenter)
}

// highlightYAML adds color tags to a YAML document.
func highlightYAML(body string) string {
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, highlightYAMLLine(line))
	}
	return strings.Join(out, "\n")
}

func highlightYAMLLine(line string) string {
	trimmed := strings.TrimLeft(line, " -")
	idx := strings.Index(trimmed, ":")
	if idx < 0 {
		return tview.Escape(line)
	}

	prefix := line[:len(line)-len(trimmed)]
	key := trimmed[:idx]
	value := strings.TrimSpace(trimmed[idx+1:])

	if value == "" {
		return fmt.Sprintf("%s[aqua]%s[-]:", prefix, tview.Escape(key))
	}
	return fmt.Sprintf("%s[aqua]%s[-]: %s%s[-]", prefix, tview.Escape(key), valueColor(value), tview.Escape(value))
}

func valueColor(value string) string {
	switch strings.ToLower(value) {
	case "paid", "shipped", "delivered", "active", "sent", "true":
		return "[green]"
	case "cancelled", "refunded", "archived", "expired", "inactive", "failed", "false":
		return "[red]"
	case "pending", "draft", "scheduled":
		return "[yellow]"
	case "null", "~", "":
		return "[gray]"
	default:
		return "[white]"
	}
}
