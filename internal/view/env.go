// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/b9s/b9s/internal/api"
	"github.com/b9s/b9s/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// EnvSwitcher displays and allows switching between backend environments.
type EnvSwitcher struct {
	*tview.Table

	app     *App
	envs    []string
	current string
	search  string
}

// NewEnvSwitcher creates a new environment switcher view.
func NewEnvSwitcher(app *App) *EnvSwitcher {
	e := &EnvSwitcher{
		Table: tview.NewTable(),
		app:   app,
	}

	e.SetBorder(true)
	e.SetTitle(" Environments ")
	e.SetTitleAlign(tview.AlignCenter)
	e.SetBorderColor(tcell.ColorAqua)
	e.SetBackgroundColor(tcell.ColorDefault)
	e.SetSelectable(true, false)
	e.SetFixed(1, 0)

	return e
}

// Init initializes the environment switcher.
func (e *EnvSwitcher) Init(ctx context.Context) error {
	e.SetInputCapture(e.keyboard)
	e.loadEnvs()
	return nil
}

// Start begins the view lifecycle.
func (e *EnvSwitcher) Start() {
	e.loadEnvs()
}

// Stop ends the view lifecycle.
func (e *EnvSwitcher) Stop() {}

// Name returns the view name.
func (e *EnvSwitcher) Name() string {
	return "env"
}

// Hints returns menu hints.
func (e *EnvSwitcher) Hints() ui.MenuHints {
	return ui.MenuHints{
		{Mnemonic: "enter", Description: "Switch to environment", Visible: true},
		{Mnemonic: "esc", Description: "Back", Visible: true},
	}
}

// SetSearch narrows the listing to environments matching text.
func (e *EnvSwitcher) SetSearch(text string) {
	e.search = strings.ToLower(strings.TrimSpace(text))
	e.loadEnvs()
}

// keyboard handles keyboard input.
func (e *EnvSwitcher) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	key := evt.Key()
	row, col := e.GetSelection()
	rowCount := e.GetRowCount()

	if key == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			if row < rowCount-1 {
				e.Select(row+1, col)
			}
			return nil
		case 'k':
			if row > 1 {
				e.Select(row-1, col)
			}
			return nil
		case 'g':
			if rowCount > 1 {
				e.Select(1, col)
			}
			return nil
		case 'G':
			if rowCount > 1 {
				e.Select(rowCount-1, col)
			}
			return nil
		}
	}

	switch key {
	case tcell.KeyEnter:
		e.selectEnv()
		return nil
	case tcell.KeyDown:
		if row < rowCount-1 {
			e.Select(row+1, col)
		}
		return nil
	case tcell.KeyUp:
		if row > 1 {
			e.Select(row-1, col)
		}
		return nil
	}

	return evt
}

func (e *EnvSwitcher) settings() api.EnvSettings {
	if e.app == nil || e.app.Config() == nil {
		return nil
	}
	return e.app.Config().Settings()
}

// loadEnvs loads available environments.
func (e *EnvSwitcher) loadEnvs() {
	e.Clear()

	headers := []string{"", "ENVIRONMENT", "URL", "STATUS"}
	for col, h := range headers {
		cell := tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1)
		e.SetCell(0, col, cell)
	}

	settings := e.settings()
	if settings == nil {
		e.showNoData("No environment settings available")
		return
	}

	if f := e.app.GetFactory(); f != nil {
		e.current = f.Env()
	}

	names, err := settings.EnvNames()
	if err != nil {
		e.showNoData(fmt.Sprintf("Failed to list environments: %v", err))
		return
	}

	e.envs = e.envs[:0]
	for _, name := range names {
		if e.search != "" && !strings.Contains(strings.ToLower(name), e.search) {
			continue
		}
		e.envs = append(e.envs, name)
	}
	if len(e.envs) == 0 {
		e.showNoData("No environments found")
		return
	}

	for i, name := range e.envs {
		row := i + 1

		indicator := ""
		indicatorColor := tcell.ColorDefault
		if name == e.current {
			indicator = "●"
			indicatorColor = tcell.ColorGreen
		}
		indicatorCell := tview.NewTableCell(indicator).
			SetTextColor(indicatorColor).
			SetAlign(tview.AlignCenter).
			SetExpansion(0)
		e.SetCell(row, 0, indicatorCell)

		nameColor := tcell.ColorWhite
		if name == e.current {
			nameColor = tcell.ColorGreen
		}
		nameCell := tview.NewTableCell(name).
			SetTextColor(nameColor).
			SetExpansion(1).
			SetReference(name)
		e.SetCell(row, 1, nameCell)

		url := ""
		if env, err := settings.GetEnv(name); err == nil {
			url = env.URL
		}
		urlCell := tview.NewTableCell(url).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1)
		e.SetCell(row, 2, urlCell)

		status := ""
		if name == e.current {
			status = "active"
		}
		statusCell := tview.NewTableCell(status).
			SetTextColor(tcell.ColorGreen).
			SetExpansion(1)
		e.SetCell(row, 3, statusCell)
	}

	e.SetTitle(fmt.Sprintf(" Environments [%d] ", len(e.envs)))

	if e.GetRowCount() > 1 {
		e.Select(1, 0)
	}
}

// showNoData displays a message when no environments are found.
func (e *EnvSwitcher) showNoData(msg string) {
	cell := tview.NewTableCell(msg).
		SetTextColor(tcell.ColorGray).
		SetAlign(tview.AlignCenter).
		SetSelectable(false)
	e.SetCell(1, 0, cell)
}

// selectEnv switches to the selected environment.
func (e *EnvSwitcher) selectEnv() {
	row, _ := e.GetSelection()
	if row == 0 || row > len(e.envs) {
		return
	}

	env := e.envs[row-1]
	if env == e.current {
		e.app.Flash().Infof("Already using environment: %s", env)
		return
	}

	if err := e.app.SwitchEnv(env); err != nil {
		e.app.Flash().Errf("Failed to switch environment: %v", err)
		return
	}

	e.app.Flash().Infof("Switched to environment: %s", env)
	e.current = env
	e.loadEnvs()
}
