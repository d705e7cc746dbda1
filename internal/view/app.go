// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package view

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/b9s/b9s/internal/config"
	"github.com/b9s/b9s/internal/config/data"
	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/logging"
	"github.com/b9s/b9s/internal/ui"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	// FlashDelay sets the flash auto-clear delay.
	FlashDelay = 5 * time.Second
)

// FlashLevel represents flash message severity.
type FlashLevel int

const (
	// FlashInfo represents an info message.
	FlashInfo FlashLevel = iota
	// FlashWarn represents a warning message.
	FlashWarn
	// FlashErr represents an error message.
	FlashErr
)

// Flash handles flash messages in the application.
type Flash struct {
	*tview.TextView
	app    *App
	cancel context.CancelFunc
	mx     sync.RWMutex
}

// NewFlash creates a new Flash instance.
func NewFlash(app *App) *Flash {
	f := &Flash{
		TextView: tview.NewTextView(),
		app:      app,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	return f
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.setMessage(FlashInfo, msg)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...interface{}) {
	f.Info(fmt.Sprintf(format, args...))
}

// Warn displays a warning message.
func (f *Flash) Warn(msg string) {
	f.setMessage(FlashWarn, msg)
}

// Warnf displays a formatted warning message.
func (f *Flash) Warnf(format string, args ...interface{}) {
	f.Warn(fmt.Sprintf(format, args...))
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.setMessage(FlashErr, err.Error())
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...interface{}) {
	f.setMessage(FlashErr, fmt.Sprintf(format, args...))
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	if f.app != nil {
		f.app.QueueUpdateDraw(func() {
			f.TextView.Clear()
		})
	} else {
		f.TextView.Clear()
	}
}

func (f *Flash) setMessage(level FlashLevel, msg string) {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	if msg == "" {
		f.Clear()
		return
	}

	updateFn := func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(level))
		fmt.Fprintf(f.TextView, "%s %s", flashPrefix(level), msg)
	}

	if f.app != nil {
		f.app.QueueUpdateDraw(updateFn)
	} else {
		updateFn()
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	f.cancel = cancel
	f.mx.Unlock()

	go f.autoClear(ctx)
}

func (f *Flash) autoClear(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(FlashDelay):
		f.Clear()
	}
}

func flashColor(level FlashLevel) tcell.Color {
	switch level {
	case FlashWarn:
		return tcell.ColorYellow
	case FlashErr:
		return tcell.ColorRed
	default:
		return tcell.ColorGreen
	}
}

func flashPrefix(level FlashLevel) string {
	switch level {
	case FlashWarn:
		return "[WARN]"
	case FlashErr:
		return "[ERROR]"
	default:
		return "[INFO]"
	}
}

// PageStack is a type alias for the view stack.
type PageStack = ui.Pages

// App represents the main application container.
type App struct {
	*tview.Application
	version   string
	cfg       *config.Config
	Main      *tview.Pages
	Content   *PageStack
	command   *Command
	factory   dao.Factory
	hotkeys   *config.HotKeys
	startView string
	cmdBar    *ui.CmdBar
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	flash     *Flash
	help      *Help
	running   bool
	mx        sync.RWMutex
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, version string) *App {
	app := &App{
		Application: tview.NewApplication(),
		version:     version,
		cfg:         cfg,
		Main:        tview.NewPages(),
		Content:     ui.NewPages(),
	}

	app.flash = NewFlash(app)
	app.menu = ui.NewMenu()
	app.crumbs = ui.NewCrumbs()
	app.cmdBar = ui.NewCmdBar()
	app.help = NewHelp()

	app.Content.AddListener(app.menu)
	app.Content.AddListener(app.crumbs)

	app.Application.SetInputCapture(app.keyboard)

	app.cmdBar.SetActiveFn(func(active bool) {
		if active {
			app.SetFocus(app.cmdBar)
		} else {
			app.SetFocus(app.Content)
		}
	})

	app.cmdBar.SetCommandFn(func(cmd string) {
		if err := app.command.Run(cmd); err != nil {
			app.flash.Errf("Command error: %v", err)
		}
	})

	app.cmdBar.SetSearchFn(func(text string) {
		app.applySearch(text)
	})

	app.cmdBar.SetCancelFn(func() {
		app.applySearch("")
	})

	return app
}

// Init initializes and builds the application layout.
func (a *App) Init() error {
	a.command = NewCommand(a)
	if err := a.command.Init(); err != nil {
		return fmt.Errorf("failed to initialize command: %w", err)
	}
	a.cmdBar.SetCommands(a.command.Suggestions())

	a.hotkeys = config.NewHotKeys()
	if err := a.hotkeys.Load(); err != nil {
		logging.Log.Warnf("hotkeys load failed: %v", err)
	}

	a.loadSkin()
	if a.cfg != nil && a.cfg.B9s != nil && a.cfg.B9s.UI.EnableMouse {
		a.EnableMouse(true)
	}

	layout := a.buildLayout()
	a.Main.AddPage("main", layout, true, true)
	a.SetRoot(a.Main, true)
	a.SetFocus(a.Content)

	return nil
}

// Run starts the application.
func (a *App) Run() error {
	a.mx.Lock()
	a.running = true
	a.mx.Unlock()

	if err := a.command.Run(""); err != nil {
		a.flash.Errf("Failed to run default command: %v", err)
	}

	return a.Application.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.running = false
	a.Application.Stop()
}

// IsRunning returns whether the application is currently running.
func (a *App) IsRunning() bool {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.running
}

// Flash returns the flash message handler.
func (a *App) Flash() *Flash {
	return a.flash
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// GetFactory returns the resource factory.
func (a *App) GetFactory() dao.Factory {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return a.factory
}

// SetFactory sets the resource factory.
func (a *App) SetFactory(f dao.Factory) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.factory = f
}

// SetStartupView sets the view opened on launch, overriding saved state.
func (a *App) SetStartupView(view string) {
	a.startView = view
}

// StartupView returns the CLI requested startup view, if any.
func (a *App) StartupView() string {
	return a.startView
}

// SwitchEnv switches to a different backend environment.
func (a *App) SwitchEnv(env string) error {
	a.mx.Lock()
	defer a.mx.Unlock()

	if a.factory == nil {
		return fmt.Errorf("factory not initialized")
	}

	if err := a.factory.SetEnv(env); err != nil {
		return fmt.Errorf("failed to switch environment: %w", err)
	}

	if client := a.factory.Client(); client != nil {
		if !client.CheckConnectivity() {
			return fmt.Errorf("failed to connect to environment: %s", env)
		}
	}

	if a.cfg != nil && a.cfg.B9s != nil {
		if _, err := a.cfg.B9s.ActivateEnv(env); err != nil {
			return err
		}
	}

	return nil
}

// QueueUpdateDraw queues a function to be executed on the UI thread.
func (a *App) QueueUpdateDraw(fn func()) {
	go a.Application.QueueUpdateDraw(fn)
}

// ClearStatus clears status messages.
func (a *App) ClearStatus() {
	a.flash.Clear()
}

// SetEnvInfo announces the active environment in the flash bar.
func (a *App) SetEnvInfo(env, url string) {
	a.flash.Infof("Environment: %s | %s", env, url)
}

// loadSkin applies the skin configured for the active env, if any.
func (a *App) loadSkin() {
	if a.cfg == nil || a.cfg.B9s == nil {
		return
	}

	skin := a.cfg.B9s.UI.Skin
	if ac := a.cfg.B9s.ActiveConfig(); ac != nil {
		if envCtx := ac.GetContext(); envCtx != nil && envCtx.Skin != "" {
			skin = envCtx.Skin
		}
	}
	if skin == "" {
		return
	}

	styles := config.NewStyles()
	if err := styles.Load(filepath.Join(config.AppSkinsDir, skin+".yaml")); err != nil {
		logging.Log.Warnf("skin %q load failed: %v", skin, err)
		return
	}
	styles.Apply()
}

// buildLayout creates the main UI layout.
func (a *App) buildLayout() *tview.Flex {
	var uiCfg data.UI
	if a.cfg != nil && a.cfg.B9s != nil {
		uiCfg = a.cfg.B9s.UI
	}

	bottomBar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.flash, 1, 0, false)
	rows := 1
	if !uiCfg.Crumbsless {
		bottomBar.AddItem(a.crumbs, 1, 0, false)
		rows++
	}
	if !uiCfg.Headless {
		bottomBar.AddItem(a.menu, 1, 0, false)
		rows++
	}

	main := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.cmdBar, 3, 0, false).
		AddItem(a.Content, 0, 1, true).
		AddItem(bottomBar, rows, 0, false)

	return main
}

// keyboard handles global keyboard events.
func (a *App) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if name, _ := a.Content.GetFrontPage(); name == "help" {
		return evt
	}

	if a.cmdBar.IsActive() {
		return evt
	}

	// Let an active inline search consume everything, Esc included.
	if top := a.Content.Top(); top != nil {
		if s, ok := top.(interface{ SearchActive() bool }); ok && s.SearchActive() {
			return evt
		}
	}

	key := evt.Key()
	if key == tcell.KeyRune {
		switch evt.Rune() {
		case ':':
			a.cmdBar.Activate(ui.ModeCommand)
			return nil
		case '/':
			if top := a.Content.Top(); top != nil {
				if s, ok := top.(interface{ ActivateSearch() }); ok {
					s.ActivateSearch()
					return nil
				}
			}
			a.cmdBar.Activate(ui.ModeFilter)
			return nil
		case '?':
			a.showHelp()
			return nil
		case 'q':
			a.Stop()
			return nil
		}
	}

	switch key {
	case tcell.KeyCtrlC:
		a.Stop()
		return nil
	case tcell.KeyEsc:
		if top := a.Content.Top(); top != nil {
			if s, ok := top.(interface{ ClearSearch() bool }); ok && s.ClearSearch() {
				return nil
			}
		}
		if a.cmdBar.GetSearchText() != "" {
			a.cmdBar.ClearSearch()
			a.applySearch("")
		} else {
			a.handleEscape()
		}
		return nil
	}

	if hk := a.hotKeyFor(evt); hk != nil {
		if err := a.command.Run(hk.Command); err != nil {
			a.flash.Errf("Hotkey %q failed: %v", hk.ShortCut, err)
		}
		return nil
	}

	return evt
}

// hotKeyFor resolves a user defined hotkey for the event. Keys the current
// view already binds win unless the hotkey sets override.
func (a *App) hotKeyFor(evt *tcell.EventKey) *config.HotKey {
	if a.hotkeys == nil {
		return nil
	}

	key, name := evt.Key(), ""
	if key == tcell.KeyRune {
		key = tcell.Key(evt.Rune())
		name = string(evt.Rune())
	} else {
		name = ui.KeyName(key)
	}

	hk := a.hotkeys.FindByShortCut(name)
	if hk == nil {
		return nil
	}

	if top := a.Content.Top(); top != nil && !hk.Override {
		if v, ok := top.(interface{ Actions() *ui.KeyActions }); ok {
			if _, bound := v.Actions().Get(key); bound {
				return nil
			}
		}
	}

	return hk
}

// applySearch pushes search text to the current view. The model debounces
// before any backend round trip, so this is safe on every keystroke.
func (a *App) applySearch(text string) {
	if a.Content == nil {
		return
	}

	top := a.Content.Top()
	if top == nil {
		return
	}

	if searchable, ok := top.(interface{ SetSearch(string) }); ok {
		searchable.SetSearch(text)
	}
}

// showHelp displays the help screen in the content area.
func (a *App) showHelp() {
	a.help.SetCloseFn(func() {
		a.Content.RemovePage("help")
		if top := a.Content.Top(); top != nil {
			a.Content.SwitchToPage(top.Name())
		}
		a.SetFocus(a.Content)
	})

	a.Content.AddPage("help", a.help, true, true)
	a.SetFocus(a.help)
}

// RefreshCurrentView reloads data for the current view.
func (a *App) RefreshCurrentView() {
	if a.Content == nil {
		return
	}

	top := a.Content.Top()
	if top == nil {
		return
	}

	a.flash.Info("Refreshing...")
	top.Start()
}

// handleEscape handles the Escape key (go back/cancel). Pop stops the
// outgoing view; the revealed one restarts its watch.
func (a *App) handleEscape() {
	if a.Content.StackSize() <= 1 {
		return
	}

	a.Content.Pop()
	if top := a.Content.Top(); top != nil {
		top.Start()
	}
	a.SetFocus(a.Content)
}
