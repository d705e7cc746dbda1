// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package view

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/b9s/b9s/internal/config"
	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/logging"
)

// Command interprets and routes user commands to views.
type Command struct {
	app     *App
	aliases *config.Aliases
}

// NewCommand creates a new command interpreter.
func NewCommand(app *App) *Command {
	return &Command{
		app:     app,
		aliases: config.NewAliases(),
	}
}

// Init loads user aliases on top of the defaults.
func (c *Command) Init() error {
	if err := c.aliases.Load(); err != nil {
		logging.Log.Warnf("aliases load failed: %v", err)
	}
	return nil
}

// Aliases returns the alias table.
func (c *Command) Aliases() *config.Aliases {
	return c.aliases
}

// Suggestions returns every runnable command for prompt completion.
func (c *Command) Suggestions() []string {
	cmds := []string{"env", "help", "quit"}
	for _, rid := range dao.AllResourceIDs {
		cmds = append(cmds, rid.String())
	}
	for alias := range c.aliases.All() {
		cmds = append(cmds, alias)
	}
	sort.Strings(cmds)

	return cmds
}

// Run interprets and executes a command string.
func (c *Command) Run(cmd string) error {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	if cmd == "" {
		cmd = c.defaultView()
	}

	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}

	name, args := fields[0], fields[1:]
	if target := c.aliases.Get(name); target != "" {
		name = target
	}

	switch name {
	case "env":
		return c.envCmd(args)
	case "help":
		c.app.showHelp()
		return nil
	case "quit", "q":
		c.app.Stop()
		return nil
	default:
		return c.resourceCmd(name)
	}
}

// defaultView picks the startup view: CLI override, then the view saved
// for the active environment, then the configured default.
func (c *Command) defaultView() string {
	if v := c.app.StartupView(); v != "" {
		return v
	}

	cfg := c.app.Config()
	if cfg == nil || cfg.B9s == nil {
		return config.DefaultView
	}

	if ac := cfg.B9s.ActiveConfig(); ac != nil {
		if envCtx := ac.GetContext(); envCtx != nil {
			if v := envCtx.ActiveView(); v != "" {
				return v
			}
		}
	}

	if cfg.B9s.DefaultView != "" {
		return cfg.B9s.DefaultView
	}
	return config.DefaultView
}

// envCmd switches environments directly or shows the environment picker.
func (c *Command) envCmd(args []string) error {
	if len(args) > 0 {
		env := args[0]
		if err := c.app.SwitchEnv(env); err != nil {
			return err
		}
		c.app.Flash().Infof("Switched to environment: %s", env)
		c.app.RefreshCurrentView()
		return nil
	}

	e := NewEnvSwitcher(c.app)
	if err := e.Init(context.Background()); err != nil {
		return err
	}

	c.app.Content.Push(e)
	c.app.SetFocus(e)
	e.Start()

	return nil
}

// resourceCmd opens a browser for a resource like "sales/order".
func (c *Command) resourceCmd(name string) error {
	var rid dao.ResourceID
	if err := rid.Parse(name); err != nil {
		return fmt.Errorf("unknown command: %s", name)
	}

	browser := NewBrowser(&rid)
	browser.SetApp(c.app)
	browser.SetFactory(c.app.GetFactory())

	if err := browser.Init(context.Background()); err != nil {
		return fmt.Errorf("failed to open %s: %w", rid.String(), err)
	}

	c.app.Content.Push(browser)
	c.app.SetFocus(browser)
	browser.Start()

	if cfg := c.app.Config(); cfg != nil && cfg.B9s != nil {
		if err := cfg.B9s.RecordView(name); err != nil {
			logging.Log.Warnf("view save failed: %v", err)
		}
	}

	return nil
}
