// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package ui

import (
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
)

// ActionHandler handles a keyboard event.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
}

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, visible bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: visible}
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// KeyActions tracks mappings between keystrokes and actions.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns a new instance.
func NewKeyActions() *KeyActions {
	return &KeyActions{
		actions: make(KeyMap),
	}
}

// Add adds a new key action.
func (a *KeyActions) Add(key tcell.Key, action KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions[key] = action
}

// Bulk adds a collection of key actions.
func (a *KeyActions) Bulk(kk KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range kk {
		a.actions[k] = v
	}
}

// Get returns the action for a given key.
func (a *KeyActions) Get(key tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	action, ok := a.actions[key]
	return action, ok
}

// Delete removes actions for the given keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Clear removes all actions.
func (a *KeyActions) Clear() {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions = make(KeyMap)
}

// Len returns the number of actions.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return len(a.actions)
}

// Hints returns menu hints for all visible actions.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	hints := make(MenuHints, 0, len(a.actions))
	for key, action := range a.actions {
		if !action.Visible {
			continue
		}
		hints = append(hints, MenuHint{
			Mnemonic:    KeyName(key),
			Description: action.Description,
			Visible:     true,
		})
	}
	sort.Sort(hints)

	return hints
}
