// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package ui

import (
	"github.com/derailed/tcell/v2"
)

// Rune based keys.
const (
	KeyColon = tcell.Key(':')
	KeySlash = tcell.Key('/')
	KeyHelp  = tcell.Key('?')

	KeyA = tcell.Key('a')
	KeyC = tcell.Key('c')
	KeyD = tcell.Key('d')
	KeyE = tcell.Key('e')
	KeyJ = tcell.Key('j')
	KeyN = tcell.Key('n')
	KeyQ = tcell.Key('q')
	KeyR = tcell.Key('r')
	KeyS = tcell.Key('s')
	KeyT = tcell.Key('t')
	KeyW = tcell.Key('w')
	KeyY = tcell.Key('y')

	KeyShiftN = tcell.Key('N')
	KeyShiftP = tcell.Key('P')

	KeyBracketLeft  = tcell.Key('[')
	KeyBracketRight = tcell.Key(']')
	KeySpace        = tcell.Key(' ')
)

// keyNames maps non-rune keys to display names.
var keyNames = map[tcell.Key]string{
	KeySpace:        "space",
	tcell.KeyEnter:  "enter",
	tcell.KeyEsc:    "esc",
	tcell.KeyCtrlD:  "ctrl-d",
	tcell.KeyCtrlR:  "ctrl-r",
	tcell.KeyCtrlS:  "ctrl-s",
	tcell.KeyCtrlU:  "ctrl-u",
	tcell.KeyCtrlE:  "ctrl-e",
	tcell.KeyCtrlN:  "ctrl-n",
	tcell.KeyPgUp:   "pgup",
	tcell.KeyPgDn:   "pgdn",
}

// KeyName returns a displayable name for a key.
func KeyName(key tcell.Key) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	if key >= 32 && key < 127 {
		return string(rune(key))
	}
	return tcell.KeyNames[key]
}
