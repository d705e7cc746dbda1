package ui_test

import (
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/ui"
)

var orderRID = dao.OrderRID

func noopHandler(evt *tcell.EventKey) *tcell.EventKey { return evt }

func TestKeyActions(t *testing.T) {
	aa := ui.NewKeyActions()
	aa.Bulk(ui.KeyMap{
		ui.KeySlash:    ui.NewKeyAction("Search", noopHandler, true),
		tcell.KeyCtrlS: ui.NewKeyAction("Sort", noopHandler, true),
		tcell.KeyEsc:   ui.NewKeyAction("Back", noopHandler, false),
	})

	assert.Equal(t, 3, aa.Len())

	a, ok := aa.Get(ui.KeySlash)
	assert.True(t, ok)
	assert.Equal(t, "Search", a.Description)

	hints := aa.Hints()
	assert.Len(t, hints, 2, "hidden actions do not produce hints")

	aa.Delete(ui.KeySlash)
	_, ok = aa.Get(ui.KeySlash)
	assert.False(t, ok)
}

func TestKeyName(t *testing.T) {
	uu := map[string]struct {
		key tcell.Key
		e   string
	}{
		"rune":  {key: ui.KeyS, e: "s"},
		"slash": {key: ui.KeySlash, e: "/"},
		"ctrl":  {key: tcell.KeyCtrlS, e: "ctrl-s"},
		"enter": {key: tcell.KeyEnter, e: "enter"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, ui.KeyName(u.key))
		})
	}
}

func TestActionRegistry(t *testing.T) {
	actions := ui.GetActions(&orderRID)
	assert.NotEmpty(t, actions)

	a := ui.GetAction(&orderRID, ui.KeyC)
	assert.NotNil(t, a)
	assert.Equal(t, "Cancel", a.Name)
	assert.True(t, a.Dangerous)

	assert.Nil(t, ui.GetAction(&orderRID, ui.KeyQ))
	assert.Nil(t, ui.GetActions(nil))
}
