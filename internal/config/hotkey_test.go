package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b9s/b9s/internal/config"
)

func TestHotKeysRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.yaml")

	hk := config.NewHotKeys()
	hk.Set("orders", config.HotKey{
		ShortCut:    "F1",
		Description: "Jump to orders",
		Command:     "sales/order",
	})
	hk.Set("drafts", config.HotKey{
		ShortCut:    "F2",
		Description: "Draft notifications",
		Command:     "comms/notification",
		Override:    true,
	})
	require.NoError(t, hk.SaveTo(path))

	loaded := config.NewHotKeys()
	require.NoError(t, loaded.LoadFrom(path))

	assert.ElementsMatch(t, []string{"drafts", "orders"}, loaded.Names())
	got := loaded.Get("orders")
	require.NotNil(t, got)
	assert.Equal(t, "sales/order", got.Command)
}

func TestHotKeysLoadMissingFile(t *testing.T) {
	hk := config.NewHotKeys()
	require.NoError(t, hk.LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Empty(t, hk.Names())
}

func TestHotKeysFindByShortCut(t *testing.T) {
	hk := config.NewHotKeys()
	hk.Set("promos", config.HotKey{ShortCut: "F3", Command: "marketing/promocode"})

	uu := map[string]struct {
		shortCut string
		want     string
	}{
		"hit":  {shortCut: "F3", want: "marketing/promocode"},
		"miss": {shortCut: "F9"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			got := hk.FindByShortCut(u.shortCut)
			if u.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, u.want, got.Command)
		})
	}
}

func TestHotKeysMerge(t *testing.T) {
	base := config.NewHotKeys()
	base.Set("orders", config.HotKey{ShortCut: "F1", Command: "sales/order"})

	other := config.NewHotKeys()
	other.Set("orders", config.HotKey{ShortCut: "F5", Command: "sales/order"})
	other.Set("products", config.HotKey{ShortCut: "F2", Command: "catalog/product"})

	base.Merge(other)

	got := base.Get("orders")
	require.NotNil(t, got)
	assert.Equal(t, "F5", got.ShortCut)
	assert.Len(t, base.Names(), 2)
}
