package pager_test

import (
	"context"
	"testing"

	"github.com/b9s/b9s/internal/pager"
	"github.com/stretchr/testify/assert"
)

func TestSearchMatchesNumericFields(t *testing.T) {
	items := []widget{
		{Name: "alpha", Price: 19.99},
		{Name: "beta", Price: 5},
	}
	be := &fakeBackend{fn: func(_ int, _ context.Context, _ pager.FetchParams) (*pager.Response[widget], error) {
		return &pager.Response[widget]{List: items, TotalCount: len(items)}, nil
	}}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true, SearchDebounce: 10})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	c.SetSearchKeyword("19.99")
	rec.waitChanged(t)
	if assert.Len(t, c.Rows(), 1) {
		assert.Equal(t, "alpha", c.Rows()[0].Name)
	}

	c.SetSearchKeyword("ALPHA")
	rec.waitChanged(t)
	assert.Len(t, c.Rows(), 1, "search is case-insensitive")
}

func TestSearchTextOverride(t *testing.T) {
	items := []widget{{Name: "alpha"}, {Name: "beta"}}
	be := &fakeBackend{fn: func(_ int, _ context.Context, _ pager.FetchParams) (*pager.Response[widget], error) {
		return &pager.Response[widget]{List: items, TotalCount: len(items)}, nil
	}}
	c := pager.NewController(pager.Config[widget]{
		Fetch:          be.fetch,
		Enabled:        true,
		SearchDebounce: 10,
		SearchText: func(w widget) []string {
			if w.Name == "beta" {
				return []string{"special"}
			}
			return []string{w.Name}
		},
	})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	c.SetSearchKeyword("special")
	rec.waitChanged(t)
	if assert.Len(t, c.Rows(), 1) {
		assert.Equal(t, "beta", c.Rows()[0].Name)
	}
}
