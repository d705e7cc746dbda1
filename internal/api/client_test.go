package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/b9s/b9s/internal/api"
	"github.com/stretchr/testify/assert"
)

type fakeSettings struct {
	envs   map[string]*api.Environment
	active string
}

func (f *fakeSettings) CurrentEnvName() (string, error) { return f.active, nil }

func (f *fakeSettings) EnvNames() ([]string, error) {
	names := make([]string, 0, len(f.envs))
	for name := range f.envs {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeSettings) GetEnv(name string) (*api.Environment, error) {
	env, ok := f.envs[name]
	if !ok {
		return nil, api.ErrInvalidEnv
	}
	return env, nil
}

func (f *fakeSettings) SetActiveEnv(name string) error {
	f.active = name
	return nil
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*api.APIClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	settings := &fakeSettings{
		active: "test",
		envs: map[string]*api.Environment{
			"test": {Name: "test", URL: srv.URL, Token: "sek-123"},
		},
	}
	c, err := api.NewAPIClient(settings, &api.ClientConfig{Env: "test"})
	assert.NoError(t, err)
	return c, srv
}

func TestClientList(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sales/order", r.URL.Path)
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"list":       []map[string]any{{"id": "ord-1"}, {"id": "ord-2"}},
			"totalCount": 57,
			"pageDetails": map[string]any{
				"pageNumber":        0,
				"pageSize":          25,
				"paginationEnabled": true,
			},
		})
	})

	page := 0
	res, err := c.List(context.Background(), "sales/order", api.ListQuery{
		Page:          &page,
		PageSize:      25,
		SearchKeyword: "anvil",
		Filters:       map[string]string{"status": "shipped"},
	})

	assert.NoError(t, err)
	assert.Equal(t, 57, res.TotalCount)
	assert.Len(t, res.List, 2)
	if assert.NotNil(t, res.PageDetails) {
		assert.True(t, res.PageDetails.PaginationEnabled)
		assert.Equal(t, 0, *res.PageDetails.PageNumber)
	}
	assert.Equal(t, "Bearer sek-123", gotAuth)
	assert.Equal(t, []string{"0"}, gotQuery["page"])
	assert.Equal(t, []string{"25"}, gotQuery["pageSize"])
	assert.Equal(t, []string{"anvil"}, gotQuery["search"])
	assert.Equal(t, []string{"shipped"}, gotQuery["filter.status"])
}

func TestClientErrorTaxonomy(t *testing.T) {
	uu := map[string]struct {
		status int
		e      error
	}{
		"unauthorized": {status: http.StatusUnauthorized, e: api.ErrUnauthorized},
		"forbidden":    {status: http.StatusForbidden, e: api.ErrForbidden},
		"not-found":    {status: http.StatusNotFound, e: api.ErrNotFound},
		"rate-limited": {status: http.StatusTooManyRequests, e: api.ErrRateLimited},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(u.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
			})
			_, err := c.List(context.Background(), "catalog/product", api.ListQuery{})
			assert.ErrorIs(t, err, u.e)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestClientHealthProbe(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": "2.4.1"})
	})

	assert.False(t, c.ConnectionOK())
	assert.True(t, c.CheckConnectivity())
	assert.True(t, c.ConnectionOK())
	assert.Equal(t, "2.4.1", c.ServerVersion())
}

func TestClientSwitchEnv(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	assert.True(t, c.CheckConnectivity())

	assert.Error(t, c.SwitchEnv("bozo"))
	assert.Equal(t, "test", c.ActiveEnv())

	assert.NoError(t, c.SwitchEnv("test"))
	assert.False(t, c.ConnectionOK(), "switching drops connection state")
}

func TestClientAction(t *testing.T) {
	var gotPath, gotMethod string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.Action(context.Background(), "sales/order", "ord-1", "cancel", nil)

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/sales/order/ord-1/cancel", gotPath)
}

func TestClientGetUpdateDelete(t *testing.T) {
	store := map[string]map[string]any{
		"prd-1": {"id": "prd-1", "name": "anvil", "price": 19.99},
	}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(store["prd-1"])
		case http.MethodPut:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			store["prd-1"] = body
			_ = json.NewEncoder(w).Encode(body)
		case http.MethodDelete:
			delete(store, "prd-1")
			w.WriteHeader(http.StatusNoContent)
		}
	})

	var product map[string]any
	assert.NoError(t, c.Get(context.Background(), "catalog/product", "prd-1", &product))
	assert.Equal(t, "anvil", product["name"])

	product["name"] = "hammer"
	var updated map[string]any
	assert.NoError(t, c.Update(context.Background(), "catalog/product", "prd-1", product, &updated))
	assert.Equal(t, "hammer", updated["name"])

	assert.NoError(t, c.Delete(context.Background(), "catalog/product", "prd-1"))
	assert.Empty(t, store)
}
