package dao_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/b9s/b9s/internal/api"
	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/pager"
	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	api.Connection

	listCalls int
	listFn    func(resource string, q api.ListQuery) (*api.PageResult, error)
	getFn     func(resource, id string) (any, error)
	deleted   []string
	actions   []string
}

func (f *fakeConn) ActiveEnv() string { return "test" }

func (f *fakeConn) List(_ context.Context, resource string, q api.ListQuery) (*api.PageResult, error) {
	f.listCalls++
	return f.listFn(resource, q)
}

func (f *fakeConn) Get(_ context.Context, resource, id string, dest any) error {
	v, err := f.getFn(resource, id)
	if err != nil {
		return err
	}
	bb, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(bb, dest)
}

func (f *fakeConn) Delete(_ context.Context, resource, id string) error {
	f.deleted = append(f.deleted, resource+"/"+id)
	return nil
}

func (f *fakeConn) Action(_ context.Context, resource, id, action string, _ any) error {
	f.actions = append(f.actions, resource+"/"+id+"/"+action)
	return nil
}

func pageOf(items []any, total int, paginated bool) *api.PageResult {
	raws := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		bb, _ := json.Marshal(item)
		raws = append(raws, bb)
	}
	res := &api.PageResult{List: raws, TotalCount: total}
	if paginated {
		page := 0
		res.PageDetails = &pager.PageDetails{PageNumber: &page, PaginationEnabled: true}
	}
	return res
}

func TestResourceIDParse(t *testing.T) {
	uu := map[string]struct {
		in  string
		rid dao.ResourceID
		err bool
	}{
		"order":     {in: "sales/order", rid: dao.OrderRID},
		"promo":     {in: "marketing/promocode", rid: dao.PromoCodeRID},
		"no-slash":  {in: "order", err: true},
		"empty":     {in: "", err: true},
		"bare-sect": {in: "sales/", err: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var rid dao.ResourceID
			err := rid.Parse(u.in)
			if u.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, u.rid, rid)
		})
	}
}

func TestAccessorFor(t *testing.T) {
	f := dao.NewFactory(&fakeConn{})

	acc, err := dao.AccessorFor(f, &dao.OrderRID)
	assert.NoError(t, err)
	assert.Equal(t, "sales/order", acc.ResourceID().String())

	_, err = dao.AccessorFor(f, &dao.ResourceID{Section: "fred", Resource: "blee"})
	assert.Error(t, err)
}

func TestOrderList(t *testing.T) {
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	conn := &fakeConn{
		listFn: func(resource string, q api.ListQuery) (*api.PageResult, error) {
			assert.Equal(t, "sales/order", resource)
			return pageOf([]any{
				dao.Order{ID: "ord-1", Number: "A-1001", Status: "shipped", Total: 42.50, Currency: "EUR", CreatedAt: &created},
			}, 57, true), nil
		},
	}
	acc, err := dao.AccessorFor(dao.NewFactory(conn), &dao.OrderRID)
	assert.NoError(t, err)

	page := 0
	resp, err := acc.List(context.Background(), pager.FetchParams{Page: &page, PageSize: 25})
	assert.NoError(t, err)
	assert.Equal(t, 57, resp.TotalCount)
	if assert.Len(t, resp.List, 1) {
		assert.Equal(t, "ord-1", resp.List[0].GetID())
		assert.Equal(t, "A-1001", resp.List[0].GetName())
		assert.Equal(t, "shipped", resp.List[0].GetStatus())
	}
}

func TestListCachesPlainQueries(t *testing.T) {
	conn := &fakeConn{
		listFn: func(string, api.ListQuery) (*api.PageResult, error) {
			return pageOf([]any{dao.Product{ID: "prd-1", Name: "anvil"}}, 1, true), nil
		},
	}
	acc, err := dao.AccessorFor(dao.NewFactory(conn), &dao.ProductRID)
	assert.NoError(t, err)
	prd, ok := acc.(*dao.ProductAccessor)
	assert.True(t, ok)
	prd.SetCache(dao.NewResourceCache(dao.DefaultCacheTTL))

	page := 0
	params := pager.FetchParams{Page: &page, PageSize: 25}
	_, err = prd.List(context.Background(), params)
	assert.NoError(t, err)
	_, err = prd.List(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, 1, conn.listCalls, "plain repeat query must be served from cache")

	// Searches bypass the cache.
	params.SearchKeyword = "anvil"
	_, err = prd.List(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, 2, conn.listCalls)
}

func TestPromoCodeDeleteGuard(t *testing.T) {
	conn := &fakeConn{
		getFn: func(_, id string) (any, error) {
			return dao.PromoCode{ID: id, Code: "SAVE10", UsageCount: 3, Active: true}, nil
		},
	}
	acc, err := dao.AccessorFor(dao.NewFactory(conn), &dao.PromoCodeRID)
	assert.NoError(t, err)
	pc, ok := acc.(*dao.PromoCodeAccessor)
	assert.True(t, ok)

	err = pc.Delete(context.Background(), "pc-1", false)
	assert.Error(t, err)
	assert.Empty(t, conn.deleted)

	assert.NoError(t, pc.Delete(context.Background(), "pc-1", true))
	assert.Equal(t, []string{"marketing/promocode/pc-1"}, conn.deleted)
}

func TestOrderCancel(t *testing.T) {
	conn := &fakeConn{}
	acc, err := dao.AccessorFor(dao.NewFactory(conn), &dao.OrderRID)
	assert.NoError(t, err)
	orders, ok := acc.(*dao.OrderAccessor)
	assert.True(t, ok)

	assert.NoError(t, orders.Cancel(context.Background(), "ord-9"))
	assert.Equal(t, []string{"sales/order/ord-9/cancel"}, conn.actions)
}
