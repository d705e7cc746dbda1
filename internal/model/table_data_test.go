package model_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/b9s/b9s/internal/api"
	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/model"
	"github.com/b9s/b9s/internal/model1"
	"github.com/b9s/b9s/internal/pager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFactory struct {
	env string
}

func (f *fakeFactory) Client() api.Connection { return nil }
func (f *fakeFactory) Env() string            { return f.env }
func (f *fakeFactory) SetEnv(string) error    { return nil }

type fakeAccessor struct {
	rid       *dao.ResourceID
	listCalls int
	listFn    func(pager.FetchParams) (*pager.Response[dao.Object], error)
}

func (f *fakeAccessor) Init(_ dao.Factory, rid *dao.ResourceID) { f.rid = rid }
func (f *fakeAccessor) ResourceID() *dao.ResourceID             { return f.rid }

func (f *fakeAccessor) Get(context.Context, string) (dao.Object, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAccessor) List(_ context.Context, p pager.FetchParams) (*pager.Response[dao.Object], error) {
	f.listCalls++
	return f.listFn(p)
}

type captureListener struct {
	changed int
	noData  int
	failed  []error
}

func (c *captureListener) TableDataChanged(*model1.TableData) { c.changed++ }
func (c *captureListener) TableNoData(*model1.TableData)      { c.noData++ }
func (c *captureListener) TableLoadFailed(err error)          { c.failed = append(c.failed, err) }

func orderObjects(n int) []dao.Object {
	now := time.Now()
	oo := make([]dao.Object, 0, n)
	for i := 0; i < n; i++ {
		o := dao.Order{
			ID:        fmt.Sprintf("ord-%d", i+1),
			Number:    fmt.Sprintf("SO-%03d", i+1),
			Status:    "paid",
			Total:     10.5,
			Currency:  "USD",
			ItemCount: 2,
			CreatedAt: &now,
		}
		oo = append(oo, &dao.BaseObject{
			ID:        o.ID,
			Name:      o.Number,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
			Raw:       o,
		})
	}
	return oo
}

func newOrderModel(t *testing.T, acc *fakeAccessor) (*model.TableData, *captureListener) {
	t.Helper()

	m := model.NewTableData(&dao.OrderRID, &fakeFactory{env: "staging"}, time.Hour, 10, 10)
	m.SetAccessor(acc)

	renderer, err := model.RendererFor(&dao.OrderRID)
	require.NoError(t, err)
	m.SetRenderer(renderer)

	l := &captureListener{}
	m.AddListener(l)

	return m, l
}

func TestTableDataServerPaginated(t *testing.T) {
	page0 := 0
	size := 10
	acc := &fakeAccessor{
		listFn: func(p pager.FetchParams) (*pager.Response[dao.Object], error) {
			return &pager.Response[dao.Object]{
				List:       orderObjects(2),
				TotalCount: 42,
				PageDetails: &pager.PageDetails{
					PageNumber:        &page0,
					PageSize:          &size,
					PaginationEnabled: true,
				},
			}, nil
		},
	}
	m, l := newOrderModel(t, acc)

	require.NoError(t, m.Refresh(context.Background()))

	assert.True(t, m.ServerPaginated())
	assert.Equal(t, 42, m.TotalCount())
	assert.Equal(t, 2, m.RowCount())
	assert.Equal(t, 1, l.changed)
	assert.Empty(t, l.failed)

	data := m.Peek()
	require.NotNil(t, data)
	assert.Equal(t, "staging", data.Env())
	assert.True(t, data.Paginated())
	assert.Equal(t, 42, data.TotalCount())
	assert.NotEmpty(t, data.Header())

	re, ok := data.RowEvents().Get("ord-1")
	require.True(t, ok)
	assert.Equal(t, "SO-001", re.Row.Fields[0])
}

func TestTableDataClientPaging(t *testing.T) {
	acc := &fakeAccessor{
		listFn: func(p pager.FetchParams) (*pager.Response[dao.Object], error) {
			return &pager.Response[dao.Object]{
				List:        orderObjects(3),
				TotalCount:  3,
				PageDetails: &pager.PageDetails{PaginationEnabled: false},
			}, nil
		},
	}
	m, _ := newOrderModel(t, acc)

	require.NoError(t, m.Refresh(context.Background()))
	assert.False(t, m.ServerPaginated())
	calls := acc.listCalls

	// Page turns are purely visual when the backend does not paginate.
	m.NextPage()
	assert.Equal(t, 1, m.PageModel().Page)
	assert.Equal(t, calls, acc.listCalls)

	m.PrevPage()
	assert.Equal(t, 0, m.PageModel().Page)
	m.PrevPage()
	assert.Equal(t, 0, m.PageModel().Page)
}

func TestTableDataLoadFailure(t *testing.T) {
	acc := &fakeAccessor{
		listFn: func(p pager.FetchParams) (*pager.Response[dao.Object], error) {
			return nil, fmt.Errorf("boom")
		},
	}
	m, l := newOrderModel(t, acc)

	require.NoError(t, m.Refresh(context.Background()))

	require.Len(t, l.failed, 1)
	assert.ErrorContains(t, l.failed[0], "boom")
	assert.True(t, m.Peek().HasError())

	// The error clears as soon as a fetch succeeds again.
	acc.listFn = func(p pager.FetchParams) (*pager.Response[dao.Object], error) {
		return &pager.Response[dao.Object]{
			List:        orderObjects(1),
			TotalCount:  1,
			PageDetails: &pager.PageDetails{PaginationEnabled: false},
		}, nil
	}
	require.NoError(t, m.Refresh(context.Background()))
	assert.False(t, m.Peek().HasError())
	assert.Equal(t, 1, m.RowCount())
}

func TestTableDataSteadyRefreshSkipsNotify(t *testing.T) {
	oo := orderObjects(2)
	acc := &fakeAccessor{
		listFn: func(p pager.FetchParams) (*pager.Response[dao.Object], error) {
			return &pager.Response[dao.Object]{
				List:        oo,
				TotalCount:  len(oo),
				PageDetails: &pager.PageDetails{PaginationEnabled: false},
			}, nil
		},
	}
	m, l := newOrderModel(t, acc)

	require.NoError(t, m.Refresh(context.Background()))
	require.NoError(t, m.Refresh(context.Background()))

	assert.Equal(t, 2, acc.listCalls)
	assert.Equal(t, 1, l.changed)
}

func TestTableDataNoDataAfterData(t *testing.T) {
	empty := false
	acc := &fakeAccessor{}
	acc.listFn = func(p pager.FetchParams) (*pager.Response[dao.Object], error) {
		list := orderObjects(2)
		if empty {
			list = nil
		}
		return &pager.Response[dao.Object]{
			List:        list,
			TotalCount:  len(list),
			PageDetails: &pager.PageDetails{PaginationEnabled: false},
		}, nil
	}
	m, l := newOrderModel(t, acc)

	require.NoError(t, m.Refresh(context.Background()))
	assert.Equal(t, 1, l.changed)
	assert.Zero(t, l.noData)

	empty = true
	require.NoError(t, m.Refresh(context.Background()))
	assert.Equal(t, 1, l.noData)
	assert.True(t, m.Empty())
}
