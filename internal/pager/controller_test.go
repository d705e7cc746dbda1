package pager_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/b9s/b9s/internal/pager"
	"github.com/stretchr/testify/assert"
)

type widget struct {
	Name  string
	Price float64
}

func makeWidgets(n int) []widget {
	ww := make([]widget, 0, n)
	for i := 0; i < n; i++ {
		ww = append(ww, widget{Name: fmt.Sprintf("widget-%02d", i), Price: float64(i) + 0.99})
	}
	return ww
}

type fakeBackend struct {
	mx    sync.Mutex
	calls []pager.FetchParams
	fn    func(call int, ctx context.Context, p pager.FetchParams) (*pager.Response[widget], error)
}

func (f *fakeBackend) fetch(ctx context.Context, p pager.FetchParams) (*pager.Response[widget], error) {
	f.mx.Lock()
	f.calls = append(f.calls, p)
	call := len(f.calls)
	fn := f.fn
	f.mx.Unlock()
	return fn(call, ctx, p)
}

func (f *fakeBackend) callCount() int {
	f.mx.Lock()
	defer f.mx.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) call(i int) pager.FetchParams {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.calls[i]
}

type recorder struct {
	changed chan struct{}
	failed  chan error
}

func newRecorder() *recorder {
	return &recorder{
		changed: make(chan struct{}, 16),
		failed:  make(chan error, 16),
	}
}

func (r *recorder) PagerDataChanged(_ []widget, _ int) {
	r.changed <- struct{}{}
}

func (r *recorder) PagerLoadFailed(err error) {
	r.failed <- err
}

func (r *recorder) waitChanged(t *testing.T) {
	t.Helper()
	select {
	case <-r.changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for data change")
	}
}

func (r *recorder) waitFailed(t *testing.T) error {
	t.Helper()
	select {
	case err := <-r.failed:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for load failure")
		return nil
	}
}

func intPtr(i int) *int { return &i }

func serverPage(all []widget, p pager.FetchParams) *pager.Response[widget] {
	page, size := 0, p.PageSize
	if p.Page != nil {
		page = *p.Page
	}
	lo := page * size
	if lo > len(all) {
		lo = len(all)
	}
	hi := lo + size
	if hi > len(all) {
		hi = len(all)
	}
	return &pager.Response[widget]{
		List:       all[lo:hi],
		TotalCount: len(all),
		PageDetails: &pager.PageDetails{
			PageNumber:        intPtr(page),
			PageSize:          intPtr(size),
			PaginationEnabled: true,
		},
	}
}

func TestControllerServerMode(t *testing.T) {
	all := makeWidgets(57)
	be := &fakeBackend{fn: func(_ int, _ context.Context, p pager.FetchParams) (*pager.Response[widget], error) {
		return serverPage(all, p), nil
	}}
	c := pager.NewController(pager.Config[widget]{
		Fetch:    be.fetch,
		Enabled:  true,
		PageSize: 25,
	})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	assert.True(t, c.ServerPaginated())
	assert.Equal(t, 25, len(c.Rows()))
	assert.Equal(t, 57, c.TotalCount())
	assert.Equal(t, "widget-00", c.Rows()[0].Name)
	if assert.Equal(t, 1, be.callCount()) {
		assert.Equal(t, 0, *be.call(0).Page)
	}
}

func TestControllerServerPageTurnKeepsTotal(t *testing.T) {
	all := makeWidgets(57)
	be := &fakeBackend{fn: func(_ int, _ context.Context, p pager.FetchParams) (*pager.Response[widget], error) {
		return serverPage(all, p), nil
	}}
	c := pager.NewController(pager.Config[widget]{
		Fetch:    be.fetch,
		Enabled:  true,
		PageSize: 25,
	})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	c.SetPageModel(2, 25)
	rec.waitChanged(t)

	assert.Equal(t, 7, len(c.Rows()))
	assert.Equal(t, "widget-50", c.Rows()[0].Name)
	assert.Equal(t, 57, c.TotalCount())
	if assert.Equal(t, 2, be.callCount()) {
		assert.Equal(t, 2, *be.call(1).Page)
	}
}

func TestControllerClientMode(t *testing.T) {
	all := makeWidgets(40)
	be := &fakeBackend{fn: func(_ int, _ context.Context, _ pager.FetchParams) (*pager.Response[widget], error) {
		return &pager.Response[widget]{List: all, TotalCount: len(all)}, nil
	}}
	c := pager.NewController(pager.Config[widget]{
		Fetch:          be.fetch,
		Enabled:        true,
		SearchDebounce: 10,
	})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	assert.False(t, c.ServerPaginated())
	assert.Equal(t, 40, len(c.Rows()))
	assert.Equal(t, 40, c.TotalCount())

	c.SetSearchKeyword("widget-1")
	rec.waitChanged(t)

	assert.Equal(t, 10, len(c.Rows()))
	assert.Equal(t, 10, c.TotalCount())
	assert.Equal(t, 1, be.callCount(), "client-mode search must not hit the backend")

	c.SetSearchKeyword("")
	rec.waitChanged(t)

	assert.Equal(t, 40, len(c.Rows()))
	assert.Equal(t, 40, c.TotalCount())
	assert.Equal(t, 1, be.callCount())
}

func TestControllerClientModePagingIsLocal(t *testing.T) {
	all := makeWidgets(40)
	be := &fakeBackend{fn: func(_ int, _ context.Context, _ pager.FetchParams) (*pager.Response[widget], error) {
		return &pager.Response[widget]{List: all, TotalCount: len(all)}, nil
	}}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	c.SetPageModel(3, 10)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, be.callCount())
	assert.Equal(t, 40, len(c.Rows()))
	assert.Equal(t, pager.PageModel{Page: 3, PageSize: 10}, c.PageModel())
}

func TestControllerPreemption(t *testing.T) {
	all := makeWidgets(10)
	release := make(chan struct{})
	be := &fakeBackend{}
	be.fn = func(call int, ctx context.Context, p pager.FetchParams) (*pager.Response[widget], error) {
		if call == 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-release:
			}
			return &pager.Response[widget]{List: all[:3], TotalCount: 3}, nil
		}
		return &pager.Response[widget]{List: all, TotalCount: len(all)}, nil
	}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background())
		close(done)
	}()
	for be.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	c.Refresh(context.Background())
	rec.waitChanged(t)
	close(release)
	<-done

	assert.Equal(t, 10, len(c.Rows()))
	assert.Equal(t, 10, c.TotalCount())
	assert.Equal(t, 2, be.callCount())
	select {
	case <-rec.changed:
		t.Fatal("preempted fetch must not publish its result")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestControllerFetchError(t *testing.T) {
	all := makeWidgets(20)
	be := &fakeBackend{}
	be.fn = func(call int, _ context.Context, p pager.FetchParams) (*pager.Response[widget], error) {
		if call == 1 {
			return serverPage(all, p), nil
		}
		return nil, fmt.Errorf("boom")
	}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true, PageSize: 10})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)
	assert.Equal(t, 10, len(c.Rows()))

	c.Refresh(context.Background())
	err := rec.waitFailed(t)
	rec.waitChanged(t)

	assert.Error(t, err)
	assert.Empty(t, c.Rows())
	assert.Equal(t, 0, c.TotalCount())
	assert.False(t, c.Loading())
}

func TestControllerFilterChange(t *testing.T) {
	all := makeWidgets(30)
	be := &fakeBackend{fn: func(_ int, _ context.Context, _ pager.FetchParams) (*pager.Response[widget], error) {
		return &pager.Response[widget]{List: all, TotalCount: len(all)}, nil
	}}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)
	assert.Equal(t, 1, be.callCount())

	c.SetFilters(map[string]string{"status": "active"})
	rec.waitChanged(t)

	assert.Equal(t, 2, be.callCount())
	got := be.call(1)
	assert.Equal(t, map[string]string{"status": "active"}, got.Filters)
	if assert.NotNil(t, got.Page) {
		assert.Equal(t, 0, *got.Page)
	}

	// Deep-equal set in a fresh map must not refetch.
	c.SetFilters(map[string]string{"status": "active"})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, be.callCount())
}

func TestControllerFilterCollapsesPendingSearch(t *testing.T) {
	all := makeWidgets(30)
	be := &fakeBackend{fn: func(_ int, _ context.Context, p pager.FetchParams) (*pager.Response[widget], error) {
		return serverPage(all, p), nil
	}}
	c := pager.NewController(pager.Config[widget]{
		Fetch:          be.fetch,
		Enabled:        true,
		PageSize:       10,
		SearchDebounce: 100,
	})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	c.SetSearchKeyword("widget")
	c.SetFilters(map[string]string{"status": "shipped"})
	rec.waitChanged(t)
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, 2, be.callCount(), "filter change must absorb the pending search effect")
	got := be.call(1)
	assert.Equal(t, "widget", got.SearchKeyword)
	assert.Equal(t, map[string]string{"status": "shipped"}, got.Filters)
}

func TestControllerServerClampReconciles(t *testing.T) {
	all := makeWidgets(30)
	be := &fakeBackend{}
	be.fn = func(call int, _ context.Context, p pager.FetchParams) (*pager.Response[widget], error) {
		if call == 1 {
			return serverPage(all, p), nil
		}
		// Requested page is past the end; serve the last page instead.
		resp := serverPage(all, pager.FetchParams{Page: intPtr(2), PageSize: p.PageSize})
		return resp, nil
	}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true, PageSize: 10})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	c.SetPageModel(9, 10)
	rec.waitChanged(t)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 2, be.callCount(), "reconciling a clamped page must not refetch")
	assert.Equal(t, 2, c.PageModel().Page)
	assert.Equal(t, "widget-20", c.Rows()[0].Name)
}

func TestControllerUnchangedStateSkipsFetch(t *testing.T) {
	all := makeWidgets(30)
	be := &fakeBackend{fn: func(_ int, _ context.Context, p pager.FetchParams) (*pager.Response[widget], error) {
		return serverPage(all, p), nil
	}}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true, PageSize: 10})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)

	c.Fetch(context.Background())
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, be.callCount())
}

func TestControllerDisabled(t *testing.T) {
	be := &fakeBackend{fn: func(_ int, _ context.Context, _ pager.FetchParams) (*pager.Response[widget], error) {
		return &pager.Response[widget]{}, nil
	}}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch})
	defer c.Stop()

	c.Fetch(context.Background())
	c.Refresh(context.Background())
	assert.Equal(t, 0, be.callCount())
}

func TestControllerReset(t *testing.T) {
	all := makeWidgets(30)
	be := &fakeBackend{fn: func(_ int, _ context.Context, _ pager.FetchParams) (*pager.Response[widget], error) {
		return &pager.Response[widget]{List: all, TotalCount: len(all)}, nil
	}}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true, SearchDebounce: 10})
	defer c.Stop()
	rec := newRecorder()
	c.AddListener(rec)

	c.Fetch(context.Background())
	rec.waitChanged(t)
	c.SetSearchKeyword("widget-2")
	rec.waitChanged(t)
	c.SetPageModel(4, 10)

	c.Reset()
	first := snapshot(c)
	c.Reset()
	second := snapshot(c)

	assert.Equal(t, first, second, "reset must be idempotent")
	assert.Equal(t, "", c.SearchKeyword())
	assert.Empty(t, c.Filters())
	assert.Equal(t, 0, c.PageModel().Page)
	assert.False(t, c.Determined())
}

type state struct {
	search     string
	filters    map[string]string
	model      pager.PageModel
	determined bool
	total      int
}

func snapshot(c *pager.Controller[widget]) state {
	return state{
		search:     c.SearchKeyword(),
		filters:    c.Filters(),
		model:      c.PageModel(),
		determined: c.Determined(),
		total:      c.TotalCount(),
	}
}

func TestControllerStop(t *testing.T) {
	be := &fakeBackend{fn: func(_ int, ctx context.Context, _ pager.FetchParams) (*pager.Response[widget], error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	c := pager.NewController(pager.Config[widget]{Fetch: be.fetch, Enabled: true})
	rec := newRecorder()
	c.AddListener(rec)

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background())
		close(done)
	}()
	for be.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	c.Stop()
	<-done

	select {
	case <-rec.changed:
		t.Fatal("stopped controller must not publish")
	case err := <-rec.failed:
		t.Fatalf("stopped controller must not report failure: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	c.Stop()
}
