package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/b9s/b9s/internal/api"
	"github.com/b9s/b9s/internal/pager"
)

// BaseObject implements the Object interface with embedded fields.
type BaseObject struct {
	ID        string
	Name      string
	Status    string
	CreatedAt *time.Time
	Raw       interface{} // Original decoded entity
}

// GetID returns the entity id.
func (b *BaseObject) GetID() string {
	return b.ID
}

// GetName returns the entity's display name.
func (b *BaseObject) GetName() string {
	return b.Name
}

// GetStatus returns the entity's lifecycle status.
func (b *BaseObject) GetStatus() string {
	return b.Status
}

// GetCreatedAt returns the creation timestamp.
func (b *BaseObject) GetCreatedAt() *time.Time {
	return b.CreatedAt
}

// GetRaw returns the original decoded entity.
func (b *BaseObject) GetRaw() interface{} {
	return b.Raw
}

// APIResource is the base struct that all specific DAOs embed.
// It provides factory access, resource identification, and caching.
type APIResource struct {
	Factory
	rid   *ResourceID
	cache *ResourceCache
	mx    sync.RWMutex
}

// sharedCache backs all accessors so fresh per-view instances still share
// cached pages.
var sharedCache = NewResourceCache(DefaultCacheTTL)

// Init initializes the APIResource with factory and resource ID.
func (r *APIResource) Init(f Factory, rid *ResourceID) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Factory = f
	r.rid = rid
	if r.cache == nil {
		r.cache = sharedCache
	}
}

// ResourceID returns the resource identifier.
func (r *APIResource) ResourceID() *ResourceID {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.rid
}

// getFactory returns the factory in a thread-safe manner.
func (r *APIResource) getFactory() Factory {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.Factory
}

// getCache returns the resource cache in a thread-safe manner.
func (r *APIResource) getCache() *ResourceCache {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.cache
}

// SetCache sets the resource cache (typically called during initialization).
func (r *APIResource) SetCache(cache *ResourceCache) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.cache = cache
}

// cacheKey generates a cache key from resource ID, environment and page.
func (r *APIResource) cacheKey(suffix string) string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	env := ""
	if r.Factory != nil {
		env = r.Factory.Env()
	}
	if r.rid == nil {
		return env + ":" + suffix
	}
	return fmt.Sprintf("%s:%s:%s", r.rid.String(), env, suffix)
}

// invalidate drops any cached pages for this resource after a mutation.
func (r *APIResource) invalidate() {
	if c := r.getCache(); c != nil && r.ResourceID() != nil {
		c.InvalidatePrefix(r.ResourceID().String() + ":")
	}
}

// plainQuery reports whether params carry no search, filters or sorting, so
// the result is cacheable.
func plainQuery(params pager.FetchParams) bool {
	return params.SearchKeyword == "" && len(params.Filters) == 0 && len(params.Sorting) == 0
}

// listResource fetches one page of a collection and decodes each raw item
// into E, wrapping it into an Object via wrap. Plain first-page queries are
// served from the resource cache when fresh.
func listResource[E any](ctx context.Context, r *APIResource, params pager.FetchParams, wrap func(E) Object) (*pager.Response[Object], error) {
	f := r.getFactory()
	if f == nil {
		return nil, fmt.Errorf("factory not initialized")
	}
	rid := r.ResourceID()
	if rid == nil {
		return nil, fmt.Errorf("resource ID not initialized")
	}

	cacheable := plainQuery(params)
	key := r.cacheKey(fmt.Sprintf("p%v/s%d", derefPage(params.Page), params.PageSize))
	if cacheable {
		if c := r.getCache(); c != nil {
			if resp := c.Get(key); resp != nil {
				return resp, nil
			}
		}
	}

	result, err := f.Client().List(ctx, rid.String(), api.ListQuery{
		Page:          params.Page,
		PageSize:      params.PageSize,
		SearchKeyword: params.SearchKeyword,
		Filters:       params.Filters,
		Sorting:       params.Sorting,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", rid.String(), err)
	}

	objects := make([]Object, 0, len(result.List))
	for _, raw := range result.List {
		var entity E
		if err := json.Unmarshal(raw, &entity); err != nil {
			return nil, fmt.Errorf("decode %s item: %w", rid.String(), err)
		}
		objects = append(objects, wrap(entity))
	}

	resp := &pager.Response[Object]{
		List:        objects,
		TotalCount:  result.TotalCount,
		PageDetails: result.PageDetails,
	}
	if cacheable {
		if c := r.getCache(); c != nil {
			c.Set(key, resp)
		}
	}

	return resp, nil
}

// getResource fetches a single entity by id and wraps it into an Object.
func getResource[E any](ctx context.Context, r *APIResource, id string, wrap func(E) Object) (Object, error) {
	f := r.getFactory()
	if f == nil {
		return nil, fmt.Errorf("factory not initialized")
	}
	rid := r.ResourceID()
	if rid == nil {
		return nil, fmt.Errorf("resource ID not initialized")
	}

	var entity E
	if err := f.Client().Get(ctx, rid.String(), id, &entity); err != nil {
		return nil, fmt.Errorf("get %s %s: %w", rid.String(), id, err)
	}

	return wrap(entity), nil
}

// updateResource replaces an entity with an edited body and decodes the
// backend's canonical version back.
func updateResource[E any](ctx context.Context, r *APIResource, id string, body map[string]interface{}, wrap func(E) Object) (Object, error) {
	f := r.getFactory()
	if f == nil {
		return nil, fmt.Errorf("factory not initialized")
	}
	rid := r.ResourceID()
	if rid == nil {
		return nil, fmt.Errorf("resource ID not initialized")
	}

	var entity E
	if err := f.Client().Update(ctx, rid.String(), id, body, &entity); err != nil {
		return nil, fmt.Errorf("update %s %s: %w", rid.String(), id, err)
	}
	r.invalidate()

	return wrap(entity), nil
}

// deleteResource removes an entity by id.
func deleteResource(ctx context.Context, r *APIResource, id string) error {
	f := r.getFactory()
	if f == nil {
		return fmt.Errorf("factory not initialized")
	}
	rid := r.ResourceID()
	if rid == nil {
		return fmt.Errorf("resource ID not initialized")
	}

	if err := f.Client().Delete(ctx, rid.String(), id); err != nil {
		return fmt.Errorf("delete %s %s: %w", rid.String(), id, err)
	}
	r.invalidate()

	return nil
}

// actionResource invokes a named operation on an entity.
func actionResource(ctx context.Context, r *APIResource, id, action string, body any) error {
	f := r.getFactory()
	if f == nil {
		return fmt.Errorf("factory not initialized")
	}
	rid := r.ResourceID()
	if rid == nil {
		return fmt.Errorf("resource ID not initialized")
	}

	if err := f.Client().Action(ctx, rid.String(), id, action, body); err != nil {
		return fmt.Errorf("%s %s %s: %w", action, rid.String(), id, err)
	}
	r.invalidate()

	return nil
}

// toJSON renders an entity's raw form as indented JSON.
func toJSON(obj Object) (string, error) {
	data, err := json.MarshalIndent(obj.GetRaw(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal entity to JSON: %w", err)
	}
	return string(data), nil
}

func derefPage(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}
