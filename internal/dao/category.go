package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b9s/b9s/internal/pager"
)

func init() {
	RegisterAccessor(&CategoryRID, &CategoryAccessor{})
}

// Category is one catalog category as returned by the backend.
type Category struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	ParentID     string     `json:"parentId"`
	ProductCount int        `json:"productCount"`
	Status       string     `json:"status"`
	CreatedAt    *time.Time `json:"createdAt"`
}

// CategoryAccessor is the DAO for catalog categories.
type CategoryAccessor struct {
	APIResource
}

// List returns one page of categories. Category endpoints typically decline
// to paginate and return the whole tree flattened.
func (c *CategoryAccessor) List(ctx context.Context, params pager.FetchParams) (*pager.Response[Object], error) {
	return listResource(ctx, &c.APIResource, params, categoryToObject)
}

// Get retrieves a single category by id.
func (c *CategoryAccessor) Get(ctx context.Context, id string) (Object, error) {
	return getResource(ctx, &c.APIResource, id, categoryToObject)
}

// Update replaces a category with an edited body.
func (c *CategoryAccessor) Update(ctx context.Context, id string, body map[string]interface{}) (Object, error) {
	return updateResource(ctx, &c.APIResource, id, body, categoryToObject)
}

// Delete removes an empty category.
func (c *CategoryAccessor) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		obj, err := c.Get(ctx, id)
		if err != nil {
			return err
		}
		if cat, ok := obj.GetRaw().(Category); ok && cat.ProductCount > 0 {
			return fmt.Errorf("category %s still holds %d products", id, cat.ProductCount)
		}
	}
	return deleteResource(ctx, &c.APIResource, id)
}

// Describe returns a formatted description of the category.
func (c *CategoryAccessor) Describe(ctx context.Context, id string) (string, error) {
	obj, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}

	cat, ok := obj.GetRaw().(Category)
	if !ok {
		return "", fmt.Errorf("invalid category object")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Category: %s\n", cat.Name))
	sb.WriteString(fmt.Sprintf("ID: %s\n", cat.ID))
	sb.WriteString(fmt.Sprintf("Slug: %s\n", cat.Slug))
	sb.WriteString(fmt.Sprintf("Status: %s\n", cat.Status))
	sb.WriteString(fmt.Sprintf("Products: %d\n", cat.ProductCount))
	if cat.ParentID != "" {
		sb.WriteString(fmt.Sprintf("Parent: %s\n", cat.ParentID))
	}
	if cat.CreatedAt != nil {
		sb.WriteString(fmt.Sprintf("Created: %s\n", cat.CreatedAt.Format("2006-01-02 15:04:05")))
	}

	return sb.String(), nil
}

// ToJSON returns a JSON representation of the category.
func (c *CategoryAccessor) ToJSON(ctx context.Context, id string) (string, error) {
	obj, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return toJSON(obj)
}

// categoryToObject wraps a category into a generic Object.
func categoryToObject(cat Category) Object {
	return &BaseObject{
		ID:        cat.ID,
		Name:      cat.Name,
		Status:    cat.Status,
		CreatedAt: cat.CreatedAt,
		Raw:       cat,
	}
}
