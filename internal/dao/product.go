package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b9s/b9s/internal/pager"
)

func init() {
	RegisterAccessor(&ProductRID, &ProductAccessor{})
}

// Product is one catalog item as returned by the backend.
type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	SKU          string     `json:"sku"`
	CategoryID   string     `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Price        float64    `json:"price"`
	Currency     string     `json:"currency"`
	Stock        int        `json:"stock"`
	Status       string     `json:"status"`
	CreatedAt    *time.Time `json:"createdAt"`
}

// ProductAccessor is the DAO for catalog products.
type ProductAccessor struct {
	APIResource
}

// List returns one page of products, or all of them when the backend
// declines to paginate.
func (p *ProductAccessor) List(ctx context.Context, params pager.FetchParams) (*pager.Response[Object], error) {
	return listResource(ctx, &p.APIResource, params, productToObject)
}

// Get retrieves a single product by id.
func (p *ProductAccessor) Get(ctx context.Context, id string) (Object, error) {
	return getResource(ctx, &p.APIResource, id, productToObject)
}

// Update replaces a product with an edited body.
func (p *ProductAccessor) Update(ctx context.Context, id string, body map[string]interface{}) (Object, error) {
	return updateResource(ctx, &p.APIResource, id, body, productToObject)
}

// Delete removes a product from the catalog.
func (p *ProductAccessor) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		obj, err := p.Get(ctx, id)
		if err != nil {
			return err
		}
		if obj.GetStatus() == "active" {
			return fmt.Errorf("product %s is active, archive it first or force delete", id)
		}
	}
	return deleteResource(ctx, &p.APIResource, id)
}

// Describe returns a formatted description of the product.
func (p *ProductAccessor) Describe(ctx context.Context, id string) (string, error) {
	obj, err := p.Get(ctx, id)
	if err != nil {
		return "", err
	}

	product, ok := obj.GetRaw().(Product)
	if !ok {
		return "", fmt.Errorf("invalid product object")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Product: %s\n", product.Name))
	sb.WriteString(fmt.Sprintf("ID: %s\n", product.ID))
	sb.WriteString(fmt.Sprintf("SKU: %s\n", product.SKU))
	sb.WriteString(fmt.Sprintf("Status: %s\n", product.Status))
	sb.WriteString(fmt.Sprintf("Price: %.2f %s\n", product.Price, product.Currency))
	sb.WriteString(fmt.Sprintf("Stock: %d\n", product.Stock))
	if product.CategoryName != "" {
		sb.WriteString(fmt.Sprintf("Category: %s (%s)\n", product.CategoryName, product.CategoryID))
	}
	if product.CreatedAt != nil {
		sb.WriteString(fmt.Sprintf("Created: %s\n", product.CreatedAt.Format("2006-01-02 15:04:05")))
	}

	return sb.String(), nil
}

// ToJSON returns a JSON representation of the product.
func (p *ProductAccessor) ToJSON(ctx context.Context, id string) (string, error) {
	obj, err := p.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return toJSON(obj)
}

// productToObject wraps a product into a generic Object.
func productToObject(product Product) Object {
	return &BaseObject{
		ID:        product.ID,
		Name:      product.Name,
		Status:    product.Status,
		CreatedAt: product.CreatedAt,
		Raw:       product,
	}
}
