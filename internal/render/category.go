package render

import (
	"fmt"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/model1"
)

// Category renders catalog categories
type Category struct {
	Base
}

// Header returns the category header
func (c *Category) Header(env string) model1.Header {
	return model1.Header{
		{Name: "NAME"},
		{Name: "SLUG"},
		{Name: "PARENT", Attrs: model1.Attrs{Wide: true}},
		{Name: "PRODUCTS", Attrs: model1.Attrs{Capacity: true}},
		{Name: "STATUS"},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a category to a row
func (c *Category) Render(i any, env string, row *model1.Row) error {
	obj, ok := i.(dao.Object)
	if !ok {
		return fmt.Errorf("expected Object, got %T", i)
	}

	cat, ok := obj.GetRaw().(dao.Category)
	if !ok {
		return fmt.Errorf("expected Category, got %T", obj.GetRaw())
	}

	row.ID = cat.ID
	row.Fields = model1.Fields{
		NA(cat.Name),
		NA(cat.Slug),
		Missing(cat.ParentID),
		IntToStr(cat.ProductCount),
		cat.Status,
		ToAge(cat.CreatedAt),
	}
	return nil
}
