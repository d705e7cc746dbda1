package render

import (
	"fmt"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// Product renders catalog products
type Product struct {
	Base
}

// Header returns the product header
func (p *Product) Header(env string) model1.Header {
	return model1.Header{
		{Name: "NAME"},
		{Name: "SKU"},
		{Name: "CATEGORY"},
		{Name: "PRICE", Attrs: model1.Attrs{Capacity: true}},
		{Name: "STOCK", Attrs: model1.Attrs{Capacity: true}},
		{Name: "STATUS"},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a product to a row
func (p *Product) Render(i any, env string, row *model1.Row) error {
	obj, ok := i.(dao.Object)
	if !ok {
		return fmt.Errorf("expected Object, got %T", i)
	}

	product, ok := obj.GetRaw().(dao.Product)
	if !ok {
		return fmt.Errorf("expected Product, got %T", obj.GetRaw())
	}

	row.ID = product.ID
	row.Fields = model1.Fields{
		NA(product.Name),
		NA(product.SKU),
		Missing(product.CategoryName),
		Money(product.Price, product.Currency),
		IntToStr(product.Stock),
		product.Status,
		ToAge(product.CreatedAt),
	}
	return nil
}

// ColorerFunc returns the product colorer
func (p *Product) ColorerFunc() model1.ColorerFunc {
	return func(env string, h model1.Header, re *model1.RowEvent) tcell.Color {
		if stockIdx, ok := h.IndexOf("STOCK", true); ok && stockIdx < len(re.Row.Fields) {
			if re.Row.Fields[stockIdx] == ZeroValue {
				return model1.ErrColor
			}
		}
		statusIdx, ok := h.IndexOf("STATUS", true)
		if !ok || statusIdx >= len(re.Row.Fields) {
			return model1.DefaultColorer(env, h, re)
		}

		switch re.Row.Fields[statusIdx] {
		case StatusActive:
			return model1.StdColor
		case StatusInactive:
			return model1.PendingColor
		case StatusArchived:
			return model1.KillColor
		default:
			return model1.StdColor
		}
	}
}
