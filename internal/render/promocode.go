package render

import (
	"fmt"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// PromoCode renders marketing promo codes
type PromoCode struct {
	Base
}

// Header returns the promo code header
func (p *PromoCode) Header(env string) model1.Header {
	return model1.Header{
		{Name: "CODE"},
		{Name: "DISCOUNT", Attrs: model1.Attrs{Capacity: true}},
		{Name: "USAGE", Attrs: model1.Attrs{Capacity: true}},
		{Name: "STATUS"},
		{Name: "EXPIRES", Attrs: model1.Attrs{Wide: true}},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders a promo code to a row
func (p *PromoCode) Render(i any, env string, row *model1.Row) error {
	obj, ok := i.(dao.Object)
	if !ok {
		return fmt.Errorf("expected Object, got %T", i)
	}

	pc, ok := obj.GetRaw().(dao.PromoCode)
	if !ok {
		return fmt.Errorf("expected PromoCode, got %T", obj.GetRaw())
	}

	row.ID = pc.ID
	row.Fields = model1.Fields{
		NA(pc.Code),
		Discount(pc.Kind, pc.Value),
		Usage(pc.UsageCount, pc.UsageLimit),
		obj.GetStatus(),
		ToTimestamp(pc.ExpiresAt),
		ToAge(pc.CreatedAt),
	}
	return nil
}

// ColorerFunc returns the promo code colorer
func (p *PromoCode) ColorerFunc() model1.ColorerFunc {
	return func(env string, h model1.Header, re *model1.RowEvent) tcell.Color {
		statusIdx, ok := h.IndexOf("STATUS", true)
		if !ok || statusIdx >= len(re.Row.Fields) {
			return model1.DefaultColorer(env, h, re)
		}

		switch re.Row.Fields[statusIdx] {
		case StatusActive:
			return model1.CompletedColor
		case StatusInactive:
			return model1.PendingColor
		case StatusExpired:
			return model1.KillColor
		default:
			return model1.StdColor
		}
	}
}
