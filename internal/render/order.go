package render

import (
	"fmt"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/model1"
	"github.com/gdamore/tcell/v2"
)

// Order renders customer orders
type Order struct {
	Base
}

// Header returns the order header
func (o *Order) Header(env string) model1.Header {
	return model1.Header{
		{Name: "NUMBER"},
		{Name: "CUSTOMER"},
		{Name: "EMAIL", Attrs: model1.Attrs{Wide: true}},
		{Name: "STATUS"},
		{Name: "ITEMS", Attrs: model1.Attrs{Capacity: true}},
		{Name: "TOTAL", Attrs: model1.Attrs{Capacity: true}},
		{Name: "PLACED", Attrs: model1.Attrs{Wide: true}},
		{Name: "AGE", Attrs: model1.Attrs{Time: true}},
	}
}

// Render renders an order to a row
func (o *Order) Render(i any, env string, row *model1.Row) error {
	obj, ok := i.(dao.Object)
	if !ok {
		return fmt.Errorf("expected Object, got %T", i)
	}

	order, ok := obj.GetRaw().(dao.Order)
	if !ok {
		return fmt.Errorf("expected Order, got %T", obj.GetRaw())
	}

	row.ID = order.ID
	row.Fields = model1.Fields{
		NA(order.Number),
		NA(order.CustomerName),
		NA(order.CustomerEmail),
		order.Status,
		IntToStr(order.ItemCount),
		Money(order.Total, order.Currency),
		ToTimestamp(order.CreatedAt),
		ToAge(order.CreatedAt),
	}
	return nil
}

// ColorerFunc returns the order colorer
func (o *Order) ColorerFunc() model1.ColorerFunc {
	return func(env string, h model1.Header, re *model1.RowEvent) tcell.Color {
		statusIdx, ok := h.IndexOf("STATUS", true)
		if !ok || statusIdx >= len(re.Row.Fields) {
			return model1.DefaultColorer(env, h, re)
		}

		switch re.Row.Fields[statusIdx] {
		case StatusPending:
			return model1.PendingColor
		case StatusPaid, StatusShipped:
			return model1.AddColor
		case StatusDelivered:
			return model1.CompletedColor
		case StatusCancelled, StatusRefunded:
			return model1.KillColor
		default:
			return model1.StdColor
		}
	}
}
