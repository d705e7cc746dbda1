package render_test

import (
	"testing"
	"time"

	"github.com/b9s/b9s/internal/dao"
	"github.com/b9s/b9s/internal/model1"
	"github.com/b9s/b9s/internal/render"
	"github.com/stretchr/testify/assert"
)

func TestOrderRender(t *testing.T) {
	created := time.Now().Add(-2 * time.Hour)
	order := dao.Order{
		ID:            "ord-1",
		Number:        "A-1001",
		CustomerName:  "Fernand Bolouvi",
		CustomerEmail: "fernand@example.com",
		Status:        render.StatusShipped,
		Total:         42.50,
		Currency:      "EUR",
		ItemCount:     3,
		CreatedAt:     &created,
	}
	obj := &dao.BaseObject{ID: order.ID, Name: order.Number, Status: order.Status, CreatedAt: &created, Raw: order}

	var re render.Order
	row := model1.NewRow(len(re.Header("test")))
	err := re.Render(obj, "test", &row)

	assert.NoError(t, err)
	assert.Equal(t, "ord-1", row.ID)
	assert.Equal(t, model1.Fields{
		"A-1001",
		"Fernand Bolouvi",
		"fernand@example.com",
		"shipped",
		"3",
		"42.50 EUR",
		created.Format("2006-01-02 15:04"),
		"2h",
	}, row.Fields)
}

func TestOrderColorer(t *testing.T) {
	var re render.Order
	h := re.Header("test")
	colorer := re.ColorerFunc()

	uu := map[string]struct {
		status string
		color  string
	}{
		"pending":   {status: render.StatusPending, color: "pending"},
		"delivered": {status: render.StatusDelivered, color: "completed"},
		"cancelled": {status: render.StatusCancelled, color: "kill"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			row := model1.Row{ID: "ord-1", Fields: model1.Fields{"A-1", "c", "e", u.status, "1", "1.00", "", "1h"}}
			ev := model1.NewRowEvent(model1.EventUnchanged, row)
			got := colorer("test", h, &ev)
			switch u.color {
			case "pending":
				assert.Equal(t, model1.PendingColor, got)
			case "completed":
				assert.Equal(t, model1.CompletedColor, got)
			case "kill":
				assert.Equal(t, model1.KillColor, got)
			}
		})
	}
}

func TestProductRenderOutOfStock(t *testing.T) {
	product := dao.Product{ID: "prd-1", Name: "anvil", SKU: "AN-01", Price: 19.99, Currency: "USD", Stock: 0, Status: render.StatusActive}
	obj := &dao.BaseObject{ID: product.ID, Name: product.Name, Status: product.Status, Raw: product}

	var re render.Product
	row := model1.NewRow(len(re.Header("test")))
	assert.NoError(t, re.Render(obj, "test", &row))
	assert.Equal(t, "0", row.Fields[4])

	ev := model1.NewRowEvent(model1.EventUnchanged, row)
	assert.Equal(t, model1.ErrColor, re.ColorerFunc()("test", re.Header("test"), &ev))
}

func TestPromoCodeRender(t *testing.T) {
	pc := dao.PromoCode{ID: "pc-1", Code: "SAVE10", Kind: "percent", Value: 10, UsageCount: 3, UsageLimit: 100, Active: true}
	obj := &dao.BaseObject{ID: pc.ID, Name: pc.Code, Status: render.StatusActive, Raw: pc}

	var re render.PromoCode
	row := model1.NewRow(len(re.Header("test")))
	assert.NoError(t, re.Render(obj, "test", &row))

	assert.Equal(t, "SAVE10", row.Fields[0])
	assert.Equal(t, "10%", row.Fields[1])
	assert.Equal(t, "3/100", row.Fields[2])
	assert.Equal(t, "active", row.Fields[3])
}

func TestNotificationRender(t *testing.T) {
	note := dao.Notification{ID: "ntf-1", Title: "Spring sale", Channel: "email", Audience: "all", Status: render.StatusDraft}
	obj := &dao.BaseObject{ID: note.ID, Name: note.Title, Status: note.Status, Raw: note}

	var re render.Notification
	row := model1.NewRow(len(re.Header("test")))
	assert.NoError(t, re.Render(obj, "test", &row))

	assert.Equal(t, "Spring sale", row.Fields[0])
	assert.Equal(t, "email", row.Fields[1])
	assert.Equal(t, "draft", row.Fields[3])
	assert.Equal(t, render.NAValue, row.Fields[4])
}

func TestRenderRejectsWrongType(t *testing.T) {
	obj := &dao.BaseObject{ID: "x", Raw: dao.Category{ID: "x"}}

	var re render.Order
	row := model1.NewRow(len(re.Header("test")))
	assert.Error(t, re.Render(obj, "test", &row))
}

func TestHumanDuration(t *testing.T) {
	uu := map[string]struct {
		d time.Duration
		e string
	}{
		"seconds": {d: 30 * time.Second, e: "30s"},
		"minutes": {d: 5 * time.Minute, e: "5m"},
		"hours":   {d: 3 * time.Hour, e: "3h"},
		"days":    {d: 49 * time.Hour, e: "2d"},
		"years":   {d: 400 * 24 * time.Hour, e: "1y"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, render.HumanDuration(u.d))
		})
	}
}
