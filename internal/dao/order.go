package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b9s/b9s/internal/pager"
)

func init() {
	RegisterAccessor(&OrderRID, &OrderAccessor{})
}

// Order is one customer order as returned by the backend.
type Order struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	Status        string     `json:"status"`
	Total         float64    `json:"total"`
	Currency      string     `json:"currency"`
	ItemCount     int        `json:"itemCount"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// OrderAccessor is the DAO for customer orders.
type OrderAccessor struct {
	APIResource
}

// List returns one page of orders, or all of them when the backend declines
// to paginate.
func (o *OrderAccessor) List(ctx context.Context, params pager.FetchParams) (*pager.Response[Object], error) {
	return listResource(ctx, &o.APIResource, params, orderToObject)
}

// Get retrieves a single order by id.
func (o *OrderAccessor) Get(ctx context.Context, id string) (Object, error) {
	return getResource(ctx, &o.APIResource, id, orderToObject)
}

// Update replaces an order with an edited body.
func (o *OrderAccessor) Update(ctx context.Context, id string, body map[string]interface{}) (Object, error) {
	return updateResource(ctx, &o.APIResource, id, body, orderToObject)
}

// Cancel voids an order that has not shipped yet.
func (o *OrderAccessor) Cancel(ctx context.Context, id string) error {
	return actionResource(ctx, &o.APIResource, id, "cancel", nil)
}

// Refund issues a refund for a delivered or cancelled order.
func (o *OrderAccessor) Refund(ctx context.Context, id string) error {
	return actionResource(ctx, &o.APIResource, id, "refund", nil)
}

// Describe returns a formatted description of the order.
func (o *OrderAccessor) Describe(ctx context.Context, id string) (string, error) {
	obj, err := o.Get(ctx, id)
	if err != nil {
		return "", err
	}

	order, ok := obj.GetRaw().(Order)
	if !ok {
		return "", fmt.Errorf("invalid order object")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Order: %s\n", order.Number))
	sb.WriteString(fmt.Sprintf("ID: %s\n", order.ID))
	sb.WriteString(fmt.Sprintf("Status: %s\n", order.Status))
	sb.WriteString(fmt.Sprintf("Customer: %s <%s>\n", order.CustomerName, order.CustomerEmail))
	sb.WriteString(fmt.Sprintf("Total: %.2f %s\n", order.Total, order.Currency))
	sb.WriteString(fmt.Sprintf("Items: %d\n", order.ItemCount))
	if order.CreatedAt != nil {
		sb.WriteString(fmt.Sprintf("Placed: %s\n", order.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	if order.UpdatedAt != nil {
		sb.WriteString(fmt.Sprintf("Updated: %s\n", order.UpdatedAt.Format("2006-01-02 15:04:05")))
	}

	return sb.String(), nil
}

// ToJSON returns a JSON representation of the order.
func (o *OrderAccessor) ToJSON(ctx context.Context, id string) (string, error) {
	obj, err := o.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return toJSON(obj)
}

// orderToObject wraps an order into a generic Object.
func orderToObject(order Order) Object {
	name := order.Number
	if name == "" {
		name = order.ID
	}
	return &BaseObject{
		ID:        order.ID,
		Name:      name,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		Raw:       order,
	}
}
