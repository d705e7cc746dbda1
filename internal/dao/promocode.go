package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b9s/b9s/internal/pager"
)

func init() {
	RegisterAccessor(&PromoCodeRID, &PromoCodeAccessor{})
}

// PromoCode is one marketing discount code as returned by the backend.
type PromoCode struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	Kind       string     `json:"kind"` // "percent" or "fixed"
	Value      float64    `json:"value"`
	UsageCount int        `json:"usageCount"`
	UsageLimit int        `json:"usageLimit"`
	Active     bool       `json:"active"`
	ExpiresAt  *time.Time `json:"expiresAt"`
	CreatedAt  *time.Time `json:"createdAt"`
}

// PromoCodeAccessor is the DAO for marketing promo codes.
type PromoCodeAccessor struct {
	APIResource
}

// List returns one page of promo codes.
func (p *PromoCodeAccessor) List(ctx context.Context, params pager.FetchParams) (*pager.Response[Object], error) {
	return listResource(ctx, &p.APIResource, params, promoCodeToObject)
}

// Get retrieves a single promo code by id.
func (p *PromoCodeAccessor) Get(ctx context.Context, id string) (Object, error) {
	return getResource(ctx, &p.APIResource, id, promoCodeToObject)
}

// Update replaces a promo code with an edited body.
func (p *PromoCodeAccessor) Update(ctx context.Context, id string, body map[string]interface{}) (Object, error) {
	return updateResource(ctx, &p.APIResource, id, body, promoCodeToObject)
}

// Activate enables a promo code for checkout.
func (p *PromoCodeAccessor) Activate(ctx context.Context, id string) error {
	return actionResource(ctx, &p.APIResource, id, "activate", nil)
}

// Deactivate disables a promo code without deleting its usage history.
func (p *PromoCodeAccessor) Deactivate(ctx context.Context, id string) error {
	return actionResource(ctx, &p.APIResource, id, "deactivate", nil)
}

// Delete removes a promo code. Codes that have been used are kept for
// bookkeeping unless force is set.
func (p *PromoCodeAccessor) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		obj, err := p.Get(ctx, id)
		if err != nil {
			return err
		}
		if pc, ok := obj.GetRaw().(PromoCode); ok && pc.UsageCount > 0 {
			return fmt.Errorf("promo code %s has been used %d times, deactivate it instead", pc.Code, pc.UsageCount)
		}
	}
	return deleteResource(ctx, &p.APIResource, id)
}

// Describe returns a formatted description of the promo code.
func (p *PromoCodeAccessor) Describe(ctx context.Context, id string) (string, error) {
	obj, err := p.Get(ctx, id)
	if err != nil {
		return "", err
	}

	pc, ok := obj.GetRaw().(PromoCode)
	if !ok {
		return "", fmt.Errorf("invalid promo code object")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Promo Code: %s\n", pc.Code))
	sb.WriteString(fmt.Sprintf("ID: %s\n", pc.ID))
	sb.WriteString(fmt.Sprintf("Active: %t\n", pc.Active))
	if pc.Kind == "percent" {
		sb.WriteString(fmt.Sprintf("Discount: %.0f%%\n", pc.Value))
	} else {
		sb.WriteString(fmt.Sprintf("Discount: %.2f\n", pc.Value))
	}
	if pc.UsageLimit > 0 {
		sb.WriteString(fmt.Sprintf("Usage: %d/%d\n", pc.UsageCount, pc.UsageLimit))
	} else {
		sb.WriteString(fmt.Sprintf("Usage: %d\n", pc.UsageCount))
	}
	if pc.ExpiresAt != nil {
		sb.WriteString(fmt.Sprintf("Expires: %s\n", pc.ExpiresAt.Format("2006-01-02 15:04:05")))
	}
	if pc.CreatedAt != nil {
		sb.WriteString(fmt.Sprintf("Created: %s\n", pc.CreatedAt.Format("2006-01-02 15:04:05")))
	}

	return sb.String(), nil
}

// ToJSON returns a JSON representation of the promo code.
func (p *PromoCodeAccessor) ToJSON(ctx context.Context, id string) (string, error) {
	obj, err := p.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return toJSON(obj)
}

// promoCodeToObject wraps a promo code into a generic Object.
func promoCodeToObject(pc PromoCode) Object {
	status := "inactive"
	if pc.Active {
		status = "active"
	}
	if pc.ExpiresAt != nil && pc.ExpiresAt.Before(time.Now()) {
		status = "expired"
	}
	return &BaseObject{
		ID:        pc.ID,
		Name:      pc.Code,
		Status:    status,
		CreatedAt: pc.CreatedAt,
		Raw:       pc,
	}
}
