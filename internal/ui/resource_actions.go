// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package ui

import (
	"context"
	"fmt"

	"github.com/b9s/b9s/internal/config/data"
	"github.com/b9s/b9s/internal/dao"
	"github.com/derailed/tcell/v2"
)

func init() {
	RegisterActions("sales/order", []ResourceAction{
		{
			Key:         KeyC,
			Name:        "Cancel",
			Description: "Cancel order",
			Dangerous:   true,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := orderAccessor(f)
				if err != nil {
					return err
				}
				return acc.Cancel(ctx, id)
			},
		},
		{
			Key:         tcell.KeyCtrlR,
			Name:        "Refund",
			Description: "Refund order",
			Dangerous:   true,
			Gate:        data.GateRefunds,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := orderAccessor(f)
				if err != nil {
					return err
				}
				return acc.Refund(ctx, id)
			},
		},
	})

	RegisterActions("catalog/product", []ResourceAction{
		{
			Key:         tcell.KeyCtrlD,
			Name:        "Delete",
			Description: "Delete product",
			Dangerous:   true,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := dao.AccessorFor(f, &dao.ProductRID)
				if err != nil {
					return err
				}
				nuker, ok := acc.(dao.Nuker)
				if !ok {
					return fmt.Errorf("products are not deletable")
				}
				return nuker.Delete(ctx, id, false)
			},
		},
	})

	RegisterActions("catalog/category", []ResourceAction{
		{
			Key:         tcell.KeyCtrlD,
			Name:        "Delete",
			Description: "Delete category",
			Dangerous:   true,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := dao.AccessorFor(f, &dao.CategoryRID)
				if err != nil {
					return err
				}
				nuker, ok := acc.(dao.Nuker)
				if !ok {
					return fmt.Errorf("categories are not deletable")
				}
				return nuker.Delete(ctx, id, false)
			},
		},
	})

	RegisterActions("marketing/promocode", []ResourceAction{
		{
			Key:         KeyA,
			Name:        "Activate",
			Description: "Activate promo code",
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := promoCodeAccessor(f)
				if err != nil {
					return err
				}
				return acc.Activate(ctx, id)
			},
		},
		{
			Key:         KeyD,
			Name:        "Deactivate",
			Description: "Deactivate promo code",
			Dangerous:   true,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := promoCodeAccessor(f)
				if err != nil {
					return err
				}
				return acc.Deactivate(ctx, id)
			},
		},
		{
			Key:         tcell.KeyCtrlD,
			Name:        "Delete",
			Description: "Delete promo code",
			Dangerous:   true,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := dao.AccessorFor(f, &dao.PromoCodeRID)
				if err != nil {
					return err
				}
				nuker, ok := acc.(dao.Nuker)
				if !ok {
					return fmt.Errorf("promo codes are not deletable")
				}
				return nuker.Delete(ctx, id, false)
			},
		},
	})

	RegisterActions("comms/notification", []ResourceAction{
		{
			Key:         KeyS,
			Name:        "Send",
			Description: "Send notification",
			Dangerous:   true,
			Gate:        data.GateNotifications,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := notificationAccessor(f)
				if err != nil {
					return err
				}
				return acc.Send(ctx, id)
			},
		},
		{
			Key:         tcell.KeyCtrlD,
			Name:        "Delete",
			Description: "Delete notification",
			Dangerous:   true,
			Handler: func(ctx context.Context, f dao.Factory, id string) error {
				acc, err := dao.AccessorFor(f, &dao.NotificationRID)
				if err != nil {
					return err
				}
				nuker, ok := acc.(dao.Nuker)
				if !ok {
					return fmt.Errorf("notifications are not deletable")
				}
				return nuker.Delete(ctx, id, false)
			},
		},
	})
}

func orderAccessor(f dao.Factory) (*dao.OrderAccessor, error) {
	acc, err := dao.AccessorFor(f, &dao.OrderRID)
	if err != nil {
		return nil, err
	}
	oa, ok := acc.(*dao.OrderAccessor)
	if !ok {
		return nil, fmt.Errorf("unexpected accessor type for orders")
	}
	return oa, nil
}

func promoCodeAccessor(f dao.Factory) (*dao.PromoCodeAccessor, error) {
	acc, err := dao.AccessorFor(f, &dao.PromoCodeRID)
	if err != nil {
		return nil, err
	}
	pa, ok := acc.(*dao.PromoCodeAccessor)
	if !ok {
		return nil, fmt.Errorf("unexpected accessor type for promo codes")
	}
	return pa, nil
}

func notificationAccessor(f dao.Factory) (*dao.NotificationAccessor, error) {
	acc, err := dao.AccessorFor(f, &dao.NotificationRID)
	if err != nil {
		return nil, err
	}
	na, ok := acc.(*dao.NotificationAccessor)
	if !ok {
		return nil, fmt.Errorf("unexpected accessor type for notifications")
	}
	return na, nil
}
