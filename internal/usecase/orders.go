package usecase

import (
	"context"

	"github.com/cousoworks/tech-store/internal/entity"
)

// Orders is the customer's order history view.
type Orders struct {
	api      OrderAPI
	sessions SessionGate
}

func NewOrders(api OrderAPI, sessions SessionGate) *Orders {
	return &Orders{api: api, sessions: sessions}
}

func (o *Orders) List(ctx context.Context) ([]entity.Order, error) {
	if !o.sessions.Authenticated() {
		return nil, ErrAuthenticationRequired
	}
	orders, err := o.api.ListOrders(ctx)
	if err != nil {
		return nil, classifyAPIError(err)
	}
	return orders, nil
}

func (o *Orders) Get(ctx context.Context, id int64) (entity.Order, error) {
	if !o.sessions.Authenticated() {
		return entity.Order{}, ErrAuthenticationRequired
	}
	order, err := o.api.GetOrder(ctx, id)
	if err != nil {
		return entity.Order{}, classifyAPIError(err)
	}
	return order, nil
}
