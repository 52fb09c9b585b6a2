package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cousoworks/tech-store/internal/entity"
)

// CreateOrder submits a draft. The idempotency key travels in a header the
// same way on every retry of the same cart, so a duplicate delivery cannot
// become a second order.
func (c *Client) CreateOrder(ctx context.Context, draft entity.OrderDraft, idemKey string) (entity.Order, error) {
	req := pedidoCrearDTO{
		DireccionEnvio: draft.ShippingAddress,
		Notas:          draft.Notes,
	}
	for _, it := range draft.Items {
		req.Items = append(req.Items, itemPedidoDTO{ArticuloID: it.ProductID, Cantidad: it.Quantity})
	}

	var dto pedidoDTO
	err := c.doWithHeader(ctx, http.MethodPost, "/api/pedidos", "X-Idempotency-Key", idemKey, req, &dto)
	if err != nil {
		return entity.Order{}, err
	}
	return dto.toEntity(), nil
}

// ListOrders returns the calling user's order history.
func (c *Client) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var dtos []pedidoDTO
	if err := c.do(ctx, http.MethodGet, "/api/pedidos", true, nil, &dtos); err != nil {
		return nil, err
	}
	orders := make([]entity.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toEntity())
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (entity.Order, error) {
	var dto pedidoDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/pedidos/%d", id), true, nil, &dto); err != nil {
		return entity.Order{}, err
	}
	return dto.toEntity(), nil
}

// SetOrderStatus is the admin transition between order states.
func (c *Client) SetOrderStatus(ctx context.Context, id int64, status entity.OrderStatus) (entity.Order, error) {
	var dto pedidoDTO
	path := fmt.Sprintf("/api/pedidos/%d/estado?nuevo_estado=%s", id, url.QueryEscape(string(status)))
	if err := c.do(ctx, http.MethodPut, path, true, nil, &dto); err != nil {
		return entity.Order{}, err
	}
	return dto.toEntity(), nil
}
