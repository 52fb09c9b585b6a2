package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cousoworks/tech-store/internal/entity"
)

// Inventory mutations. All three require an admin bearer token; the server
// enforces the role, the client only forwards the credential.

func (c *Client) CreateProduct(ctx context.Context, draft entity.ProductDraft) (entity.Product, error) {
	req := articuloCrearDTO{
		Nombre:      draft.Name,
		Descripcion: draft.Description,
		Cantidad:    draft.Stock,
		Precio:      centsToEuros(draft.Price),
	}
	var dto articuloDTO
	if err := c.do(ctx, http.MethodPost, "/api/articulos", true, req, &dto); err != nil {
		return entity.Product{}, err
	}
	return dto.toEntity(), nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, patch entity.ProductPatch) (entity.Product, error) {
	req := articuloActualizarDTO{
		Nombre:      patch.Name,
		Descripcion: patch.Description,
		Cantidad:    patch.Stock,
	}
	if patch.Price != nil {
		euros := centsToEuros(*patch.Price)
		req.Precio = &euros
	}
	var dto articuloDTO
	if err := c.do(ctx, http.MethodPut, productPath(id), true, req, &dto); err != nil {
		return entity.Product{}, err
	}
	return dto.toEntity(), nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), true, nil, nil)
}

func productPath(id int64) string {
	return fmt.Sprintf("/api/articulos/%d", id)
}
