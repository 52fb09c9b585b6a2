package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cousoworks/tech-store/internal/entity"
)

// ListProducts fetches the full inventory snapshot.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var dtos []articuloDTO
	if err := c.do(ctx, http.MethodGet, "/api/articulos", false, nil, &dtos); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toEntity())
	}
	return products, nil
}

// SearchProducts runs the server-side search.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]entity.Product, error) {
	var dtos []articuloDTO
	path := "/api/articulos?buscar=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, false, nil, &dtos); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toEntity())
	}
	return products, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (entity.Product, error) {
	var dto articuloDTO
	if err := c.do(ctx, http.MethodGet, productPath(id), false, nil, &dto); err != nil {
		return entity.Product{}, err
	}
	return dto.toEntity(), nil
}

// GetStatistics decodes the store-wide counters endpoint. Only the figures
// the storefront shows are kept.
func (c *Client) GetStatistics(ctx context.Context) (entity.Statistics, error) {
	var dto struct {
		Inventario struct {
			TotalArticulos int64 `json:"total_articulos"`
			ConStock       int64 `json:"productos_con_stock"`
			SinStock       int64 `json:"productos_sin_stock"`
			StockTotal     int64 `json:"stock_total"`
		} `json:"inventario"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/estadisticas", false, nil, &dto); err != nil {
		return entity.Statistics{}, err
	}
	return entity.Statistics{
		TotalItems:   dto.Inventario.TotalArticulos,
		WithStock:    dto.Inventario.ConStock,
		WithoutStock: dto.Inventario.SinStock,
		TotalStock:   dto.Inventario.StockTotal,
	}, nil
}

// Ping checks the API health endpoint and returns its reported version.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var dto struct {
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/salud", false, nil, &dto); err != nil {
		return "", err
	}
	return dto.Version, nil
}
