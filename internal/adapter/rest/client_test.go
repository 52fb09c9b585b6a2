package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cousoworks/tech-store/internal/entity"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, tokens)
}

func TestListProductsMapsWireFormat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articulos", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "catalog reads are anonymous")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": 7,
			"nombre": "Teclado mecánico",
			"descripcion": "RGB",
			"cantidad": 12,
			"precio": 89.99,
			"fecha_creacion": "2025-03-01T10:00:00.123456",
			"fecha_actualizacion": "2025-03-02T09:30:00Z"
		}]`))
	}, nil)

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "Teclado mecánico", p.Name)
	assert.Equal(t, int64(12), p.Stock)
	assert.Equal(t, int64(8999), p.Price.Cents, "euros become minor units at the boundary")
	assert.Equal(t, "EUR", p.Price.Currency)
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestBearerHeaderOnAuthenticatedCalls(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}, staticToken("tok-123"))

	_, err := c.ListOrders(context.Background())
	require.NoError(t, err)
}

func TestNoBearerHeaderWhenAnonymous(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}, staticToken(""))

	_, err := c.ListOrders(context.Background())
	require.NoError(t, err)
}

func TestCreateOrderSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotBody pedidoCrearDTO
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id": 42, "estado": "pendiente", "total": 179.98}`))
	}, staticToken("tok"))

	order, err := c.CreateOrder(context.Background(), entity.OrderDraft{
		Items:           []entity.OrderDraftItem{{ProductID: 7, Quantity: 2}},
		ShippingAddress: "Calle Mayor 1",
	}, "key-abc")
	require.NoError(t, err)

	assert.Equal(t, "key-abc", gotKey)
	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, int64(7), gotBody.Items[0].ArticuloID)
	assert.Equal(t, int64(2), gotBody.Items[0].Cantidad)
	assert.Equal(t, "Calle Mayor 1", gotBody.DireccionEnvio)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, int64(17998), order.Total.Cents)
}

func TestErrorBodyDetailField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail": "Stock insuficiente"}`))
	}, nil)

	_, err := c.GetProduct(context.Background(), 7)
	serr, ok := entity.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, 409, serr.Code)
	assert.Equal(t, "Stock insuficiente", serr.Message)
}

func TestErrorBodyErrorField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Credenciales incorrectas"}`))
	}, nil)

	_, err := c.GetProduct(context.Background(), 7)
	serr, ok := entity.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, "Credenciales incorrectas", serr.Message)
}

func TestErrorBodyPlainText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}, nil)

	_, err := c.GetProduct(context.Background(), 7)
	serr, ok := entity.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, "upstream exploded", serr.Message)
}

func TestErrorBodyUnrecognizedJSONFallsBack(t *testing.T) {
	// Valid JSON without detail/error keeps the generic message rather than
	// dumping the raw body at the operator.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": "nope"}`))
	}, nil)

	_, err := c.GetProduct(context.Background(), 7)
	serr, ok := entity.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, "status 404", serr.Message)
}

func TestUnreachableServerIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, time.Second, nil)

	_, err := c.ListProducts(context.Background())
	var terr *entity.TransportError
	require.ErrorAs(t, err, &terr)
}

func TestSetOrderStatusPutsQueryParam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/pedidos/5/estado", r.URL.Path)
		assert.Equal(t, "enviado", r.URL.Query().Get("nuevo_estado"))
		w.Write([]byte(`{"id": 5, "estado": "enviado"}`))
	}, staticToken("tok"))

	order, err := c.SetOrderStatus(context.Background(), 5, entity.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, order.Status)
}

func TestGetStatisticsReadsNestedCounters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/estadisticas", r.URL.Path)
		w.Write([]byte(`{"inventario": {
			"total_articulos": 10,
			"productos_con_stock": 8,
			"productos_sin_stock": 2,
			"stock_total": 55
		}}`))
	}, nil)

	stats, err := c.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalItems)
	assert.Equal(t, int64(8), stats.WithStock)
	assert.Equal(t, int64(2), stats.WithoutStock)
	assert.Equal(t, int64(55), stats.TotalStock)
}

func TestSearchProductsEscapesTerm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ratón gamer", r.URL.Query().Get("buscar"))
		w.Write([]byte(`[]`))
	}, nil)

	_, err := c.SearchProducts(context.Background(), "ratón gamer")
	require.NoError(t, err)
}

func TestParseTimeVariants(t *testing.T) {
	assert.False(t, parseTime("2025-03-01T10:00:00.123456").IsZero())
	assert.False(t, parseTime("2025-03-01T10:00:00Z").IsZero())
	assert.False(t, parseTime("2025-03-01T10:00:00+02:00").IsZero())
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("yesterday").IsZero())
}

func TestEurosToCentsRounds(t *testing.T) {
	assert.Equal(t, int64(8999), eurosToCents(89.99))
	assert.Equal(t, int64(10), eurosToCents(0.1))
	assert.Equal(t, int64(2999), eurosToCents(29.99))
	assert.Equal(t, int64(0), eurosToCents(0))
}
