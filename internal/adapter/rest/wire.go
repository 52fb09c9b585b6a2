package rest

import (
	"math"
	"time"

	"github.com/cousoworks/tech-store/internal/entity"
)

// Wire DTOs keep the API's Spanish field names out of the entity layer.

type articuloDTO struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Cantidad    int64   `json:"cantidad"`
	Precio      float64 `json:"precio"`
	Creado      string  `json:"fecha_creacion"`
	Actualizado string  `json:"fecha_actualizacion"`
}

type articuloCrearDTO struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Cantidad    int64   `json:"cantidad"`
	Precio      float64 `json:"precio"`
}

type articuloActualizarDTO struct {
	Nombre      *string  `json:"nombre,omitempty"`
	Descripcion *string  `json:"descripcion,omitempty"`
	Cantidad    *int64   `json:"cantidad,omitempty"`
	Precio      *float64 `json:"precio,omitempty"`
}

type usuarioDTO struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Nombre       string `json:"nombre"`
	Apellidos    string `json:"apellidos"`
	Rol          string `json:"rol"`
	Activo       bool   `json:"activo"`
	Creado       string `json:"fecha_creacion"`
	UltimoAcceso string `json:"fecha_ultimo_acceso"`
}

type tokenDTO struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	Usuario     usuarioDTO `json:"usuario"`
}

type itemPedidoDTO struct {
	ArticuloID int64 `json:"articulo_id"`
	Cantidad   int64 `json:"cantidad"`
}

type pedidoCrearDTO struct {
	Items          []itemPedidoDTO `json:"items"`
	DireccionEnvio string          `json:"direccion_envio,omitempty"`
	Notas          string          `json:"notas,omitempty"`
}

type pedidoItemDTO struct {
	ArticuloID     int64   `json:"articulo_id"`
	NombreArticulo string  `json:"nombre_articulo"`
	Cantidad       int64   `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Subtotal       float64 `json:"subtotal"`
}

type pedidoDTO struct {
	ID             int64           `json:"id"`
	UsuarioID      int64           `json:"usuario_id"`
	UsuarioEmail   string          `json:"usuario_email"`
	Total          float64         `json:"total"`
	Estado         string          `json:"estado"`
	FechaPedido    string          `json:"fecha_pedido"`
	Actualizado    string          `json:"fecha_actualizacion"`
	DireccionEnvio string          `json:"direccion_envio"`
	Notas          string          `json:"notas"`
	Items          []pedidoItemDTO `json:"items"`
}

// eurosToCents converts the API's float euro amounts to minor units once, at
// the boundary.
func eurosToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func centsToEuros(m entity.Money) float64 {
	return float64(m.Cents) / 100
}

// parseTime copes with the API's timestamp rendering (ISO 8601, with or
// without offset or fractional seconds). Unparseable values become zero.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (d articuloDTO) toEntity() entity.Product {
	return entity.Product{
		ID:          d.ID,
		Name:        d.Nombre,
		Description: d.Descripcion,
		Stock:       d.Cantidad,
		Price:       entity.EUR(eurosToCents(d.Precio)),
		CreatedAt:   parseTime(d.Creado),
		UpdatedAt:   parseTime(d.Actualizado),
	}
}

func (d usuarioDTO) toEntity() entity.User {
	return entity.User{
		ID:         d.ID,
		Email:      d.Email,
		Name:       d.Nombre,
		Surname:    d.Apellidos,
		Role:       entity.Role(d.Rol),
		Active:     d.Activo,
		CreatedAt:  parseTime(d.Creado),
		LastAccess: parseTime(d.UltimoAcceso),
	}
}

func (d pedidoDTO) toEntity() entity.Order {
	o := entity.Order{
		ID:              d.ID,
		UserID:          d.UsuarioID,
		UserEmail:       d.UsuarioEmail,
		Total:           entity.EUR(eurosToCents(d.Total)),
		Status:          entity.OrderStatus(d.Estado),
		PlacedAt:        parseTime(d.FechaPedido),
		UpdatedAt:       parseTime(d.Actualizado),
		ShippingAddress: d.DireccionEnvio,
		Notes:           d.Notas,
	}
	for _, it := range d.Items {
		o.Items = append(o.Items, entity.OrderItem{
			ProductID:   it.ArticuloID,
			ProductName: it.NombreArticulo,
			Quantity:    it.Cantidad,
			UnitPrice:   entity.EUR(eurosToCents(it.PrecioUnitario)),
			Subtotal:    entity.EUR(eurosToCents(it.Subtotal)),
		})
	}
	return o
}
