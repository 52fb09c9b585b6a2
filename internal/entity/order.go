package entity

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pendiente"
	OrderProcessing OrderStatus = "procesando"
	OrderShipped    OrderStatus = "enviado"
	OrderDelivered  OrderStatus = "entregado"
	OrderCancelled  OrderStatus = "cancelado"
)

// OrderDraft is what the client submits: product identifiers and desired
// quantities only. Prices are never sent; the server is authoritative.
type OrderDraft struct {
	Items           []OrderDraftItem
	ShippingAddress string
	Notes           string
}

type OrderDraftItem struct {
	ProductID int64
	Quantity  int64
}

// Order is the priced order as echoed back by the server.
type Order struct {
	ID              int64
	UserID          int64
	UserEmail       string
	Total           Money
	Status          OrderStatus
	PlacedAt        time.Time
	UpdatedAt       time.Time
	ShippingAddress string
	Notes           string
	Items           []OrderItem
}

type OrderItem struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	UnitPrice   Money
	Subtotal    Money
}
