package usecase

import (
	"context"
	"errors"

	"github.com/cousoworks/tech-store/internal/entity"
)

// Ports onto the remote store API. The rest adapter satisfies all of them;
// tests swap in fakes.

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (entity.Session, error)
	Register(ctx context.Context, email, name, surname, password string) (entity.Session, error)
	Profile(ctx context.Context) (entity.User, error)
}

type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetStatistics(ctx context.Context) (entity.Statistics, error)
	Ping(ctx context.Context) (string, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, draft entity.OrderDraft, idemKey string) (entity.Order, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)
	GetOrder(ctx context.Context, id int64) (entity.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status entity.OrderStatus) (entity.Order, error)
}

type InventoryAPI interface {
	CreateProduct(ctx context.Context, draft entity.ProductDraft) (entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch entity.ProductPatch) (entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]entity.User, error)
}

// SessionVault is the durable token+profile pair storage.
type SessionVault interface {
	Save(entity.Session) error
	Load() (entity.Session, error)
	Clear() error
}

// classifyAPIError sorts an adapter error into the client taxonomy. Local
// validation never comes through here; catalog loads wrap the result once
// more into CatalogError.
func classifyAPIError(err error) error {
	var te *entity.TransportError
	if errors.As(err, &te) {
		return err
	}
	if se, ok := entity.AsStatus(err); ok {
		switch se.Code {
		case 401, 403:
			return &entity.AuthError{Message: se.Message}
		case 404, 409, 422:
			return &entity.ConflictError{Message: se.Message}
		default:
			return &entity.TransportError{Message: se.Message}
		}
	}
	return err
}
