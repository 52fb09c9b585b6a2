package usecase

import (
	"context"

	"github.com/cousoworks/tech-store/internal/entity"
	"github.com/cousoworks/tech-store/internal/logging"
)

// SessionReader is the read-only session view the admin model guards with.
type SessionReader interface {
	Current() (entity.Session, bool)
}

// Admin is the inventory editor. The server enforces authorization; the
// local role check just fails fast with the same taxonomy so the UI prompts
// for re-authentication instead of retrying. Mutations never auto-refresh
// the catalog — that is the caller's job.
type Admin struct {
	inventory InventoryAPI
	orders    OrderAPI
	sessions  SessionReader
}

func NewAdmin(inventory InventoryAPI, orders OrderAPI, sessions SessionReader) *Admin {
	return &Admin{inventory: inventory, orders: orders, sessions: sessions}
}

func (a *Admin) requireAdmin() error {
	sess, ok := a.sessions.Current()
	if !ok {
		return &entity.AuthError{Message: "sign in with an administrator account"}
	}
	if !sess.User.IsAdmin() {
		return &entity.AuthError{Message: "administrator privileges required"}
	}
	return nil
}

func (a *Admin) CreateProduct(ctx context.Context, draft entity.ProductDraft) (entity.Product, error) {
	if err := a.requireAdmin(); err != nil {
		return entity.Product{}, err
	}
	p, err := a.inventory.CreateProduct(ctx, draft)
	if err != nil {
		return entity.Product{}, classifyAPIError(err)
	}
	logging.FromCtx(ctx).Info("product created", "id", p.ID, "name", p.Name)
	return p, nil
}

func (a *Admin) UpdateProduct(ctx context.Context, id int64, patch entity.ProductPatch) (entity.Product, error) {
	if err := a.requireAdmin(); err != nil {
		return entity.Product{}, err
	}
	p, err := a.inventory.UpdateProduct(ctx, id, patch)
	if err != nil {
		return entity.Product{}, classifyAPIError(err)
	}
	return p, nil
}

// DeleteProduct is irreversible at the server boundary. Asking the operator
// "are you sure" is the caller's policy, not enforced here.
func (a *Admin) DeleteProduct(ctx context.Context, id int64) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.inventory.DeleteProduct(ctx, id); err != nil {
		return classifyAPIError(err)
	}
	logging.FromCtx(ctx).Info("product deleted", "id", id)
	return nil
}

func (a *Admin) ListUsers(ctx context.Context) ([]entity.User, error) {
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	users, err := a.inventory.ListUsers(ctx)
	if err != nil {
		return nil, classifyAPIError(err)
	}
	return users, nil
}

// SetOrderStatus moves an order along its lifecycle.
func (a *Admin) SetOrderStatus(ctx context.Context, id int64, status entity.OrderStatus) (entity.Order, error) {
	if err := a.requireAdmin(); err != nil {
		return entity.Order{}, err
	}
	o, err := a.orders.SetOrderStatus(ctx, id, status)
	if err != nil {
		return entity.Order{}, classifyAPIError(err)
	}
	return o, nil
}
