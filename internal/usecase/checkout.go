package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/cousoworks/tech-store/internal/entity"
	"github.com/cousoworks/tech-store/internal/logging"
)

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutSubmitting
	CheckoutSuccess
	CheckoutFailed
)

var (
	// ErrAuthenticationRequired: the caller must obtain a session first.
	// Checkout refuses without touching the network or the cart.
	ErrAuthenticationRequired = errors.New("sign in to finish your purchase")
	// ErrSubmitInFlight rejects a second submit while one is running, so a
	// double click cannot place two orders.
	ErrSubmitInFlight = errors.New("an order is already being submitted")
	// ErrCartEmpty: nothing to order.
	ErrCartEmpty = errors.New("the cart is empty")
	// ErrConfirmationPending: the previous success has not been dismissed.
	ErrConfirmationPending = errors.New("close the order confirmation first")
)

// SessionGate is the slice of the session store checkout needs.
type SessionGate interface {
	Authenticated() bool
}

// StockRefresher reloads the catalog after a successful order, since stock
// changed server-side.
type StockRefresher interface {
	Load(ctx context.Context) ([]entity.Product, error)
}

// Checkout drives Idle -> Submitting -> {Success, Failed}. Failed goes back
// through Submit (retry); Success is terminal until Reset.
type Checkout struct {
	orders    OrderAPI
	sessions  SessionGate
	cart      *Cart
	refresher StockRefresher

	mu        sync.Mutex
	state     CheckoutState
	idemKey   string
	lastErr   string
	lastOrder *entity.Order
}

func NewCheckout(orders OrderAPI, sessions SessionGate, cart *Cart, refresher StockRefresher) *Checkout {
	return &Checkout{orders: orders, sessions: sessions, cart: cart, refresher: refresher}
}

func (co *Checkout) State() CheckoutState {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.state
}

// LastError is the message of the most recent failure, for inline display.
func (co *Checkout) LastError() string {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.lastErr
}

// LastOrder is the server's priced order from the most recent success.
func (co *Checkout) LastOrder() (entity.Order, bool) {
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.lastOrder == nil {
		return entity.Order{}, false
	}
	return *co.lastOrder, true
}

// Submit places the order built from the current cart lines plus the
// entered address and notes. On success the cart is cleared and the catalog
// reloaded exactly once; on failure both the cart and the form survive for
// a retry. One idempotency key covers all retries of the same cart.
func (co *Checkout) Submit(ctx context.Context, address, notes string) (entity.Order, error) {
	co.mu.Lock()
	switch co.state {
	case CheckoutSubmitting:
		co.mu.Unlock()
		return entity.Order{}, ErrSubmitInFlight
	case CheckoutSuccess:
		co.mu.Unlock()
		return entity.Order{}, ErrConfirmationPending
	}
	if !co.sessions.Authenticated() {
		co.mu.Unlock()
		return entity.Order{}, ErrAuthenticationRequired
	}
	if co.cart.Empty() {
		co.mu.Unlock()
		return entity.Order{}, ErrCartEmpty
	}
	if co.idemKey == "" {
		co.idemKey = uuid.NewString()
	}
	key := co.idemKey
	co.state = CheckoutSubmitting
	co.lastErr = ""
	co.mu.Unlock()

	draft := co.cart.Draft(address, notes)
	order, err := co.orders.CreateOrder(ctx, draft, key)
	if err != nil {
		classified := classifyAPIError(err)
		co.mu.Lock()
		co.state = CheckoutFailed
		co.lastErr = classified.Error()
		co.mu.Unlock()
		return entity.Order{}, classified
	}

	co.mu.Lock()
	co.state = CheckoutSuccess
	co.lastOrder = &order
	co.idemKey = ""
	co.mu.Unlock()

	co.cart.Clear()
	if _, err := co.refresher.Load(ctx); err != nil {
		// The order went through; a failed refresh only leaves stale stock
		// on screen until the next load.
		logging.FromCtx(ctx).Warn("post-order catalog reload failed", "error", err)
	}
	return order, nil
}

// Reset returns to Idle after a dismissed confirmation or an abandoned
// failure.
func (co *Checkout) Reset() {
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.state == CheckoutSubmitting {
		return
	}
	co.state = CheckoutIdle
	co.lastErr = ""
}
