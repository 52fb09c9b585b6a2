package usecase

import (
	"errors"
	"sync"

	"github.com/cousoworks/tech-store/internal/entity"
)

// ErrUnknownProduct means the requested id is not in the current catalog
// snapshot, so there is no stock figure to clamp against.
var ErrUnknownProduct = errors.New("product not in catalog")

// ProductSource is the catalog join the cart reads through. The cart itself
// stores identifiers and desired quantities only — never price or stock —
// so a catalog reload is reflected on the very next read.
type ProductSource interface {
	Product(id int64) (entity.Product, bool)
}

// Line is a cart line joined with the current product snapshot for display.
// InCatalog is false when the product has vanished since it was added; such
// a line contributes nothing to the price total.
type Line struct {
	ProductID int64
	Quantity  int64
	Product   entity.Product
	InCatalog bool
}

// Cart is the desired-quantity map, insertion-ordered for display
// stability, with at most one line per product. Every write clamps against
// the live stock figure; truncating an over-ask is intended behavior, not
// an error.
type Cart struct {
	mu    sync.Mutex
	src   ProductSource
	lines []cartLine
	index map[int64]int
}

type cartLine struct {
	productID int64
	quantity  int64
}

func NewCart(src ProductSource) *Cart {
	return &Cart{src: src, index: make(map[int64]int)}
}

// Add puts qty more units of the product in the cart, clamped to its stock.
// It returns the resulting line quantity so the UI can show a truncation.
func (c *Cart) Add(productID, qty int64) (int64, error) {
	p, ok := c.src.Product(productID)
	if !ok {
		return 0, ErrUnknownProduct
	}
	if qty <= 0 {
		return c.Quantity(productID), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[productID]; ok {
		q := clamp(c.lines[i].quantity+qty, p.Stock)
		if q == 0 {
			// The product sold out since the line was created.
			c.removeLocked(productID)
			return 0, nil
		}
		c.lines[i].quantity = q
		return q, nil
	}
	q := clamp(qty, p.Stock)
	if q == 0 {
		// Out-of-stock product: no line is created.
		return 0, nil
	}
	c.index[productID] = len(c.lines)
	c.lines = append(c.lines, cartLine{productID: productID, quantity: q})
	return q, nil
}

// SetQuantity replaces the desired quantity. Zero or less removes the line;
// anything above stock is clamped down to it.
func (c *Cart) SetQuantity(productID, qty int64) (int64, error) {
	if qty <= 0 {
		c.Remove(productID)
		return 0, nil
	}
	p, ok := c.src.Product(productID)
	if !ok {
		return 0, ErrUnknownProduct
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	q := clamp(qty, p.Stock)
	if i, ok := c.index[productID]; ok {
		if q == 0 {
			c.removeLocked(productID)
			return 0, nil
		}
		c.lines[i].quantity = q
		return q, nil
	}
	if q == 0 {
		return 0, nil
	}
	c.index[productID] = len(c.lines)
	c.lines = append(c.lines, cartLine{productID: productID, quantity: q})
	return q, nil
}

// Remove drops the line. No-op when the product is not in the cart.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID int64) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].productID] = j
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[int64]int)
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Quantity returns the desired quantity for one product, 0 when absent.
func (c *Cart) Quantity(productID int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[productID]; ok {
		return c.lines[i].quantity
	}
	return 0
}

// TotalItems is the sum of desired quantities across all lines.
func (c *Cart) TotalItems() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, l := range c.lines {
		n += l.quantity
	}
	return n
}

// TotalPrice is recomputed against the current catalog snapshot on every
// call: a price change lands in the total on the next read without the cart
// being touched.
func (c *Cart) TotalPrice() entity.Money {
	total := entity.EUR(0)
	for _, l := range c.Lines() {
		if l.InCatalog {
			total = total.Add(l.Product.Price.Mul(l.Quantity))
		}
	}
	return total
}

// Lines returns the joined display view in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	snapshot := make([]cartLine, len(c.lines))
	copy(snapshot, c.lines)
	c.mu.Unlock()

	out := make([]Line, 0, len(snapshot))
	for _, l := range snapshot {
		p, ok := c.src.Product(l.productID)
		out = append(out, Line{
			ProductID: l.productID,
			Quantity:  l.quantity,
			Product:   p,
			InCatalog: ok,
		})
	}
	return out
}

// Draft builds the order payload: identifiers and quantities only.
func (c *Cart) Draft(address, notes string) entity.OrderDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft := entity.OrderDraft{ShippingAddress: address, Notes: notes}
	for _, l := range c.lines {
		draft.Items = append(draft.Items, entity.OrderDraftItem{
			ProductID: l.productID,
			Quantity:  l.quantity,
		})
	}
	return draft
}

func clamp(qty, stock int64) int64 {
	if qty > stock {
		return stock
	}
	return qty
}
