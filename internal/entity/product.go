package entity

import (
	"fmt"
	"strings"
	"time"
)

// Money is an amount in minor units. The wire format of the store API uses
// float euros; conversion happens at the adapter boundary so nothing in the
// core ever does float arithmetic on prices.
type Money struct {
	Cents    int64
	Currency string
}

func EUR(cents int64) Money {
	return Money{Cents: cents, Currency: "EUR"}
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents, Currency: m.Currency}
}

func (m Money) Mul(n int64) Money {
	return Money{Cents: m.Cents * n, Currency: m.Currency}
}

// String renders the amount the way the storefront displays it: "12,34 €".
func (m Money) String() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	sym := "€"
	if m.Currency != "" && m.Currency != "EUR" {
		sym = m.Currency
	}
	return fmt.Sprintf("%s%d,%02d %s", sign, cents/100, cents%100, sym)
}

// Product is a catalog item. It is owned by the remote inventory service;
// the client only observes snapshots and never mutates one in place.
type Product struct {
	ID          int64
	Name        string
	Description string
	Stock       int64
	Price       Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock reports whether the product is purchasable.
func (p Product) InStock() bool { return p.Stock > 0 }

// LowStock mirrors the storefront's "few left" badge threshold.
func (p Product) LowStock() bool { return p.Stock > 0 && p.Stock <= 5 }

// Matches is the client-side search predicate over name and description.
func (p Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// ProductDraft is the payload for creating a product.
type ProductDraft struct {
	Name        string
	Description string
	Stock       int64
	Price       Money
}

// ProductPatch is a partial update; nil fields are left untouched server-side.
type ProductPatch struct {
	Name        *string
	Description *string
	Stock       *int64
	Price       *Money
}
