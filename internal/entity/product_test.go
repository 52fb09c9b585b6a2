package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "12,34 €", EUR(1234).String())
	assert.Equal(t, "0,05 €", EUR(5).String())
	assert.Equal(t, "1299,00 €", EUR(129900).String())
	assert.Equal(t, "-3,50 €", EUR(-350).String())
}

func TestMoneyArithmetic(t *testing.T) {
	total := EUR(1999).Mul(3).Add(EUR(499))
	assert.Equal(t, int64(6496), total.Cents)
	assert.Equal(t, "EUR", total.Currency)
}

func TestProductStockPredicates(t *testing.T) {
	assert.False(t, Product{Stock: 0}.InStock())
	assert.True(t, Product{Stock: 1}.InStock())

	assert.False(t, Product{Stock: 0}.LowStock())
	assert.True(t, Product{Stock: 5}.LowStock())
	assert.False(t, Product{Stock: 6}.LowStock())
}

func TestProductMatches(t *testing.T) {
	p := Product{Name: "Teclado Mecánico", Description: "Switches rojos, RGB"}
	assert.True(t, p.Matches("teclado"))
	assert.True(t, p.Matches("RGB"))
	assert.True(t, p.Matches(""))
	assert.False(t, p.Matches("ratón"))
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ana García", User{Name: "Ana", Surname: "García"}.DisplayName())
	assert.Equal(t, "Ana", User{Name: "Ana"}.DisplayName())
}

func TestIsStatus(t *testing.T) {
	err := &CatalogError{Message: "catalog unavailable", Err: &StatusError{Code: 404, Message: "no"}}
	assert.True(t, IsStatus(err, 404))
	assert.True(t, IsStatus(err, 404, 409))
	assert.False(t, IsStatus(err, 500))
	assert.False(t, IsStatus(nil, 404))
}
