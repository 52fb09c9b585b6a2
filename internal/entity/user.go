package entity

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "cliente"
)

type User struct {
	ID         int64
	Email      string
	Name       string
	Surname    string
	Role       Role
	Active     bool
	CreatedAt  time.Time
	LastAccess time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// DisplayName is "Name Surname" with the surname omitted when absent.
func (u User) DisplayName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// Session couples the authenticated user with the bearer credential the
// server issued for it. Owned exclusively by the session store.
type Session struct {
	User      User
	Token     string
	TokenType string
}

// RegisterForm carries everything the registration screen collects. The
// confirmation field is validated locally and never leaves the client.
type RegisterForm struct {
	Email           string
	Name            string
	Surname         string
	Password        string
	ConfirmPassword string
}
