package rest

import (
	"context"
	"net/http"

	"github.com/cousoworks/tech-store/internal/entity"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registroReq struct {
	Email     string `json:"email"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos,omitempty"`
	Password  string `json:"password"`
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (entity.Session, error) {
	var dto tokenDTO
	err := c.do(ctx, http.MethodPost, "/api/auth/login", false, loginReq{Email: email, Password: password}, &dto)
	if err != nil {
		return entity.Session{}, err
	}
	return sessionFrom(dto), nil
}

// Register creates an account and logs it in in one call, mirroring Login's
// response shape.
func (c *Client) Register(ctx context.Context, email, name, surname, password string) (entity.Session, error) {
	var dto tokenDTO
	req := registroReq{Email: email, Nombre: name, Apellidos: surname, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/registro", false, req, &dto); err != nil {
		return entity.Session{}, err
	}
	return sessionFrom(dto), nil
}

// Profile fetches the user behind the current bearer token. A 401 here means
// the stored session is no longer accepted.
func (c *Client) Profile(ctx context.Context) (entity.User, error) {
	var dto usuarioDTO
	if err := c.do(ctx, http.MethodGet, "/api/auth/perfil", true, nil, &dto); err != nil {
		return entity.User{}, err
	}
	return dto.toEntity(), nil
}

// ListUsers is admin-only on the server side.
func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	var dtos []usuarioDTO
	if err := c.do(ctx, http.MethodGet, "/api/usuarios", true, nil, &dtos); err != nil {
		return nil, err
	}
	users := make([]entity.User, 0, len(dtos))
	for _, d := range dtos {
		users = append(users, d.toEntity())
	}
	return users, nil
}

func sessionFrom(dto tokenDTO) entity.Session {
	return entity.Session{
		User:      dto.Usuario.toEntity(),
		Token:     dto.AccessToken,
		TokenType: dto.TokenType,
	}
}
