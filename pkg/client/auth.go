package client

import (
	"context"
	"net/http"
)

// AuthService endpoints de /auth.
type AuthService struct {
	c *Client
}

// Login inicia sesión. No modifica la sesión; para eso usar Session.Login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if _, err := s.c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register crea una cuenta. El servidor ignora role; se envía solo si no está vacío.
func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (*AuthResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	var out AuthResult
	if _, err := s.c.do(ctx, http.MethodPost, "/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me devuelve el usuario del token actual.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var out User
	if _, err := s.c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
