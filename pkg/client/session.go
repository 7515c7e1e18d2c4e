package client

import (
	"context"
	"sync"
)

// Session usuario y token actuales. Se adjunta al Client en NewSession: desde entonces
// cada petición lleva el Bearer y un 401 la limpia.
type Session struct {
	mu      sync.RWMutex
	client  *Client
	store   Store
	user    *User
	token   string
	loading bool
}

// NewSession carga la sesión guardada en store (si la hay) y la adjunta a c.
// Un store ilegible deja la sesión vacía y devuelve el error.
func NewSession(c *Client, store Store) (*Session, error) {
	if store == nil {
		store = NewMemoryStore()
	}
	s := &Session{client: c, store: store, loading: true}
	c.session = s

	data, err := store.Load()
	s.mu.Lock()
	if err == nil && data != nil && data.Token != "" && data.User != nil {
		s.token = data.Token
		u := *data.User
		s.user = &u
	}
	s.loading = false
	s.mu.Unlock()
	return s, err
}

// User usuario actual o nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token token actual o "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated indica si hay un usuario cargado.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsLoading true mientras se carga el store o hay un login/registro en curso.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Login inicia sesión y persiste el resultado.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	s.setLoading(true)
	defer s.setLoading(false)
	res, err := s.client.Auth().Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.set(res)
}

// Register crea la cuenta, inicia sesión y persiste el resultado.
func (s *Session) Register(ctx context.Context, username, email, password string) (*User, error) {
	s.setLoading(true)
	defer s.setLoading(false)
	res, err := s.client.Auth().Register(ctx, username, email, password, "")
	if err != nil {
		return nil, err
	}
	return s.set(res)
}

// Logout descarta la sesión local y la guardada.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user, s.token = nil, ""
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) set(res *AuthResult) (*User, error) {
	u := res.User
	s.mu.Lock()
	s.user, s.token = &u, res.Token
	s.mu.Unlock()
	if err := s.store.Save(&SessionData{Token: res.Token, User: &u}); err != nil {
		return &u, err
	}
	out := u
	return &out, nil
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// clear lo llama el Client tras un 401.
func (s *Session) clear() {
	s.mu.Lock()
	s.user, s.token = nil, ""
	s.mu.Unlock()
	_ = s.store.Clear()
}
