package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SweetsService endpoints de /sweets.
type SweetsService struct {
	c *Client
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func sweetPath(id string, suffix ...string) string {
	p := "/sweets/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// List página del catálogo; page y limit <= 0 usan los valores del servidor.
func (s *SweetsService) List(ctx context.Context, page, limit int) (*Page[Sweet], error) {
	var out Page[Sweet]
	if _, err := s.c.do(ctx, http.MethodGet, "/sweets", pageQuery(page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search busca por nombre, categoría y rango de precio.
func (s *SweetsService) Search(ctx context.Context, f SearchFilters) (*Page[Sweet], error) {
	q := pageQuery(f.Page, f.Limit)
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", f.MaxPrice.String())
	}
	var out Page[Sweet]
	if _, err := s.c.do(ctx, http.MethodGet, "/sweets/search", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get obtiene un dulce por ID.
func (s *SweetsService) Get(ctx context.Context, id string) (*Sweet, error) {
	var out Sweet
	if _, err := s.c.do(ctx, http.MethodGet, sweetPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create crea un dulce (admin).
func (s *SweetsService) Create(ctx context.Context, in SweetInput) (*Sweet, error) {
	var out Sweet
	if _, err := s.c.do(ctx, http.MethodPost, "/sweets", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update actualiza los campos no nil (admin).
func (s *SweetsService) Update(ctx context.Context, id string, in SweetInput) (*Sweet, error) {
	var out Sweet
	if _, err := s.c.do(ctx, http.MethodPut, sweetPath(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina un dulce (admin).
func (s *SweetsService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, sweetPath(id), nil, nil, nil)
	return err
}

// Purchase compra quantity unidades; quantity <= 0 se envía como 1.
// Devuelve el dulce actualizado y el mensaje del servidor.
func (s *SweetsService) Purchase(ctx context.Context, id string, quantity int) (*Sweet, string, error) {
	if quantity <= 0 {
		quantity = 1
	}
	var out Sweet
	msg, err := s.c.do(ctx, http.MethodPost, sweetPath(id, "purchase"), nil, map[string]int{"quantity": quantity}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// Restock suma quantity unidades (admin).
func (s *SweetsService) Restock(ctx context.Context, id string, quantity int) (*Sweet, string, error) {
	var out Sweet
	msg, err := s.c.do(ctx, http.MethodPost, sweetPath(id, "restock"), nil, map[string]int{"quantity": quantity}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// Movements ledger de un dulce, del más reciente al más antiguo (admin).
func (s *SweetsService) Movements(ctx context.Context, id string, page, limit int) (*Page[Movement], error) {
	var out Page[Movement]
	if _, err := s.c.do(ctx, http.MethodGet, sweetPath(id, "movements"), pageQuery(page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockReport descarga el reporte de stock en PDF (admin).
func (s *SweetsService) StockReport(ctx context.Context) ([]byte, error) {
	raw, header, err := s.c.send(ctx, http.MethodGet, "/sweets/report", nil, nil)
	if err != nil {
		return nil, err
	}
	if ct := header.Get("Content-Type"); ct != "application/pdf" {
		return nil, fmt.Errorf("fudge: content-type inesperado %q", ct)
	}
	return raw, nil
}
