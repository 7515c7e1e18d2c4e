// Package client es el cliente Go de la API de Fudge!: servicios de auth y dulces,
// interceptores de petición/respuesta y una sesión persistente.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL URL base usada si New recibe una cadena vacía.
const DefaultBaseURL = "http://localhost:1417/api"

// maxBody tope de lectura de una respuesta (el reporte PDF incluido).
const maxBody = 16 << 20

// APIError respuesta fallida de la API, con el mensaje del servidor.
type APIError struct {
	Status  int      // 0 si la petición no llegó al servidor
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "fudge: " + e.Message
	}
	return fmt.Sprintf("fudge: %d %s", e.Status, e.Message)
}

// IsUnauthorized indica si err es un 401 de la API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// tokenHolder lo implementa *Session.
type tokenHolder interface {
	Token() string
	clear()
}

// Client cliente HTTP de la API. Seguro para uso concurrente.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        tokenHolder
	onUnauthorized func()
	notify         func(*APIError)

	auth   *AuthService
	sweets *SweetsService
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (timeout de 15 s por defecto).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithOnUnauthorized hook invocado tras un 401, después de limpiar la sesión.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithNotify hook invocado con cada error distinto de 401.
func WithNotify(fn func(*APIError)) Option {
	return func(c *Client) { c.notify = fn }
}

// New construye el cliente. baseURL incluye el prefijo /api.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.auth = &AuthService{c: c}
	c.sweets = &SweetsService{c: c}
	return c
}

// Auth servicio de autenticación.
func (c *Client) Auth() *AuthService { return c.auth }

// Sweets servicio del catálogo.
func (c *Client) Sweets() *SweetsService { return c.sweets }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

// do envía la petición y decodifica data en out (si no es nil). Devuelve el message del sobre.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (string, error) {
	raw, _, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return "", err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", c.fail(&APIError{Status: http.StatusOK, Message: "invalid response body"})
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env.Message, fmt.Errorf("fudge: decodificar data: %w", err)
		}
	}
	return env.Message, nil
}

// send ejecuta la petición con los interceptores. Un status >= 400 se convierte en *APIError.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, http.Header, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("fudge: serializar request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, nil, fmt.Errorf("fudge: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.session != nil {
		if tok := c.session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, c.fail(&APIError{Message: "Network error"})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, nil, c.fail(&APIError{Status: resp.StatusCode, Message: "Network error"})
	}
	if resp.StatusCode < http.StatusBadRequest {
		return raw, resp.Header, nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: "An error occurred"}
	var env envelope
	if json.Unmarshal(raw, &env) == nil {
		if env.Message != "" {
			apiErr.Message = env.Message
		}
		apiErr.Errors = env.Errors
	}
	return nil, nil, c.fail(apiErr)
}

// fail aplica el interceptor de respuesta: 401 limpia la sesión y avisa a OnUnauthorized,
// cualquier otro error va a Notify.
func (c *Client) fail(apiErr *APIError) error {
	if apiErr.Status == http.StatusUnauthorized {
		if c.session != nil {
			c.session.clear()
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}
	if c.notify != nil {
		c.notify(apiErr)
	}
	return apiErr
}
