package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fudge-api/internal/application/auth"
	"github.com/jhoicas/fudge-api/internal/application/dto"
	"github.com/jhoicas/fudge-api/internal/application/inventory"
	"github.com/jhoicas/fudge-api/internal/application/report"
	"github.com/jhoicas/fudge-api/internal/application/seed"
	"github.com/jhoicas/fudge-api/internal/application/usecase"
	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
	"github.com/jhoicas/fudge-api/internal/domain/repository"
	"github.com/jhoicas/fudge-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/fudge-api/internal/interfaces/http"
	"github.com/jhoicas/fudge-api/pkg/logger"
)

// spySweetRepo cuenta cada llamada al repositorio de dulces.
type spySweetRepo struct {
	repository.SweetRepository
	calls int
}

func (s *spySweetRepo) Create(ctx context.Context, sweet *entity.Sweet) error {
	s.calls++
	return s.SweetRepository.Create(ctx, sweet)
}

func (s *spySweetRepo) GetByID(ctx context.Context, id string) (*entity.Sweet, error) {
	s.calls++
	return s.SweetRepository.GetByID(ctx, id)
}

func (s *spySweetRepo) Update(ctx context.Context, id string, patch repository.SweetPatch) (*entity.Sweet, error) {
	s.calls++
	return s.SweetRepository.Update(ctx, id, patch)
}

func (s *spySweetRepo) Delete(ctx context.Context, id string) error {
	s.calls++
	return s.SweetRepository.Delete(ctx, id)
}

func (s *spySweetRepo) List(ctx context.Context, f repository.SweetFilter, limit, offset int) ([]*entity.Sweet, int, error) {
	s.calls++
	return s.SweetRepository.List(ctx, f, limit, offset)
}

type stubReportGen struct{}

func (stubReportGen) GenerateStockReport(_ context.Context, r *report.StockReport) ([]byte, error) {
	return []byte(fmt.Sprintf("%%PDF-stub %d", len(r.Items))), nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

type testEnv struct {
	t          *testing.T
	app        *fiber.App
	users      *memory.UserRepo
	spy        *spySweetRepo
	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	store := memory.NewStore()
	spy := &spySweetRepo{SweetRepository: store.Sweets()}

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "fudge-test", BcryptCost: bcrypt.MinCost,
	})
	app := apphttp.NewApp(apphttp.ServerConfig{AppName: "fudge-test"}, logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		SweetUC:       usecase.NewSweetUseCase(spy, 14),
		InventoryUC:   inventory.NewUseCase(store.TxRunner(), spy, store.Movements(), 14),
		ReportUC:      report.NewUseCase(spy, stubReportGen{}, 5),
		AuthRateLimit: rateLimit,
	})

	env := &testEnv{t: t, app: app, users: store.Users(), spy: spy}
	if rateLimit == 0 {
		seeder := seed.NewSeeder(store.Users(), store.Sweets(), bcrypt.MinCost)
		_, err := seeder.Admin(context.Background(), seed.AdminInput{Username: "admin", Email: "admin@fudge.test", Password: "admin123"})
		require.NoError(t, err)
		env.adminToken = env.token(env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "admin@fudge.test", "password": "admin123"}))
		env.userToken = env.token(env.do(http.MethodPost, "/api/auth/register", "", map[string]any{"username": "alice", "email": "alice@fudge.test", "password": "secret1"}))
	}
	return env
}

type result struct {
	status int
	env    envelope
	header http.Header
	raw    []byte
}

func (e *testEnv) do(method, path, token string, body any) result {
	e.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	r := result{status: resp.StatusCode, header: resp.Header, raw: raw}
	if resp.Header.Get("Content-Type") != "application/pdf" {
		require.NoError(e.t, json.Unmarshal(raw, &r.env), string(raw))
	}
	return r
}

func (e *testEnv) token(r result) string {
	e.t.Helper()
	require.True(e.t, r.env.Success, r.env.Message)
	var out dto.AuthResponse
	require.NoError(e.t, json.Unmarshal(r.env.Data, &out))
	return out.Token
}

func (e *testEnv) createSweet(name, category string, price float64, qty int) dto.SweetResponse {
	e.t.Helper()
	r := e.do(http.MethodPost, "/api/sweets", e.adminToken, map[string]any{
		"name": name, "category": category, "price": price, "quantity": qty,
	})
	require.Equal(e.t, fiber.StatusCreated, r.status, r.env.Message)
	var s dto.SweetResponse
	require.NoError(e.t, json.Unmarshal(r.env.Data, &s))
	return s
}

func (e *testEnv) quantity(id string) int {
	e.t.Helper()
	r := e.do(http.MethodGet, "/api/sweets/"+id, e.userToken, nil)
	require.Equal(e.t, fiber.StatusOK, r.status)
	var s dto.SweetResponse
	require.NoError(e.t, json.Unmarshal(r.env.Data, &s))
	return s.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmailDuplicadoNoCreaSegundoRegistro(t *testing.T) {
	env := newTestEnv(t, 0)
	before := env.users.Count()

	r := env.do(http.MethodPost, "/api/auth/register", "", map[string]any{"username": "alice2", "email": "ALICE@fudge.test", "password": "secret1"})
	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Equal(t, "User with this email already exists", r.env.Message)
	assert.Equal(t, before, env.users.Count())
}

func TestRegister_IgnoraRolDelCliente(t *testing.T) {
	env := newTestEnv(t, 0)
	r := env.do(http.MethodPost, "/api/auth/register", "", map[string]any{"username": "mallory", "email": "m@fudge.test", "password": "secret1", "role": "admin"})
	require.Equal(t, fiber.StatusCreated, r.status)
	assert.Equal(t, "User registered successfully", r.env.Message)

	var out dto.AuthResponse
	require.NoError(t, json.Unmarshal(r.env.Data, &out))
	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.NotEmpty(t, out.Token)
}

func TestRegister_ValidacionDevuelveErrores(t *testing.T) {
	env := newTestEnv(t, 0)
	r := env.do(http.MethodPost, "/api/auth/register", "", map[string]any{"username": "al", "email": "nope", "password": "123"})
	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.False(t, r.env.Success)
	assert.Len(t, r.env.Errors, 3)
}

func TestLogin_TokenResuelveAlMismoUsuario(t *testing.T) {
	env := newTestEnv(t, 0)
	reg := env.do(http.MethodPost, "/api/auth/register", "", map[string]any{"username": "bob", "email": "bob@fudge.test", "password": "secret1"})
	var registered dto.AuthResponse
	require.NoError(t, json.Unmarshal(reg.env.Data, &registered))

	tok := env.token(env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "Bob@Fudge.test", "password": "secret1"}))
	me := env.do(http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, fiber.StatusOK, me.status)

	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(me.env.Data, &user))
	assert.Equal(t, registered.User.ID, user.ID)
	assert.NotContains(t, string(me.raw), "password")
}

func TestLogin_PasswordIncorrectoYEmailDesconocidoIguales(t *testing.T) {
	env := newTestEnv(t, 0)
	wrong := env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "alice@fudge.test", "password": "wrong-pass"})
	unknown := env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ghost@fudge.test", "password": "wrong-pass"})

	assert.Equal(t, fiber.StatusUnauthorized, wrong.status)
	assert.Equal(t, wrong.status, unknown.status)
	assert.Equal(t, wrong.env, unknown.env)
	assert.Equal(t, "Invalid credentials", wrong.env.Message)

	malformed := env.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "no-es-email", "password": ""})
	assert.Equal(t, fiber.StatusUnauthorized, malformed.status)
	assert.Equal(t, wrong.env, malformed.env)
}

func TestAuthRateLimit(t *testing.T) {
	env := newTestEnv(t, 2)
	body := map[string]any{"email": "ghost@fudge.test", "password": "whatever"}
	assert.Equal(t, fiber.StatusUnauthorized, env.do(http.MethodPost, "/api/auth/login", "", body).status)
	assert.Equal(t, fiber.StatusUnauthorized, env.do(http.MethodPost, "/api/auth/login", "", body).status)
	r := env.do(http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, fiber.StatusTooManyRequests, r.status)
	assert.False(t, r.env.Success)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestSweets_RequiereToken(t *testing.T) {
	env := newTestEnv(t, 0)
	r := env.do(http.MethodGet, "/api/sweets", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, r.status)
	assert.Equal(t, "Access token required", r.env.Message)
}

func TestSweets_PaginacionLimitUno(t *testing.T) {
	env := newTestEnv(t, 0)
	first := env.createSweet("Caramel Chocolate", "chocolate", 2.5, 10)
	env.createSweet("Sour Worms", "gummy", 1.1, 5)

	r := env.do(http.MethodGet, "/api/sweets?limit=1", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, r.status)
	var page dto.PageResult[dto.SweetResponse]
	require.NoError(t, json.Unmarshal(r.env.Data, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, first.ID, page.Data[0].ID, "orden de inserción")
	assert.Equal(t, dto.Pagination{Page: 1, Limit: 1, Total: 2, Pages: 2}, page.Pagination)

	r = env.do(http.MethodGet, "/api/sweets?page=abc&limit=-3", env.userToken, nil)
	require.NoError(t, json.Unmarshal(r.env.Data, &page))
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 14, page.Pagination.Limit)
}

func TestSweets_BusquedaCategoriaYNombre(t *testing.T) {
	env := newTestEnv(t, 0)
	match := env.createSweet("Caramel Chocolate", "chocolate", 2.5, 10)
	env.createSweet("Dark Chocolate", "chocolate", 3, 10)
	env.createSweet("Caramel Chews", "toffee", 1, 10)

	r := env.do(http.MethodGet, "/api/sweets/search?category=chocolate&name=car", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, "Search results retrieved successfully", r.env.Message)
	var page dto.PageResult[dto.SweetResponse]
	require.NoError(t, json.Unmarshal(r.env.Data, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, match.ID, page.Data[0].ID)

	r = env.do(http.MethodGet, "/api/sweets/search?minPrice=1&maxPrice=2.5", env.userToken, nil)
	require.NoError(t, json.Unmarshal(r.env.Data, &page))
	assert.Equal(t, 2, page.Pagination.Total, "límites inclusivos")
}

func TestSweets_BusquedaPrecioInvalido(t *testing.T) {
	env := newTestEnv(t, 0)
	r := env.do(http.MethodGet, "/api/sweets/search?minPrice=cheap", env.userToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, r.status)
}

func TestSweets_CrearInvalidoDevuelveErrores(t *testing.T) {
	env := newTestEnv(t, 0)
	r := env.do(http.MethodPost, "/api/sweets", env.adminToken, map[string]any{"name": "", "category": "cake", "price": 0, "quantity": -1})
	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Len(t, r.env.Errors, 4)
}

func TestSweets_UpdateYDeleteIDDesconocido(t *testing.T) {
	env := newTestEnv(t, 0)
	for _, id := range []string{"00000000-0000-0000-0000-000000000099", "not-a-uuid"} {
		r := env.do(http.MethodPut, "/api/sweets/"+id, env.adminToken, map[string]any{"name": "X"})
		assert.Equal(t, fiber.StatusNotFound, r.status, id)
		assert.Equal(t, "Sweet not found", r.env.Message)

		r = env.do(http.MethodDelete, "/api/sweets/"+id, env.adminToken, nil)
		assert.Equal(t, fiber.StatusNotFound, r.status, id)
	}
}

func TestSweets_UpdateParcialPorPutYPost(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Vanilla Fudge", "fudge", 2.8, 15)

	r := env.do(http.MethodPut, "/api/sweets/"+s.ID, env.adminToken, map[string]any{"price": 3.1})
	require.Equal(t, fiber.StatusOK, r.status)
	r = env.do(http.MethodPost, "/api/sweets/"+s.ID, env.adminToken, map[string]any{"description": "Clotted cream"})
	require.Equal(t, fiber.StatusOK, r.status)

	var got dto.SweetResponse
	require.NoError(t, json.Unmarshal(r.env.Data, &got))
	assert.Equal(t, "Vanilla Fudge", got.Name)
	assert.Equal(t, "3.1", got.Price.String())
	assert.Equal(t, "Clotted cream", got.Description)
	assert.Equal(t, 15, got.Quantity)

	r = env.do(http.MethodPut, "/api/sweets/"+s.ID, env.adminToken, map[string]any{"category": "cake"})
	assert.Equal(t, fiber.StatusBadRequest, r.status, "el registro fusionado se valida")
}

func TestSweets_BorradoNoSeEncuentraDespues(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Mint Drops", "mint", 1, 1)

	r := env.do(http.MethodDelete, "/api/sweets/"+s.ID, env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, "Sweet deleted successfully", r.env.Message)

	r = env.do(http.MethodGet, "/api/sweets/"+s.ID, env.userToken, nil)
	assert.Equal(t, fiber.StatusNotFound, r.status)
}

func TestSweets_NoAdminRecibe403SinTocarDatos(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Almond Nougat", "nougat", 3.6, 3)
	before := env.spy.calls

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/sweets"},
		{http.MethodPut, "/api/sweets/" + s.ID},
		{http.MethodPost, "/api/sweets/" + s.ID},
		{http.MethodDelete, "/api/sweets/" + s.ID},
		{http.MethodPost, "/api/sweets/" + s.ID + "/restock"},
		{http.MethodGet, "/api/sweets/" + s.ID + "/movements"},
		{http.MethodGet, "/api/sweets/report"},
	}
	for _, tc := range cases {
		r := env.do(tc.method, tc.path, env.userToken, map[string]any{"name": "Hacked", "category": "other", "price": 1, "quantity": 99})
		assert.Equal(t, fiber.StatusForbidden, r.status, tc.method+" "+tc.path)
		assert.Equal(t, "Admin access required", r.env.Message)
	}
	assert.Equal(t, before, env.spy.calls, "el repositorio no se consulta")
	assert.Equal(t, 3, env.quantity(s.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchase_DescuentaYFallaSinStock(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Caramel Chocolate", "chocolate", 2.5, 10)

	r := env.do(http.MethodPost, "/api/sweets/"+s.ID+"/purchase", env.userToken, map[string]any{"quantity": 4})
	require.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, "Successfully purchased 4 Caramel Chocolate(s)", r.env.Message)
	assert.Equal(t, 6, env.quantity(s.ID))

	r = env.do(http.MethodPost, "/api/sweets/"+s.ID+"/purchase", env.userToken, map[string]any{"quantity": 7})
	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Equal(t, "Insufficient quantity in stock", r.env.Message)
	assert.Equal(t, 6, env.quantity(s.ID))
}

func TestPurchase_CantidadPorQueryYPorDefecto(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Sour Worms", "gummy", 1.1, 10)

	r := env.do(http.MethodPost, "/api/sweets/"+s.ID+"/purchase", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, 9, env.quantity(s.ID))

	r = env.do(http.MethodPost, "/api/sweets/"+s.ID+"/purchase?quantity=3", env.userToken, nil)
	require.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, 6, env.quantity(s.ID))
}

func TestPurchase_CantidadInvalida(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Sour Worms", "gummy", 1.1, 10)

	for _, path := range []string{"/purchase?quantity=0", "/purchase?quantity=-2", "/purchase?quantity=dos"} {
		r := env.do(http.MethodPost, "/api/sweets/"+s.ID+path, env.userToken, nil)
		assert.Equal(t, fiber.StatusBadRequest, r.status, path)
		assert.Equal(t, "Invalid quantity", r.env.Message)
	}
	r := env.do(http.MethodPost, "/api/sweets/"+s.ID+"/purchase", env.userToken, map[string]any{"quantity": 1.5})
	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Equal(t, 10, env.quantity(s.ID))
}

func TestPurchase_DulceInexistente(t *testing.T) {
	env := newTestEnv(t, 0)
	r := env.do(http.MethodPost, "/api/sweets/00000000-0000-0000-0000-000000000099/purchase", env.userToken, nil)
	assert.Equal(t, fiber.StatusNotFound, r.status)
}

func TestRestock_SumaYRechazaNoPositivos(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Salted Toffee", "toffee", 2.1, 4)

	r := env.do(http.MethodPost, "/api/sweets/"+s.ID+"/restock", env.adminToken, map[string]any{"quantity": 6})
	require.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, "Successfully restocked 6 Salted Toffee(s)", r.env.Message)
	assert.Equal(t, 10, env.quantity(s.ID))

	for _, body := range []map[string]any{{"quantity": 0}, {"quantity": -5}, {}} {
		r = env.do(http.MethodPost, "/api/sweets/"+s.ID+"/restock", env.adminToken, body)
		assert.Equal(t, fiber.StatusBadRequest, r.status)
		assert.Equal(t, "Invalid quantity", r.env.Message)
	}
	assert.Equal(t, 10, env.quantity(s.ID))
}

func TestRestock_CantidadesFueraDeRango(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Peppermint", "mint", 1.25, 5)

	for _, body := range []map[string]any{{"quantity": int64(math.MaxInt64 - 1)}, {"quantity": int64(math.MaxInt64 - 10)}} {
		r := env.do(http.MethodPost, "/api/sweets/"+s.ID+"/restock", env.adminToken, body)
		assert.Equal(t, fiber.StatusBadRequest, r.status)
		assert.Equal(t, "Invalid quantity", r.env.Message)
	}
	r := env.do(http.MethodPost, "/api/sweets/"+s.ID+"/restock?quantity=9223372036854775807", env.adminToken, nil)
	assert.Equal(t, "Invalid quantity", r.env.Message)

	r = env.do(http.MethodPost, "/api/sweets/"+s.ID+"/restock", env.adminToken, map[string]any{"quantity": entity.MaxQuantity - 4})
	assert.Equal(t, fiber.StatusBadRequest, r.status)
	assert.Equal(t, "Quantity exceeds stock limit", r.env.Message)
	assert.Equal(t, 5, env.quantity(s.ID))
}

func TestSweets_CreateFueraDeLimitesDeAlmacenamiento(t *testing.T) {
	env := newTestEnv(t, 0)
	for _, body := range []map[string]any{
		{"name": "Big", "category": "fudge", "price": 1, "quantity": 3000000000},
		{"name": "Tiny", "category": "fudge", "price": 0.001, "quantity": 1},
		{"name": "Pricey", "category": "fudge", "price": 1e11, "quantity": 1},
	} {
		r := env.do(http.MethodPost, "/api/sweets", env.adminToken, body)
		assert.Equal(t, fiber.StatusBadRequest, r.status, body["name"])
		assert.False(t, r.env.Success)
		assert.NotEmpty(t, r.env.Errors)
	}
}

func TestMovements_MasRecientePrimero(t *testing.T) {
	env := newTestEnv(t, 0)
	s := env.createSweet("Peppermint Creams", "mint", 1.4, 5)
	env.do(http.MethodPost, "/api/sweets/"+s.ID+"/purchase", env.userToken, map[string]any{"quantity": 2})
	env.do(http.MethodPost, "/api/sweets/"+s.ID+"/restock", env.adminToken, map[string]any{"quantity": 7})

	r := env.do(http.MethodGet, "/api/sweets/"+s.ID+"/movements", env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, r.status)
	var page dto.PageResult[dto.MovementResponse]
	require.NoError(t, json.Unmarshal(r.env.Data, &page))
	require.Len(t, page.Data, 2)
	assert.Equal(t, entity.MovementTypeRestock, page.Data[0].Type)
	assert.Equal(t, 10, page.Data[0].ResultingQuantity)
	assert.Equal(t, entity.MovementTypePurchase, page.Data[1].Type)
	assert.Equal(t, 3, page.Data[1].ResultingQuantity)
}

func TestReport_PDFParaAdmin(t *testing.T) {
	env := newTestEnv(t, 0)
	env.createSweet("Almond Nougat", "nougat", 3.6, 3)

	r := env.do(http.MethodGet, "/api/sweets/report", env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, r.status)
	assert.Equal(t, "application/pdf", r.header.Get("Content-Type"))
	assert.Contains(t, r.header.Get("Content-Disposition"), "stock-report-")
	assert.True(t, bytes.HasPrefix(r.raw, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Servidor
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYRutaDesconocida(t *testing.T) {
	env := newTestEnv(t, 0)
	assert.Equal(t, fiber.StatusOK, env.do(http.MethodGet, "/health", "", nil).status)

	r := env.do(http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, fiber.StatusNotFound, r.status)
	assert.Equal(t, "Route not found", r.env.Message)
}

func TestErrorHandler_MapeaErrores(t *testing.T) {
	app := apphttp.NewApp(apphttp.ServerConfig{}, logger.Nop())
	app.Get("/boom", func(*fiber.Ctx) error { return errors.New("boom") })
	app.Get("/panic", func(*fiber.Ctx) error { panic("boom") })
	app.Get("/dup", func(*fiber.Ctx) error { return fmt.Errorf("insert: %w", domain.ErrDuplicate) })
	app.Get("/invalid", func(*fiber.Ctx) error { return domain.NewValidationError("name is required") })
	app.Get("/missing", func(*fiber.Ctx) error { return fmt.Errorf("get: %w", domain.ErrNotFound) })

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/boom", fiber.StatusInternalServerError, "Server Error"},
		{"/panic", fiber.StatusInternalServerError, "Server Error"},
		{"/dup", fiber.StatusBadRequest, "Duplicate field value entered"},
		{"/invalid", fiber.StatusBadRequest, "name is required"},
		{"/missing", fiber.StatusNotFound, "Resource not found"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.Equal(t, tc.message, env.Message, tc.path)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	}
}
