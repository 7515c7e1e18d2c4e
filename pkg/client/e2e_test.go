package client_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fudge-api/internal/application/auth"
	"github.com/jhoicas/fudge-api/internal/application/inventory"
	"github.com/jhoicas/fudge-api/internal/application/report"
	"github.com/jhoicas/fudge-api/internal/application/seed"
	"github.com/jhoicas/fudge-api/internal/application/usecase"
	"github.com/jhoicas/fudge-api/internal/infrastructure/memory"
	"github.com/jhoicas/fudge-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/fudge-api/internal/interfaces/http"
	"github.com/jhoicas/fudge-api/pkg/client"
	"github.com/jhoicas/fudge-api/pkg/logger"
)

// newServer levanta la API completa sobre el store en memoria.
func newServer(t *testing.T) string {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: "e2e-secret", ExpMinutes: 60, Issuer: "fudge-e2e", BcryptCost: bcrypt.MinCost})
	app := apphttp.NewApp(apphttp.ServerConfig{AppName: "fudge-e2e"}, logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		SweetUC:     usecase.NewSweetUseCase(store.Sweets(), 14),
		InventoryUC: inventory.NewUseCase(store.TxRunner(), store.Sweets(), store.Movements(), 14),
		ReportUC:    report.NewUseCase(store.Sweets(), pdf.NewMarotoStockReportGenerator("Fudge!"), 5),
	})
	_, err := seed.NewSeeder(store.Users(), store.Sweets(), bcrypt.MinCost).
		Admin(context.Background(), seed.AdminInput{Username: "admin", Email: "admin@fudge.test", Password: "admin123"})
	require.NoError(t, err)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func TestE2E_AdminCreaYUsuarioCompra(t *testing.T) {
	ctx := context.Background()
	base := newServer(t)

	admin := client.New(base)
	adminSess, err := client.NewSession(admin, client.NewMemoryStore())
	require.NoError(t, err)
	u, err := adminSess.Login(ctx, "admin@fudge.test", "admin123")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	sweet, err := admin.Sweets().Create(ctx, client.SweetInput{
		Name: client.String("Caramel Chocolate"), Category: client.String("chocolate"),
		Price: client.Price("2.50"), Quantity: client.Int(5),
	})
	require.NoError(t, err)

	sessionFile := filepath.Join(t.TempDir(), "session.json")
	shopper := client.New(base)
	sess, err := client.NewSession(shopper, client.NewFileStore(sessionFile))
	require.NoError(t, err)
	_, err = sess.Register(ctx, "alice", "alice@fudge.test", "secret1")
	require.NoError(t, err)

	got, msg, err := shopper.Sweets().Purchase(ctx, sweet.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, "Successfully purchased 2 Caramel Chocolate(s)", msg)

	_, _, err = shopper.Sweets().Restock(ctx, sweet.ID, 10)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)

	found, err := shopper.Sweets().Search(ctx, client.SearchFilters{Category: "chocolate", Name: "car"})
	require.NoError(t, err)
	require.Len(t, found.Data, 1)
	assert.Equal(t, sweet.ID, found.Data[0].ID)

	// la sesión guardada sobrevive a un cliente nuevo
	again, err := client.NewSession(client.New(base), client.NewFileStore(sessionFile))
	require.NoError(t, err)
	assert.Equal(t, "alice", again.User().Username)

	moves, err := admin.Sweets().Movements(ctx, sweet.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, moves.Data, 1)
	assert.Equal(t, "PURCHASE", moves.Data[0].Type)

	pdfBytes, err := admin.Sweets().StockReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	require.NoError(t, sess.Logout())
	assert.False(t, sess.IsAuthenticated())
	_, err = shopper.Sweets().List(ctx, 0, 0)
	assert.True(t, client.IsUnauthorized(err))
}
