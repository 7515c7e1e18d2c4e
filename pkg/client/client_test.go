package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fudge-api/pkg/client"
)

func writeEnvelope(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_AdjuntaBearerYDecodificaData(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/sweets", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true, "message": "Sweets retrieved successfully",
			"data": map[string]any{
				"data":       []map[string]any{{"id": "s1", "name": "Fudge", "category": "fudge", "price": "2.50", "quantity": 3}},
				"pagination": map[string]any{"page": 2, "limit": 14, "total": 15, "pages": 2},
			},
		})
	}))
	defer srv.Close()

	store := client.NewMemoryStore()
	require.NoError(t, store.Save(&client.SessionData{Token: "tok-123", User: &client.User{ID: "u1", Role: client.RoleUser}}))
	c := client.New(srv.URL + "/api")
	sess, err := client.NewSession(c, store)
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated())
	assert.False(t, sess.IsLoading())

	page, err := c.Sweets().List(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "2.5", page.Data[0].Price.String())
	assert.Equal(t, 15, page.Pagination.Total)
}

func TestClient_401LimpiaSesionYAvisa(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid token"})
	}))
	defer srv.Close()

	redirected, notified := 0, 0
	c := client.New(srv.URL,
		client.WithOnUnauthorized(func() { redirected++ }),
		client.WithNotify(func(*client.APIError) { notified++ }),
	)
	store := client.NewMemoryStore()
	require.NoError(t, store.Save(&client.SessionData{Token: "old", User: &client.User{ID: "u1"}}))
	sess, err := client.NewSession(c, store)
	require.NoError(t, err)

	_, err = c.Sweets().Get(context.Background(), "s1")
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.Equal(t, 1, redirected)
	assert.Zero(t, notified)
	assert.False(t, sess.IsAuthenticated())
	assert.Empty(t, sess.Token())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestClient_ErrorConMensajeDelServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "name is required", "errors": []string{"name is required"},
		})
	}))
	defer srv.Close()

	var seen *client.APIError
	c := client.New(srv.URL, client.WithNotify(func(e *client.APIError) { seen = e }))
	_, err := c.Sweets().Create(context.Background(), client.SweetInput{})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "name is required", apiErr.Message)
	assert.Equal(t, []string{"name is required"}, apiErr.Errors)
	assert.Same(t, apiErr, seen)
}

func TestClient_MensajePorDefectoYErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	c := client.New(srv.URL)

	_, err := c.Sweets().List(context.Background(), 0, 0)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "An error occurred", apiErr.Message)

	srv.Close()
	_, err = c.Sweets().List(context.Background(), 0, 0)
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.Equal(t, "Network error", apiErr.Message)
}

func TestFileStore_PersisteCon0600(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fudge", "session.json")
	fs := client.NewFileStore(path)

	data, err := fs.Load()
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, fs.Save(&client.SessionData{Token: "t", User: &client.User{ID: "u1", Username: "alice"}}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err = fs.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", data.User.Username)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear(), "borrar dos veces no falla")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_Corrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	sess, err := client.NewSession(client.New(""), client.NewFileStore(path))
	assert.Error(t, err)
	assert.False(t, sess.IsAuthenticated())
}
