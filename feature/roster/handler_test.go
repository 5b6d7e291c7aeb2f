package roster

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, backend http.HandlerFunc) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	app := fiber.New()
	client := NewClient(Config{URL: srv.URL, Timeout: time.Second}, zap.NewNop())
	NewHandler(client, zap.NewNop()).RegisterRoutes(app)
	return app
}

func TestHandleServers(t *testing.T) {
	app := setupTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"number": 2, "name": "Mesa", "online": 100}]`))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/servers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var servers []Server
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&servers))
	require.Len(t, servers, 1)
	assert.Equal(t, "Mesa", servers[0].Name)
}

func TestHandleServers_Unavailable(t *testing.T) {
	app := setupTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/servers", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "roster unavailable", body["error"])
	assert.Contains(t, body["reason"], "500")
}
