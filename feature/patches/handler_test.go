package patches

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *Codec) {
	t.Helper()
	app := fiber.New()
	codec := NewCodec(Config{Path: filepath.Join(t.TempDir(), "patches.json")}, zap.NewNop())
	NewHandler(codec, zap.NewNop()).RegisterRoutes(app)
	return app, codec
}

func TestHandleRead(t *testing.T) {
	app, codec := setupTestApp(t)
	require.NoError(t, os.WriteFile(codec.path, []byte("// note\n{\"a\": 1}\n"), 0644))

	resp, err := app.Test(httptest.NewRequest("GET", "/patches/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["a"])
}

func TestHandleRead_Missing(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/patches/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleRead_Unparsable(t *testing.T) {
	app, codec := setupTestApp(t)
	require.NoError(t, os.WriteFile(codec.path, []byte("{oops"), 0644))

	resp, err := app.Test(httptest.NewRequest("GET", "/patches/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleWrite(t *testing.T) {
	app, codec := setupTestApp(t)

	req := httptest.NewRequest("PUT", "/patches/", strings.NewReader(`{"widescreen_fix": true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	doc, err := codec.Read()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"widescreen_fix": true}, doc)
}

func TestHandleWrite_InvalidBody(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("PUT", "/patches/", strings.NewReader(`{nope`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
