package launch

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"launcher-agent/core/history"
	"launcher-agent/core/prefs"
	"launcher-agent/core/procs"
	"launcher-agent/core/procs/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, exePath string) (*fiber.App, *mocks.Registry, *prefs.Store) {
	t.Helper()
	app := fiber.New()
	reg := new(mocks.Registry)
	reg.On("Snapshot", mock.Anything).Return([]procs.Proc{}, nil).Maybe()

	cfg := Config{
		Path:          exePath,
		ProcessMatch:  "fake-client",
		DefaultIP:     "payson.arizona-rp.com",
		DefaultPort:   7777,
		MemoryMB:      4096,
		SettleDelay:   time.Millisecond,
		LivenessDelay: 10 * time.Millisecond,
	}
	prefStore := prefs.NewStore(prefs.Config{Path: filepath.Join(t.TempDir(), "config.json")}, zap.NewNop())
	svc := NewService(cfg, reg, prefStore, history.NewStore(nil), zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app, reg, prefStore
}

func existingExe(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client")
	require.NoError(t, os.WriteFile(path, []byte{}, 0755))
	return path
}

func TestHandleLaunch_Accepted(t *testing.T) {
	app, _, _ := setupTestApp(t, existingExe(t))

	req := httptest.NewRequest("POST", "/launch/", strings.NewReader(`{"nickname":"Player_One"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "processing", body["status"])
	assert.NotEmpty(t, body["attempt_id"])
}

func TestHandleLaunch_EmptyNickname(t *testing.T) {
	app, reg, _ := setupTestApp(t, existingExe(t))

	req := httptest.NewRequest("POST", "/launch/", strings.NewReader(`{"nickname":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	reg.AssertNotCalled(t, "Snapshot", mock.Anything)
}

func TestHandleLaunch_MissingExecutable(t *testing.T) {
	app, _, _ := setupTestApp(t, filepath.Join(t.TempDir(), "nope.exe"))

	req := httptest.NewRequest("POST", "/launch/", strings.NewReader(`{"nickname":"Player_One"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleLastOutcome_NoneYet(t *testing.T) {
	app, _, _ := setupTestApp(t, existingExe(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/launch/last", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestHandleHistory_EmptyWithoutDB(t *testing.T) {
	app, _, _ := setupTestApp(t, existingExe(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/launch/history", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body)
}

func TestHandlePreferences_Defaults(t *testing.T) {
	app, _, _ := setupTestApp(t, existingExe(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/preferences", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "", body["last_nickname"])
	assert.EqualValues(t, defaultLastServer, body["last_server"])
	assert.NotEmpty(t, body["launcher_path"])
}

func TestHandleUpdateNickname(t *testing.T) {
	app, _, prefStore := setupTestApp(t, existingExe(t))

	req := httptest.NewRequest("PUT", "/preferences/nickname", strings.NewReader(`{"nickname":" New_Name "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "New_Name", prefStore.Load().LastNickname)
}

func TestHandleUpdateNickname_Invalid(t *testing.T) {
	app, _, _ := setupTestApp(t, existingExe(t))

	req := httptest.NewRequest("PUT", "/preferences/nickname", strings.NewReader(`{"nickname":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
