package cleaner

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"controller-cleaner/core/scan"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	svc, _ := newTestService(t)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleScanAndClean(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/controllers/hero/scan?wait=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var snap scan.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "hero", snap.Key)
	assert.Equal(t, 1, snap.ObsoleteCount)
	assert.True(t, snap.CanClean)

	resp, err = app.Test(httptest.NewRequest("POST", "/controllers/hero/clean", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report scan.CleanupReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "Hero", report.Controller)
	assert.Len(t, report.Removed, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/controllers/hero", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleClean_NothingToClean(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/controllers/tidy/scan?wait=true", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/controllers/tidy/clean", nil))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "nothing to clean")
}

func TestHandleUnknownController(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/controllers/villain"},
		{"DELETE", "/controllers/villain"},
		{"POST", "/controllers/villain/scan"},
		{"POST", "/controllers/villain/cancel"},
		{"POST", "/controllers/villain/clean"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, 404, resp.StatusCode)
		})
	}
}

func TestHandleScanAllAndList(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/controllers/discover", nil))
	require.NoError(t, err)
	var keys []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&keys))
	assert.Equal(t, []string{"hero", "tidy"}, keys)

	resp, err = app.Test(httptest.NewRequest("POST", "/controllers/scan", nil))
	require.NoError(t, err)
	assert.Equal(t, 202, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/controllers/clean", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var reports []scan.CleanupReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reports))
	assert.Len(t, reports, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/controllers", nil))
	require.NoError(t, err)
	var snaps []scan.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snaps))
	assert.Len(t, snaps, 2)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/controllers/hero", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}

func TestHandleCancel(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/controllers/hero/scan?wait=true", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	// Cancelling a finished scan leaves it untouched.
	resp, err = app.Test(httptest.NewRequest("POST", "/controllers/hero/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var snap scan.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, scan.StatusCompleted.String(), snap.Status)
}
