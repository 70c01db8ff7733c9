package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"glaze-matrix-be/internal/dto"
	"glaze-matrix-be/internal/pkg/logger"
	"glaze-matrix-be/internal/pkg/serverutils"
	"glaze-matrix-be/internal/repository/memory"
	"glaze-matrix-be/internal/service"
	"glaze-matrix-be/internal/storage"
	"glaze-matrix-be/pkg/matrix"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *matrix.Registry {
	return matrix.NewRegistry(
		[]matrix.CatalogEntity{
			{ID: "G1", Name: "Glaze One", ColorAttributes: map[string]string{"color": "#aa0000"}},
			{ID: "G2", Name: "Glaze Two", ColorAttributes: map[string]string{"color": "#00aa00"}},
		},
		[]matrix.CatalogEntity{
			{ID: "U1", Name: "Under One", ColorAttributes: map[string]string{"left": "#111111"}},
			{ID: "U2", Name: "Under Two", ColorAttributes: map[string]string{"left": "#222222"}},
		},
	)
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithFile(t, filepath.Join(t.TempDir(), "toggle-states.json"))
}

func newTestAppWithFile(t *testing.T, path string) *fiber.App {
	t.Helper()
	log := logger.NewNopLogger()
	store := storage.NewStore(storage.NewFileBackend(path), log)
	svc := service.NewMatrixService(testRegistry(), store, memory.NewPreviewRepository(time.Minute), nil, log, "")

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewMatrixController(svc).RegisterRoutes(app.Group("/api"), serverutils.AdminJwtMiddleware(""))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestMatrixController_SaveAndLoad(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/save-toggle-states", map[string]interface{}{
		"disabledCells": []string{"U1-G1", "U2-U2"},
	})
	require.Equal(t, 200, resp.StatusCode)
	saved := decode[dto.SaveToggleStatesResponse](t, resp)
	assert.True(t, saved.Success)
	assert.Equal(t, 2, saved.Count)

	resp = doJSON(t, app, "GET", "/api/load-toggle-states", nil)
	require.Equal(t, 200, resp.StatusCode)
	loaded := decode[dto.LoadToggleStatesResponse](t, resp)
	assert.Equal(t, []string{"U1-G1", "U2-U2"}, loaded.DisabledCells)
	assert.Equal(t, "file", loaded.Source)
}

func TestMatrixController_SaveValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing cells", map[string]interface{}{}},
		{"empty key", map[string]interface{}{"disabledCells": []string{"U1-G1", ""}}},
		{"blank key", map[string]interface{}{"disabledCells": []string{"   "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, "POST", "/api/save-toggle-states", tt.body)
			assert.Equal(t, 400, resp.StatusCode)
			env := decode[serverutils.BaseResponse[any]](t, resp)
			assert.False(t, env.Success)
		})
	}
}

func TestMatrixController_Export(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/export-matrix", map[string]interface{}{
		"disabledCells": []string{"U2-G1"},
	})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "glaze-matrix.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, strings.Join(matrix.ExportHeader, ","), lines[0])
	assert.Equal(t, "U2,Under Two,#222222,G1,Glaze One,#aa0000,U2-G1,true,Disabled,underglaze-glaze", lines[5])

	resp = doJSON(t, app, "GET", "/api/export-matrix", nil)
	require.Equal(t, 200, resp.StatusCode)
	stored, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(stored), ",true,", "nothing stored yet")
}

func TestMatrixController_ReconcileJSONPreviewAndApply(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/reconcile-from-csv", map[string]interface{}{
		"csv": ",Under One,Under Two\nGlaze One,1,0\nGlaze Two,0,0\n",
	})
	require.Equal(t, 200, resp.StatusCode)
	env := decode[serverutils.BaseResponse[dto.ReconcileResponse]](t, resp)
	require.NotNil(t, env.Data.PreviewId)
	assert.False(t, env.Data.Applied)
	assert.ElementsMatch(t, []string{"U1-G2", "U2-G1", "U2-G2"}, env.Data.DisabledCells)

	resp = doJSON(t, app, "POST", "/api/reconcile-from-csv/"+env.Data.PreviewId.String()+"/apply", nil)
	require.Equal(t, 200, resp.StatusCode)
	applied := decode[serverutils.BaseResponse[dto.ReconcileResponse]](t, resp)
	assert.True(t, applied.Data.Applied)

	resp = doJSON(t, app, "GET", "/api/load-toggle-states", nil)
	loaded := decode[dto.LoadToggleStatesResponse](t, resp)
	assert.ElementsMatch(t, []string{"U1-G2", "U2-G1", "U2-G2"}, loaded.DisabledCells)

	resp = doJSON(t, app, "POST", "/api/reconcile-from-csv/"+env.Data.PreviewId.String()+"/apply", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestMatrixController_ReconcileMultipart(t *testing.T) {
	app := newTestApp(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "sheet.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(",Under One\nGlaze One,0\nGhost,1\n"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("apply", "true"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/reconcile-from-csv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	env := decode[serverutils.BaseResponse[dto.ReconcileResponse]](t, resp)
	assert.True(t, env.Data.Applied)
	assert.Equal(t, "CSV reimport - sheet.csv", env.Data.Source)
	assert.Equal(t, []string{"U1-G1"}, env.Data.DisabledCells)
	assert.Equal(t, []string{"Ghost"}, env.Data.NotFoundNames)
}

func TestMatrixController_ReconcileMalformedCSV(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/reconcile-from-csv", map[string]interface{}{"csv": "", "apply": true})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestMatrixController_ReadOnlyEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/health", nil)
	require.Equal(t, 200, resp.StatusCode)
	health := decode[dto.HealthResponse](t, resp)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "file", health.Storage)

	resp = doJSON(t, app, "GET", "/api/colors", nil)
	require.Equal(t, 200, resp.StatusCode)
	catalog := decode[serverutils.BaseResponse[dto.CatalogResponse]](t, resp)
	assert.Len(t, catalog.Data.Underglazes, 2)
	assert.Equal(t, 8, catalog.Data.TotalPairings)

	resp = doJSON(t, app, "GET", "/api/reconciliation-runs?limit=5", nil)
	require.Equal(t, 200, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/reconciliation-runs?limit=1000", nil)
	assert.Equal(t, 400, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/reconciliation-runs/not-a-uuid", nil)
	assert.Equal(t, 400, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/reconciliation-runs/"+uuid.NewString(), nil)
	assert.Equal(t, 404, resp.StatusCode, "file storage keeps no run history")
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"blank key", service.ErrBlankCellKey, 400},
		{"preview", service.ErrPreviewNotFound, 404},
		{"run", service.ErrRunNotFound, 404},
		{"parse error", &matrix.ParseError{Line: 1, Message: "missing header row"}, 400},
		{"wrapped parse error", fmt.Errorf("reconcile: %w", &matrix.ParseError{Message: "m"}), 400},
		{"unique violation", &storage.PersistenceError{Op: "insert toggle states", Code: "23505", Err: errors.New("dup")}, 409},
		{"persistence", &storage.PersistenceError{Op: "commit", Err: errors.New("conn reset")}, 500},
		{"file", &storage.FileError{Op: "rename", Path: "/tmp/x", Err: errors.New("x")}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *serverutils.HttpError
			require.ErrorAs(t, mapServiceError(tt.err), &httpErr)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.ErrorIs(t, httpErr, tt.err)
		})
	}

	plain := errors.New("boom")
	assert.Equal(t, plain, mapServiceError(plain))
}

func TestMatrixController_FileStorageFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	app := newTestAppWithFile(t, filepath.Join(blocker, "toggle-states.json"))

	resp := doJSON(t, app, "POST", "/api/save-toggle-states", map[string]interface{}{
		"disabledCells": []string{"U1-G1"},
	})
	assert.Equal(t, 500, resp.StatusCode)
	env := decode[serverutils.BaseResponse[any]](t, resp)
	assert.Contains(t, env.Message, "file storage failed")
}
