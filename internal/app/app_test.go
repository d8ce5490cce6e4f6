package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puntajes/internal/config"
	"puntajes/internal/schema"
	"puntajes/internal/shared/testutil"
)

func testConfig(t *testing.T, dataDir string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Paths.DataDir = dataDir
	cfg.Telemetry.TraceExporter = "none"
	cfg.Security.AllowedOrigins = []string{"http://localhost:3000"}
	require.NoError(t, cfg.Validate())
	return cfg
}

func writeData(t *testing.T, root string) {
	t.Helper()
	testutil.WriteCatalog(t, root, 2023, schema.SheetCurrent, [][]any{
		{"UNIVERSIDAD", "CARRERA", "CODIGO"},
		{"Universidad de Chile", "Medicina", 101},
		{"Universidad de Chile", "Medicina", 102},
		{"Universidad de Chile", "Derecho", 103},
	})
	testutil.WriteLedger(t, root, 2023,
		"CODIGO;TIPO_MATRICULA;PTJE_POND",
		"101;1;800,25",
		"101;1;650,5",
		"102;2;700",
	)
}

func newTestApp(t *testing.T) (*Application, string) {
	t.Helper()
	root := t.TempDir()
	writeData(t, root)
	logger, _ := testutil.NewTestLogger(t)

	app, err := NewApplicationWithConfig(testConfig(t, root), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.OTelProviders.Shutdown(context.Background()) })
	return app, root
}

func serve(app *Application, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestNewApplicationWithConfig(t *testing.T) {
	app, root := newTestApp(t)

	assert.NotNil(t, app.Router)
	assert.NotNil(t, app.Server)
	assert.NotNil(t, app.Metrics)
	assert.Equal(t, root, app.Paths.DataDir)
	assert.Equal(t, "127.0.0.1:5000", app.Server.Addr)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)

	require.NotNil(t, app.Services)
	assert.NotNil(t, app.Services.Admission)
	assert.NotNil(t, app.Services.Health)
	assert.Equal(t, root, app.Services.Locator.Root())
}

func TestNewApplicationRejectsNilConfig(t *testing.T) {
	_, err := NewApplicationWithConfig(nil, nil)
	assert.Error(t, err)
}

func TestNewApplicationRejectsBadTelemetry(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Telemetry.MetricExporter = "statsd"
	logger, _ := testutil.NewTestLogger(t)

	_, err := NewApplicationWithConfig(cfg, logger)
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	t.Run("options", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/opciones/2023", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []interface{}{"Universidad de Chile"}, body["universidades"])
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("query", func(t *testing.T) {
		rec := serve(app, http.MethodPost, "/api/consultar",
			`{"year": "2023", "universidad": "Universidad de Chile", "carrera": "Medicina"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var body struct {
			Results []struct {
				Code  int64    `json:"codigo_carrera"`
				Found bool     `json:"encontrado"`
				Min   *float64 `json:"puntaje_min"`
				Max   *float64 `json:"puntaje_max"`
			} `json:"resultados"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Results, 2)
		assert.True(t, body.Results[0].Found)
		assert.Equal(t, 650.5, *body.Results[0].Min)
		assert.Equal(t, 800.25, *body.Results[0].Max)
		assert.False(t, body.Results[1].Found)
	})

	t.Run("years", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/anios", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"anios":[2023]}`, rec.Body.String())
	})

	t.Run("missing catalog year", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/opciones/1999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("health", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/health/ready", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/nada", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/api/consultar", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "http_requests_total")
	})
}

func TestOversizedBodyIsRejected(t *testing.T) {
	app, _ := newTestApp(t)
	big := `{"year": 2023, "universidad": "` + strings.Repeat("a", int(app.Config.Server.MaxBodyBytes)) + `", "carrera": "x"}`

	rec := serve(app, http.MethodPost, "/api/consultar", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/consultar", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetCORSConfig(t *testing.T) {
	app, _ := newTestApp(t)
	cfg := app.getCORSConfig()

	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.AllowedMethods, http.MethodPost)
	assert.Contains(t, cfg.AllowedHeaders, "Content-Type")
	assert.False(t, cfg.AllowCredentials)
}

func TestPerformStartupHealthCheck(t *testing.T) {
	t.Run("data present", func(t *testing.T) {
		app, _ := newTestApp(t)
		assert.NoError(t, app.performStartupHealthCheck(context.Background()))
	})

	t.Run("data dir missing", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger(t)
		app, err := NewApplicationWithConfig(testConfig(t, filepath.Join(t.TempDir(), "datos")), logger)
		require.NoError(t, err)

		err = app.performStartupHealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("no years", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger(t)
		app, err := NewApplicationWithConfig(testConfig(t, t.TempDir()), logger)
		require.NoError(t, err)

		err = app.performStartupHealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no year directories")
	})

	t.Run("incomplete year", func(t *testing.T) {
		app, _ := newTestApp(t)
		require.NoError(t, os.Remove(app.Services.Locator.EnrollmentPath(2023)))

		err := app.performStartupHealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "year 2023 is incomplete")
	})
}

func TestStartStop(t *testing.T) {
	app, _ := newTestApp(t)
	app.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, app.Start(ctx, cancel))
	require.NotEmpty(t, app.Addr())

	resp, err := http.Get("http://" + app.Addr() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, app.Stop(context.Background()))
	assert.NoError(t, ctx.Err(), "clean shutdown does not cancel the run context")

	_, err = http.Get("http://" + app.Addr() + "/api/health")
	assert.Error(t, err)
}

func TestStartFailsOnBusyAddress(t *testing.T) {
	first, _ := newTestApp(t)
	first.Server.Addr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, first.Start(ctx, cancel))
	defer first.Stop(context.Background())

	second, _ := newTestApp(t)
	second.Server.Addr = first.Addr()
	assert.Error(t, second.Start(ctx, cancel))
}

func TestNewServiceContainer(t *testing.T) {
	root := t.TempDir()
	writeData(t, root)
	logger, _ := testutil.NewTestLogger(t)

	c := NewServiceContainer(root, logger, nil)
	years, err := c.Admission.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2023}, years.Years)

	_, err = c.Admission.ListOptions(context.Background(), 2023)
	require.NoError(t, err)
	assert.True(t, c.Catalogs.Cached(2023))
}
