package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "datos", cfg.Paths.DataDir)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Security.EnableCORS)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
	assert.False(t, cfg.Telemetry.EnableTracing)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		yaml        string
		wantErr     string
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5000, cfg.Server.Port)
				assert.Equal(t, "datos", cfg.Paths.DataDir)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"PUNTAJES_SERVER_PORT":              "9090",
				"PUNTAJES_PATHS_DATA_DIR":           "/srv/datos",
				"PUNTAJES_SECURITY_ALLOWED_ORIGINS": "http://localhost:5173, http://example.cl",
				"PUNTAJES_LOGGING_LEVEL":            "DEBUG",
				"PUNTAJES_SERVER_READ_TIMEOUT":      "5s",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "/srv/datos", cfg.Paths.DataDir)
				assert.Equal(t, []string{"http://localhost:5173", "http://example.cl"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "file values overlay defaults",
			yaml: `
server:
  port: 7000
logging:
  format: text
  output: console
paths:
  data_dir: ./fixtures
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7000, cfg.Server.Port)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Equal(t, "stdout", cfg.Logging.Output)
				assert.Equal(t, "./fixtures", cfg.Paths.DataDir)
				// untouched keys keep their defaults
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "environment wins over file",
			env:  map[string]string{"PUNTAJES_SERVER_PORT": "8081"},
			yaml: "server:\n  port: 7000\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8081, cfg.Server.Port)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"PUNTAJES_SERVER_PORT": "70000"},
			wantErr: "invalid server port",
		},
		{
			name:    "unparseable env value",
			env:     map[string]string{"PUNTAJES_SERVER_PORT": "abc"},
			wantErr: "failed to load config from env",
		},
		{
			name:    "malformed yaml",
			yaml:    "server: [",
			wantErr: "failed to load config from file",
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"PUNTAJES_LOGGING_FORMAT": "xml"},
			wantErr: "unsupported log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			file := ""
			if tt.yaml != "" {
				file = writeYAML(t, tt.yaml)
			}

			cfg, err := LoadFrom(file)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetConfigFilePathExplicit(t *testing.T) {
	path := writeYAML(t, "server:\n  port: 7100\n")
	t.Setenv(ConfigFileEnv, path)

	assert.Equal(t, path, getConfigFilePath())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7100, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"cors without origins", func(c *Config) { c.Security.AllowedOrigins = nil }, "allowed origin"},
		{"cors disabled without origins", func(c *Config) {
			c.Security.EnableCORS = false
			c.Security.AllowedOrigins = nil
		}, ""},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "read timeout"},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, "write timeout"},
		{"rate limit without burst", func(c *Config) { c.Security.RateLimit.Burst = 0 }, "rate limit"},
		{"file output without path", func(c *Config) {
			c.Logging.Output = "file"
			c.Logging.FilePath = ""
		}, "log file path"},
		{"unknown output", func(c *Config) { c.Logging.Output = "syslog" }, "unsupported log output"},
		{"empty data dir", func(c *Config) { c.Paths.DataDir = "  " }, "data directory"},
		{"sample ratio out of range", func(c *Config) { c.Telemetry.SampleRatio = 1.5 }, "sample ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 5000}
	assert.Equal(t, "127.0.0.1:5000", s.Addr())
	assert.Equal(t, ":5000", ServerConfig{Port: 5000}.Addr())
}
