package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths holds the absolute directories derived from PathsConfig.
type Paths struct {
	WorkDir string
	DataDir string
	LogsDir string
}

// ResolvePaths turns the configured directories into absolute paths.
// Relative entries are taken relative to the working directory.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return resolvePathsFrom(wd, cfg), nil
}

func resolvePathsFrom(base string, cfg PathsConfig) *Paths {
	abs := func(p string) string {
		if p == "" {
			return ""
		}
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(base, p)
	}

	return &Paths{
		WorkDir: base,
		DataDir: abs(cfg.DataDir),
		LogsDir: abs(cfg.LogsDir),
	}
}

// DataDirExists reports whether the data directory is present. A missing
// directory is not fatal: every lookup simply reports absent files.
func (p *Paths) DataDirExists() bool {
	info, err := os.Stat(p.DataDir)
	return err == nil && info.IsDir()
}

// LogPathResolution logs the resolved directories.
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if !p.DataDirExists() {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "Resolved paths",
		slog.String("work_dir", p.WorkDir),
		slog.String("data_dir", p.DataDir),
		slog.Bool("data_dir_exists", p.DataDirExists()),
		slog.String("logs_dir", p.LogsDir))
}
