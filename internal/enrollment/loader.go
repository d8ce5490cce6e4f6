package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"puntajes/internal/dataprocessing"
	"puntajes/internal/files"
	"puntajes/internal/infrastructure"
)

// Columns of the ledger the query engine reads.
const (
	ColumnCode = "CODIGO"
	ColumnType = "TIPO_MATRICULA"
	// ScoreMarker identifies weighted score columns, matched case-insensitively
	// as a substring of the header.
	ScoreMarker = "POND"
)

var (
	// ErrNotFound is returned when the ledger for a year is absent.
	ErrNotFound = errors.New("enrollment ledger not found")

	// ErrReadFailure is returned when the ledger exists but cannot be parsed.
	ErrReadFailure = errors.New("enrollment ledger read failed")
)

// Loader reads enrollment ledgers. Results are not cached: each call reads
// the file again. A Loader holds no mutable state and may be shared.
type Loader struct {
	locator *files.Locator
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics
}

// NewLoader creates a loader for ledgers under locator's root. metrics may be nil.
func NewLoader(locator *files.Locator, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		locator: locator,
		logger:  infrastructure.WithComponent(logger, "enrollment"),
		metrics: metrics,
	}
}

// Load reads the ledger for year with its headers trimmed. Cell values are
// returned as decoded, without text repair.
func (l *Loader) Load(ctx context.Context, year int) (*dataprocessing.Table, error) {
	path := l.locator.EnrollmentPath(year)

	ctx, span := infrastructure.StartSpan(ctx, "enrollment", "enrollment.load",
		attribute.Int("year", year))
	defer span.End()

	if !l.locator.Exists(path) {
		l.logger.WarnContext(ctx, "enrollment ledger not found",
			slog.Int("year", year),
			slog.String("path", path))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	start := time.Now()
	t, err := dataprocessing.ReadDelimitedFile(path, dataprocessing.LedgerOptions)
	infrastructure.RecordSourceLoad(ctx, l.metrics, "enrollment", year, time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		l.logger.ErrorContext(ctx, "failed to read enrollment ledger",
			slog.Int("year", year),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: year %d: %w", ErrReadFailure, year, err)
	}

	l.logger.InfoContext(ctx, "enrollment ledger loaded",
		slog.Int("year", year),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Headers)),
		slog.Duration("duration", time.Since(start)))

	return t, nil
}
