package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"puntajes/internal/dataprocessing"
	"puntajes/internal/files"
	"puntajes/internal/infrastructure"
	"puntajes/internal/schema"
)

var (
	// ErrNotFound is returned when the catalog workbook for a year is absent.
	ErrNotFound = errors.New("catalog not found")

	// ErrReadFailure is returned when the workbook exists but cannot be read,
	// including when the expected sheet is missing.
	ErrReadFailure = errors.New("catalog read failed")
)

// Table is the normalized catalog of one year. It is shared between callers
// and must not be modified.
type Table struct {
	*dataprocessing.Table

	Year     int
	Schema   schema.YearSchema
	Path     string
	LoadedAt time.Time
	// Renamed is the number of headers rewritten to their canonical names.
	Renamed int
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Loads  uint64 `json:"loads"`
	Years  []int  `json:"years"`
}

// Store loads catalogs on first use and keeps them for the life of the
// process. Failed loads are not cached.
type Store struct {
	locator *files.Locator
	logger  *slog.Logger
	metrics *infrastructure.BusinessMetrics

	mu     sync.RWMutex
	tables map[int]*Table
	group  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	loads  atomic.Uint64
}

// NewStore creates an empty store reading workbooks under locator's root.
// metrics may be nil.
func NewStore(locator *files.Locator, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		locator: locator,
		logger:  infrastructure.WithComponent(logger, "catalog"),
		metrics: metrics,
		tables:  make(map[int]*Table),
	}
}

// Load returns the catalog for year. Repeated calls return the same *Table.
// Concurrent first calls for one year share a single read.
func (s *Store) Load(ctx context.Context, year int) (*Table, error) {
	if t, ok := s.cached(year); ok {
		s.hits.Add(1)
		infrastructure.RecordCatalogCache(ctx, s.metrics, year, true)
		return t, nil
	}

	s.misses.Add(1)
	infrastructure.RecordCatalogCache(ctx, s.metrics, year, false)

	v, err, shared := s.group.Do(strconv.Itoa(year), func() (any, error) {
		// a caller that lost the race may find the entry already populated
		if t, ok := s.cached(year); ok {
			return t, nil
		}
		t, err := s.read(ctx, year)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.tables[year] = t
		s.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "catalog load shared", slog.Int("year", year))
	}
	return v.(*Table), nil
}

// Cached reports whether year is already in the cache.
func (s *Store) Cached(year int) bool {
	_, ok := s.cached(year)
	return ok
}

// Stats returns the current counters and the cached years in ascending order.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	years := make([]int, 0, len(s.tables))
	for y := range s.tables {
		years = append(years, y)
	}
	s.mu.RUnlock()
	sort.Ints(years)

	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Loads:  s.loads.Load(),
		Years:  years,
	}
}

func (s *Store) cached(year int) (*Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[year]
	return t, ok
}

func (s *Store) read(ctx context.Context, year int) (*Table, error) {
	ys := schema.Resolve(year)
	path := s.locator.CatalogPath(year)

	ctx, span := infrastructure.StartSpan(ctx, "catalog", "catalog.load",
		attribute.Int("year", year),
		attribute.String("band", ys.Band.String()),
		attribute.String("sheet", ys.SheetName))
	defer span.End()

	if !s.locator.Exists(path) {
		s.logger.WarnContext(ctx, "catalog file not found",
			slog.Int("year", year),
			slog.String("path", path))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	start := time.Now()
	s.loads.Add(1)
	raw, err := dataprocessing.ReadWorkbookSheet(path, ys.SheetName)
	infrastructure.RecordSourceLoad(ctx, s.metrics, "catalog", year, time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "failed to read catalog",
			slog.Int("year", year),
			slog.String("path", path),
			slog.String("sheet", ys.SheetName),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: year %d: %w", ErrReadFailure, year, err)
	}

	raw.MapCells(dataprocessing.RepairText)

	renamed := 0
	if !raw.Empty() && ys.HasRenames() {
		renamed = raw.RenameColumns(ys.Renames)
	}

	t := &Table{
		Table:    raw,
		Year:     year,
		Schema:   ys,
		Path:     path,
		LoadedAt: time.Now(),
		Renamed:  renamed,
	}

	s.logger.InfoContext(ctx, "catalog loaded",
		slog.Int("year", year),
		slog.String("band", ys.Band.String()),
		slog.Int("rows", t.Len()),
		slog.Int("renamed_columns", renamed),
		slog.Duration("duration", time.Since(start)))

	return t, nil
}
