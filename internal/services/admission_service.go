package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"puntajes/internal/catalog"
	"puntajes/internal/dataprocessing"
	"puntajes/internal/enrollment"
	"puntajes/internal/infrastructure"
	"puntajes/internal/schema"
	"puntajes/pkg/contracts/domain"
)

// CatalogSource returns the normalized catalog of a year.
type CatalogSource interface {
	Load(ctx context.Context, year int) (*catalog.Table, error)
}

// EnrollmentSource returns the enrollment ledger of a year.
type EnrollmentSource interface {
	Load(ctx context.Context, year int) (*dataprocessing.Table, error)
}

// YearSource lists the years that have data.
type YearSource interface {
	Years() ([]int, error)
}

// regularEnrollment is the TIPO_MATRICULA value of regular admission.
const regularEnrollment = 1

var (
	optionColumns = []string{schema.ColumnUniversity, schema.ColumnProgram}
	queryColumns  = []string{schema.ColumnUniversity, schema.ColumnProgram, schema.ColumnCode}
	ledgerColumns = []string{enrollment.ColumnCode, enrollment.ColumnType}
)

// AdmissionService answers score range queries by joining the catalog of a
// year with its enrollment ledger.
type AdmissionService struct {
	catalogs   CatalogSource
	enrollment EnrollmentSource
	years      YearSource
	logger     *slog.Logger
	metrics    *infrastructure.BusinessMetrics
}

// NewAdmissionService creates the service. metrics may be nil.
func NewAdmissionService(catalogs CatalogSource, ledgers EnrollmentSource, years YearSource, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *AdmissionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdmissionService{
		catalogs:   catalogs,
		enrollment: ledgers,
		years:      years,
		logger:     infrastructure.WithComponent(logger, "admission"),
		metrics:    metrics,
	}
}

// ListOptions returns the universities of year and the programs each offers.
func (s *AdmissionService) ListOptions(ctx context.Context, year int) (opts *domain.Options, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "admission", "admission.options", attribute.Int("year", year))
	defer func() {
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
		infrastructure.RecordAdmissionRequest(ctx, s.metrics, "options", year, outcome(err))
		span.End()
	}()

	tbl, err := s.catalogs.Load(ctx, year)
	if err != nil {
		return nil, s.catalogError(err, fmt.Sprintf(msgNoOptions, year))
	}

	if missing := tbl.MissingColumns(optionColumns...); len(missing) > 0 {
		s.logger.ErrorContext(ctx, "catalog lacks option columns",
			slog.Int("year", year),
			slog.Any("missing", missing),
			slog.Any("headers", tbl.Headers))
		return nil, schemaMismatch(msgCatalogColumns, optionColumns, missing)
	}

	uniCol, _ := tbl.ColumnIndex(schema.ColumnUniversity)
	progCol, _ := tbl.ColumnIndex(schema.ColumnProgram)

	pairs := make([][2]string, 0, tbl.Len())
	for i := range tbl.Rows {
		pairs = append(pairs, [2]string{
			strings.TrimSpace(tbl.Cell(i, uniCol)),
			strings.TrimSpace(tbl.Cell(i, progCol)),
		})
	}
	opts = domain.NewOptions(pairs)

	s.logger.DebugContext(ctx, "options listed",
		slog.Int("year", year),
		slog.Int("universities", len(opts.Universities)))
	return opts, nil
}

// Query resolves the score range of every program code that the catalog
// lists for university and program in year. Names match case-insensitively.
//
// Codes without regular enrollment or without a weighted score column are
// reported in the result with Found false; only failures that affect the
// whole query are returned as errors.
func (s *AdmissionService) Query(ctx context.Context, year int, university, program string) (res *domain.QueryResult, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "admission", "admission.query",
		attribute.Int("year", year),
		attribute.String("university", university),
		attribute.String("program", program))
	defer func() {
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
		infrastructure.RecordAdmissionRequest(ctx, s.metrics, "query", year, outcome(err))
		span.End()
	}()

	tbl, err := s.catalogs.Load(ctx, year)
	if err != nil {
		return nil, s.catalogError(err, fmt.Sprintf(msgNoCodes, year))
	}

	codes, err := s.matchCodes(ctx, tbl, university, program)
	if err != nil {
		return nil, err
	}

	ledger, err := s.enrollment.Load(ctx, year)
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrNotFound):
			return nil, notFound(ErrNoEnrollment, fmt.Sprintf(msgNoEnrollment, year), err)
		default:
			return nil, readFailure(err)
		}
	}

	if missing := ledger.MissingColumns(ledgerColumns...); len(missing) > 0 {
		s.logger.ErrorContext(ctx, "enrollment ledger lacks key columns",
			slog.Int("year", year),
			slog.Any("missing", missing))
		return nil, schemaMismatch(msgEnrollmentColumns, ledgerColumns, missing)
	}

	res = s.resolve(ctx, year, ledger, codes)

	s.logger.InfoContext(ctx, "admission query resolved",
		slog.Int("year", year),
		slog.String("universidad", university),
		slog.String("carrera", program),
		slog.Int("codes", len(res.Results)),
		slog.Int("found", res.FoundCount()))
	return res, nil
}

// Years lists the years with a catalog, newest first.
func (s *AdmissionService) Years(ctx context.Context) (*domain.Years, error) {
	years, err := s.years.Years()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list data years", slog.String("error", err.Error()))
		return nil, readFailure(err)
	}
	return &domain.Years{Years: years}, nil
}

func (s *AdmissionService) catalogError(err error, message string) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return notFound(ErrNoCatalog, message, err)
	}
	return readFailure(err)
}

// matchCodes returns the distinct codes of the catalog rows naming
// university and program, in row order.
func (s *AdmissionService) matchCodes(ctx context.Context, tbl *catalog.Table, university, program string) ([]int64, error) {
	if missing := tbl.MissingColumns(queryColumns...); len(missing) > 0 {
		s.logger.ErrorContext(ctx, "catalog lacks query columns",
			slog.Int("year", tbl.Year),
			slog.Any("missing", missing))
		return nil, schemaMismatch(msgCatalogColumns, queryColumns, missing)
	}

	university = strings.TrimSpace(university)
	program = strings.TrimSpace(program)

	records, matched := s.catalogRecords(ctx, tbl, university, program)
	if len(records) == 0 {
		s.logger.InfoContext(ctx, "no catalog match",
			slog.Int("year", tbl.Year),
			slog.String("universidad", university),
			slog.String("carrera", program),
			slog.Int("matched_rows", matched))
		return nil, noMatch(university, program)
	}
	return domain.DistinctCodes(records), nil
}

// catalogRecords collects the rows naming university and program whose code
// parses. matched counts every name match, including skipped rows.
func (s *AdmissionService) catalogRecords(ctx context.Context, tbl *catalog.Table, university, program string) (records []domain.CatalogRecord, matched int) {
	uniCol, _ := tbl.ColumnIndex(schema.ColumnUniversity)
	progCol, _ := tbl.ColumnIndex(schema.ColumnProgram)
	codeCol, _ := tbl.ColumnIndex(schema.ColumnCode)

	for i := range tbl.Rows {
		uni := strings.TrimSpace(tbl.Cell(i, uniCol))
		prog := strings.TrimSpace(tbl.Cell(i, progCol))
		if !strings.EqualFold(uni, university) || !strings.EqualFold(prog, program) {
			continue
		}
		matched++

		raw := tbl.Cell(i, codeCol)
		code, ok := dataprocessing.ParseInteger(raw)
		if !ok {
			s.logger.WarnContext(ctx, "skipping catalog row with invalid code",
				slog.Int("year", tbl.Year),
				slog.Int("row", i+2),
				slog.String("code", raw))
			continue
		}
		records = append(records, domain.CatalogRecord{University: uni, Program: prog, Code: code})
	}
	return records, matched
}

// resolve computes the per-code results against the ledger. Ledger columns
// have already been checked.
func (s *AdmissionService) resolve(ctx context.Context, year int, ledger *dataprocessing.Table, codes []int64) *domain.QueryResult {
	codeCol, _ := ledger.ColumnIndex(enrollment.ColumnCode)
	typeCol, _ := ledger.ColumnIndex(enrollment.ColumnType)
	scoreCol, hasScore := ledger.FindColumn(isScoreColumn)

	rows := make(map[int64][]int, len(codes))
	for _, c := range codes {
		rows[c] = nil
	}
	for i := range ledger.Rows {
		code, ok := dataprocessing.ParseInteger(ledger.Cell(i, codeCol))
		if !ok {
			continue
		}
		if _, wanted := rows[code]; !wanted {
			continue
		}
		if t, ok := dataprocessing.ParseInteger(ledger.Cell(i, typeCol)); !ok || t != regularEnrollment {
			continue
		}
		rows[code] = append(rows[code], i)
	}

	res := &domain.QueryResult{Results: make([]domain.CodeResult, 0, len(codes))}
	coerced := 0
	for _, code := range codes {
		var r domain.CodeResult
		switch {
		case len(rows[code]) == 0:
			r = domain.NewMissingResult(code, domain.MessageNoRegularEnrollment)
		case !hasScore:
			r = domain.NewMissingResult(code, domain.MessageNoScoreColumn)
		default:
			lo, hi, n := scoreRange(ledger, rows[code], scoreCol)
			coerced += n
			r = domain.NewFoundResult(code, lo, hi, ledger.Headers[scoreCol])
		}
		infrastructure.RecordAdmissionCode(ctx, s.metrics, year, r.Found)
		res.Results = append(res.Results, r)
	}

	if coerced > 0 {
		s.logger.WarnContext(ctx, "unparseable scores counted as 0",
			slog.Int("year", year),
			slog.Int("values", coerced))
		infrastructure.RecordCoercedScores(ctx, s.metrics, year, coerced)
	}
	return res
}

func isScoreColumn(header string) bool {
	return strings.Contains(strings.ToUpper(header), enrollment.ScoreMarker)
}

// scoreRange returns the lowest and highest cleaned score of rows and how
// many cells had to be coerced to 0. rows must not be empty.
func scoreRange(ledger *dataprocessing.Table, rows []int, col int) (lo, hi float64, coerced int) {
	for i, row := range rows {
		v, ok := dataprocessing.ParseScore(ledger.Cell(row, col))
		if !ok {
			coerced++
		}
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi, coerced
}
