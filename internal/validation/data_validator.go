package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"puntajes/internal/files"
)

// FileStatus describes one expected data file.
type FileStatus struct {
	Path    string `json:"path"`
	Present bool   `json:"present"`
	Size    int64  `json:"size,omitempty"`
	Problem string `json:"problem,omitempty"`
}

// YearReport is the state of one year directory.
type YearReport struct {
	Year       int        `json:"year"`
	Catalog    FileStatus `json:"catalog"`
	Enrollment FileStatus `json:"enrollment"`
}

// Complete reports whether both files are present and usable.
func (y YearReport) Complete() bool {
	return y.Catalog.Present && y.Catalog.Problem == "" &&
		y.Enrollment.Present && y.Enrollment.Problem == ""
}

// Report covers every year directory under the data root.
type Report struct {
	Root  string       `json:"root"`
	Years []YearReport `json:"years"`
}

// Incomplete returns the years missing a file or holding an unusable one.
func (r *Report) Incomplete() []int {
	var years []int
	for _, y := range r.Years {
		if !y.Complete() {
			years = append(years, y.Year)
		}
	}
	return years
}

// DataValidator checks the data root layout without parsing file contents.
type DataValidator struct {
	locator *files.Locator
	logger  *slog.Logger
}

// NewDataValidator creates a validator for the data root behind locator.
func NewDataValidator(locator *files.Locator, logger *slog.Logger) *DataValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataValidator{
		locator: locator,
		logger:  logger.With(slog.String("component", "data_validator")),
	}
}

// ValidateRoot checks that the data root exists and is a directory.
func (v *DataValidator) ValidateRoot() error {
	dir := v.locator.Root()
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Error("Data directory does not exist", slog.String("directory", dir))
		return fmt.Errorf("data directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		v.logger.Error("Data path is not a directory", slog.String("path", dir))
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// Check reports on every numeric directory under the root, newest first.
// Directories with other names are ignored.
func (v *DataValidator) Check() (*Report, error) {
	if err := v.ValidateRoot(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(v.locator.Root())
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", v.locator.Root(), err)
	}

	report := &Report{Root: v.locator.Root(), Years: []YearReport{}}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year, err := strconv.Atoi(entry.Name())
		if err != nil || year <= 0 {
			continue
		}
		report.Years = append(report.Years, v.CheckYear(year))
	}
	sort.Slice(report.Years, func(i, j int) bool {
		return report.Years[i].Year > report.Years[j].Year
	})

	v.logger.Info("Data directory checked",
		slog.String("directory", report.Root),
		slog.Int("years", len(report.Years)),
		slog.Any("incomplete", report.Incomplete()))
	return report, nil
}

// CheckYear reports on the two files of year.
func (v *DataValidator) CheckYear(year int) YearReport {
	return YearReport{
		Year:       year,
		Catalog:    v.checkFile(v.locator.CatalogPath(year)),
		Enrollment: v.checkFile(v.locator.EnrollmentPath(year)),
	}
}

func (v *DataValidator) checkFile(path string) FileStatus {
	status := FileStatus{Path: path}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return status
	case err != nil:
		status.Problem = err.Error()
	case info.IsDir():
		status.Problem = "is a directory"
	case info.Size() == 0:
		status.Present = true
		status.Problem = "empty file"
	default:
		status.Present = true
		status.Size = info.Size()
		if f, err := os.Open(path); err != nil {
			status.Problem = "not readable"
		} else {
			f.Close()
		}
	}

	if status.Problem != "" {
		v.logger.Warn("Data file problem",
			slog.String("file", path),
			slog.String("problem", status.Problem))
	}
	return status
}
