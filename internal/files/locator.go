package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	catalogFilePattern    = "Libro_CódigosADM%d_ArchivoMatricula.xlsx"
	enrollmentFilePattern = "ArchivoMat_Adm%d.csv"
)

// Locator maps admission years to files under a data root laid out as
// <root>/<year>/<file>.
type Locator struct {
	root string
}

// NewLocator creates a locator rooted at root.
func NewLocator(root string) *Locator {
	return &Locator{root: filepath.Clean(root)}
}

// Root returns the data root.
func (l *Locator) Root() string {
	return l.root
}

// YearDir returns the directory holding one year's files.
func (l *Locator) YearDir(year int) string {
	return filepath.Join(l.root, strconv.Itoa(year))
}

// CatalogPath returns the path of the academic offer workbook for year.
func (l *Locator) CatalogPath(year int) string {
	return filepath.Join(l.YearDir(year), CatalogFileName(year))
}

// EnrollmentPath returns the path of the enrollment ledger for year.
func (l *Locator) EnrollmentPath(year int) string {
	return filepath.Join(l.YearDir(year), EnrollmentFileName(year))
}

// CatalogFileName is the base name of the catalog workbook for year.
func CatalogFileName(year int) string {
	return fmt.Sprintf(catalogFilePattern, year)
}

// EnrollmentFileName is the base name of the enrollment ledger for year.
func EnrollmentFileName(year int) string {
	return fmt.Sprintf(enrollmentFilePattern, year)
}

// Exists reports whether path names an existing regular file.
func (l *Locator) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
