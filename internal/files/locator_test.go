package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestLocatorPaths(t *testing.T) {
	loc := NewLocator("/srv/datos/")

	assert.Equal(t, "/srv/datos", loc.Root())
	assert.Equal(t, filepath.Join("/srv/datos", "2023"), loc.YearDir(2023))
	assert.Equal(t,
		filepath.Join("/srv/datos", "2023", "Libro_CódigosADM2023_ArchivoMatricula.xlsx"),
		loc.CatalogPath(2023))
	assert.Equal(t,
		filepath.Join("/srv/datos", "2023", "ArchivoMat_Adm2023.csv"),
		loc.EnrollmentPath(2023))
}

func TestLocatorExists(t *testing.T) {
	loc := NewLocator(t.TempDir())

	assert.False(t, loc.Exists(loc.CatalogPath(2024)))

	touch(t, loc.CatalogPath(2024))
	assert.True(t, loc.Exists(loc.CatalogPath(2024)))

	assert.False(t, loc.Exists(loc.YearDir(2024)), "directories are not files")
}

func TestLocatorYears(t *testing.T) {
	root := t.TempDir()
	loc := NewLocator(root)

	touch(t, loc.CatalogPath(2019))
	touch(t, loc.CatalogPath(2024))
	touch(t, loc.CatalogPath(2023))
	touch(t, loc.EnrollmentPath(2022))                   // ledger without catalog
	touch(t, filepath.Join(root, "notas", "readme.txt")) // non-year directory
	touch(t, filepath.Join(root, "2025.txt"))            // file at root

	years, err := loc.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023, 2019}, years)
}

func TestLocatorYearsMissingRoot(t *testing.T) {
	loc := NewLocator(filepath.Join(t.TempDir(), "absent"))

	years, err := loc.Years()
	require.NoError(t, err)
	assert.Empty(t, years)
	assert.NotNil(t, years)
}
