package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puntajes/internal/files"
	"puntajes/internal/schema"
	"puntajes/internal/shared/testutil"
)

func TestValidateRoot(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(t *testing.T) string
		errorContains string
	}{
		{
			name:  "existing directory",
			setup: func(t *testing.T) string { return t.TempDir() },
		},
		{
			name:          "missing directory",
			setup:         func(t *testing.T) string { return filepath.Join(t.TempDir(), "datos") },
			errorContains: "does not exist",
		},
		{
			name: "file instead of directory",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "datos")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
				return path
			},
			errorContains: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			err := NewDataValidator(files.NewLocator(tt.setup(t)), logger).ValidateRoot()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	testutil.WriteCatalog(t, root, 2023, schema.SheetCurrent, [][]any{{"UNIVERSIDAD", "CARRERA", "CODIGO"}})
	testutil.WriteLedger(t, root, 2023, "CODIGO;TIPO_MATRICULA;PTJE_POND")
	testutil.WriteCatalog(t, root, 2019, schema.SheetCurrent, [][]any{{"UNIVERSIDAD", "CARRERA", "CODIGO"}})
	testutil.WriteFile(t, files.NewLocator(root).EnrollmentPath(2024), nil)
	require.NoError(t, os.Mkdir(filepath.Join(root, "respaldo"), 0o755))

	logger, handler := testutil.NewTestLogger(t)
	report, err := NewDataValidator(files.NewLocator(root), logger).Check()
	require.NoError(t, err)

	require.Len(t, report.Years, 3)
	assert.Equal(t, []int{2024, 2023, 2019}, []int{report.Years[0].Year, report.Years[1].Year, report.Years[2].Year})

	y2024 := report.Years[0]
	assert.False(t, y2024.Catalog.Present)
	assert.True(t, y2024.Enrollment.Present)
	assert.Equal(t, "empty file", y2024.Enrollment.Problem)

	y2023 := report.Years[1]
	assert.True(t, y2023.Complete())
	assert.Positive(t, y2023.Catalog.Size)

	y2019 := report.Years[2]
	assert.True(t, y2019.Catalog.Present)
	assert.False(t, y2019.Enrollment.Present)

	assert.Equal(t, []int{2024, 2019}, report.Incomplete())
	assert.True(t, handler.ContainsMessage("Data file problem"))
}

func TestCheckMissingRoot(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	_, err := NewDataValidator(files.NewLocator(filepath.Join(t.TempDir(), "nada")), logger).Check()
	assert.Error(t, err)
}

func TestCheckYearDirectoryInPlaceOfFile(t *testing.T) {
	root := t.TempDir()
	loc := files.NewLocator(root)
	require.NoError(t, os.MkdirAll(loc.CatalogPath(2022), 0o755))

	logger, _ := testutil.NewTestLogger(t)
	y := NewDataValidator(loc, logger).CheckYear(2022)
	assert.False(t, y.Catalog.Present)
	assert.Equal(t, "is a directory", y.Catalog.Problem)
	assert.False(t, y.Complete())
}
