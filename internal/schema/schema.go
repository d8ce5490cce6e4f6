package schema

import "fmt"

// Canonical catalog column names after normalization
const (
	ColumnUniversity = "NOMBRE_UNIVERSIDAD"
	ColumnProgram    = "NOMBRE_CARRERA"
	ColumnCode       = "CODIGO_CARRERA"
)

// Sheet names used by the catalog workbooks
const (
	SheetLegacy  = "Anexo - OfertaAcadémica_RegBEA"
	SheetCurrent = "Anexo - Oferta académica"
)

// Band identifies one of the known catalog layouts
type Band int

const (
	// BandLegacy covers every year up to 2017
	BandLegacy Band = iota
	// BandCanonical18 covers 2018 and 2019, which already ship canonical headers
	BandCanonical18
	// BandLegacy20 covers 2020 through 2022
	BandLegacy20
	// BandRenamed23 covers 2023, the first year with the renamed sheet
	BandRenamed23
	// BandCurrent covers 2024 onwards and any year not listed above
	BandCurrent
)

// String returns the band name used in logs and metrics
func (b Band) String() string {
	switch b {
	case BandLegacy:
		return "legacy"
	case BandCanonical18:
		return "canonical_2018"
	case BandLegacy20:
		return "legacy_2020"
	case BandRenamed23:
		return "renamed_2023"
	case BandCurrent:
		return "current"
	default:
		return fmt.Sprintf("band(%d)", int(b))
	}
}

// YearSchema describes where the catalog lives in a workbook and how its
// headers map to the canonical names
type YearSchema struct {
	Year      int
	Band      Band
	SheetName string
	Renames   map[string]string
}

// HasRenames reports whether any header needs renaming for this layout
func (s YearSchema) HasRenames() bool {
	return len(s.Renames) > 0
}

type layout struct {
	sheet   string
	renames map[string]string
}

var legacyRenames = map[string]string{
	"UNIVERSIDAD": ColumnUniversity,
	"CARRERA":     ColumnProgram,
	"CODIGO":      ColumnCode,
}

var layouts = map[Band]layout{
	BandLegacy:      {sheet: SheetLegacy, renames: legacyRenames},
	BandCanonical18: {sheet: SheetLegacy},
	BandLegacy20:    {sheet: SheetLegacy, renames: legacyRenames},
	BandRenamed23:   {sheet: SheetCurrent, renames: legacyRenames},
	BandCurrent:     {sheet: SheetCurrent},
}

// BandFor maps a year to its layout band. Total over all integers.
func BandFor(year int) Band {
	switch {
	case year <= 2017:
		return BandLegacy
	case year == 2018 || year == 2019:
		return BandCanonical18
	case year >= 2020 && year <= 2022:
		return BandLegacy20
	case year == 2023:
		return BandRenamed23
	default:
		return BandCurrent
	}
}

// Resolve returns the catalog schema for a year. The rename map is a copy and
// may be modified by the caller.
func Resolve(year int) YearSchema {
	band := BandFor(year)
	l := layouts[band]

	renames := make(map[string]string, len(l.renames))
	for from, to := range l.renames {
		renames[from] = to
	}

	return YearSchema{
		Year:      year,
		Band:      band,
		SheetName: l.sheet,
		Renames:   renames,
	}
}
