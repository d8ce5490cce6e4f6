package dataprocessing

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a workbook has no sheet with the
// requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ReadWorkbookSheet reads one sheet of an xlsx workbook into a Table. The
// first row is the header row and headers are trimmed. Cells come back as
// their stored value, not the text their number format displays, so a code
// shown as "11,045" reads as "11045". Fully blank rows are dropped.
func ReadWorkbookSheet(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q: %w", sheet, err)
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrSheetNotFound, sheet, f.GetSheetList())
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	t := newTable(rows)
	t.TrimHeaders()
	return t, nil
}
