// Package shared holds code used by several packages that belongs to none of
// them.
//
// The testutil subpackage provides:
//
//   - a capturing slog handler with assertion helpers
//   - fixture writers for catalog workbooks and enrollment ledgers laid out
//     the way internal/files expects them
//
// Example usage:
//
//	func TestQuery(t *testing.T) {
//	    root := t.TempDir()
//	    testutil.WriteCatalog(t, root, 2024, schema.SheetCurrent, rows)
//	    testutil.WriteLedger(t, root, 2024, "CODIGO;TIPO_MATRICULA;PTJE_POND", "101;1;650,5")
//	    logger, logs := testutil.NewTestLogger(t)
//	    // ...
//	}
package shared
