// Package exporter writes admission results as CSV.
//
// Files start with a UTF-8 BOM so spreadsheet tools detect the encoding of
// accented university and program names.
//
//	w := exporter.NewCSVWriter(logger)
//	err := w.WriteFile("consulta.csv", exporter.QueryOptions(result))
package exporter
