// Package dataprocessing reads the tabular sources behind the admission
// service and cleans the values found in them.
//
// # Sources
//
// Two readers produce a Table (header row plus string cells):
//
//   - ReadWorkbookSheet reads one named sheet of an xlsx workbook using
//     excelize. Numeric cells come back as their formatted text.
//   - ReadDelimited reads character separated text. LedgerOptions configures
//     it for the enrollment ledger: ';' separated and ISO-8859-1 encoded.
//
// Both trim header whitespace. Nothing else is changed at read time.
//
// # Cleaning
//
// RepairText reverses UTF-8 text that was decoded as Windows-1252 or Latin-1
// and normalizes it to NFC:
//
//	RepairText("UNIVERSIDAD DE CONCEPCIÃ“N") // "UNIVERSIDAD DE CONCEPCIÓN"
//
// CleanScore turns a score cell into a float64 and never fails:
//
//	CleanScore("650,5") // 650.5
//	CleanScore("abc")   // 0
//
// ParseInteger reads code cells, tolerating the "101.0" form spreadsheets
// tend to produce.
package dataprocessing
