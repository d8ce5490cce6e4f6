// Package catalog caches the per-year academic offer workbook.
//
// A Store reads a year's workbook the first time it is asked for, repairs
// mis-decoded text in every cell, maps legacy headers to NOMBRE_UNIVERSIDAD,
// NOMBRE_CARRERA and CODIGO_CARRERA, and then serves the same Table to every
// later caller. Missing or unreadable workbooks are reported each time and
// never cached, so a file dropped into place later is picked up.
package catalog
