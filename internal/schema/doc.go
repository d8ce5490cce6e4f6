// Package schema maps an admission year to the layout of that year's program
// catalog workbook.
//
// The catalog format drifts between years: the sheet was renamed in 2023 and
// the header names switch between a legacy set (UNIVERSIDAD, CARRERA, CODIGO)
// and the canonical set (NOMBRE_UNIVERSIDAD, NOMBRE_CARRERA, CODIGO_CARRERA).
// The known layouts form a closed set of bands:
//
//	<= 2017     legacy sheet, legacy headers
//	2018-2019   legacy sheet, canonical headers
//	2020-2022   legacy sheet, legacy headers
//	2023        renamed sheet, legacy headers
//	>= 2024     renamed sheet, canonical headers (also the fallback)
//
// Resolve is pure and never fails.
package schema
