package exporter

import (
	"puntajes/pkg/contracts/domain"
)

// QueryHeaders are the columns of a query export, named like the JSON keys.
var QueryHeaders = []string{
	"codigo_carrera",
	"encontrado",
	"puntaje_min",
	"puntaje_max",
	"columna_usada",
	"mensaje",
}

// OptionsHeaders are the columns of an options export.
var OptionsHeaders = []string{"universidad", "carrera"}

// QueryOptions turns a query result into one row per code. Score cells are
// empty for unresolved codes.
func QueryOptions(res *domain.QueryResult) WriteOptions {
	opts := WriteOptions{Headers: QueryHeaders, BOMPrefix: true}
	if res == nil {
		return opts
	}

	for _, r := range res.Results {
		var lo, hi string
		if r.ScoreMin != nil {
			lo = formatFloat(*r.ScoreMin)
		}
		if r.ScoreMax != nil {
			hi = formatFloat(*r.ScoreMax)
		}
		opts.Records = append(opts.Records, []string{
			formatInt(r.Code),
			formatBool(r.Found),
			lo,
			hi,
			r.ColumnUsed,
			r.Message,
		})
	}
	return opts
}

// OptionsOptions flattens the options listing to university and program
// pairs, sorted by university then program.
func OptionsOptions(o *domain.Options) WriteOptions {
	opts := WriteOptions{Headers: OptionsHeaders, BOMPrefix: true}
	if o == nil {
		return opts
	}

	for _, uni := range o.Universities {
		for _, program := range o.ProgramsByUniversity[uni] {
			opts.Records = append(opts.Records, []string{uni, program})
		}
	}
	return opts
}

// YearsOptions lists the available years, one per row.
func YearsOptions(y *domain.Years) WriteOptions {
	opts := WriteOptions{Headers: []string{"anio"}, BOMPrefix: true}
	if y == nil {
		return opts
	}
	for _, year := range y.Years {
		opts.Records = append(opts.Records, []string{formatInt(int64(year))})
	}
	return opts
}
