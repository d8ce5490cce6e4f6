package domain

import "sort"

// CatalogRecord is one row of the academic offer catalog. A university and
// program pair may appear with several codes, one per campus or admission
// track.
type CatalogRecord struct {
	University string `json:"universidad"`
	Program    string `json:"carrera"`
	Code       int64  `json:"codigo_carrera"`
}

// DistinctCodes returns the codes of records without repeats, in the order
// they first appear.
func DistinctCodes(records []CatalogRecord) []int64 {
	seen := make(map[int64]struct{}, len(records))
	codes := make([]int64, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.Code]; dup {
			continue
		}
		seen[r.Code] = struct{}{}
		codes = append(codes, r.Code)
	}
	return codes
}

// CodeResult is the outcome for a single program code. When Found is false
// Message says why and the score fields are absent.
type CodeResult struct {
	Code       int64    `json:"codigo_carrera"`
	Found      bool     `json:"encontrado"`
	ScoreMin   *float64 `json:"puntaje_min,omitempty"`
	ScoreMax   *float64 `json:"puntaje_max,omitempty"`
	ColumnUsed string   `json:"columna_usada,omitempty"`
	Message    string   `json:"mensaje,omitempty"`
}

// Messages reported on unresolved codes.
const (
	MessageNoRegularEnrollment = "Sin registros de matrícula tipo 1"
	MessageNoScoreColumn       = "Columna de ponderado no encontrada"
)

// NewFoundResult builds the result for a code with a score range.
func NewFoundResult(code int64, min, max float64, column string) CodeResult {
	return CodeResult{
		Code:       code,
		Found:      true,
		ScoreMin:   &min,
		ScoreMax:   &max,
		ColumnUsed: column,
	}
}

// NewMissingResult builds the result for a code that could not be resolved.
func NewMissingResult(code int64, message string) CodeResult {
	return CodeResult{Code: code, Message: message}
}

// QueryResult lists one CodeResult per distinct code, in the order the codes
// appear in the catalog.
type QueryResult struct {
	Results []CodeResult `json:"resultados"`
}

// FoundCount returns how many codes resolved to a score range.
func (q *QueryResult) FoundCount() int {
	n := 0
	for _, r := range q.Results {
		if r.Found {
			n++
		}
	}
	return n
}

// Options feeds the university and program pickers. Both lists are sorted
// and contain no empty or repeated names.
type Options struct {
	Universities         []string            `json:"universidades"`
	ProgramsByUniversity map[string][]string `json:"carreras_por_universidad"`
}

// NewOptions groups catalog name pairs into Options. Pairs with an empty
// university are dropped; an empty program drops only the program.
func NewOptions(pairs [][2]string) *Options {
	programs := make(map[string]map[string]struct{})
	for _, p := range pairs {
		uni, prog := p[0], p[1]
		if uni == "" {
			continue
		}
		set, ok := programs[uni]
		if !ok {
			set = make(map[string]struct{})
			programs[uni] = set
		}
		if prog != "" {
			set[prog] = struct{}{}
		}
	}

	opts := &Options{
		Universities:         make([]string, 0, len(programs)),
		ProgramsByUniversity: make(map[string][]string, len(programs)),
	}
	for uni, set := range programs {
		opts.Universities = append(opts.Universities, uni)
		list := make([]string, 0, len(set))
		for prog := range set {
			list = append(list, prog)
		}
		sort.Strings(list)
		opts.ProgramsByUniversity[uni] = list
	}
	sort.Strings(opts.Universities)
	return opts
}

// Years lists the admission years with data, newest first.
type Years struct {
	Years []int `json:"anios"`
}
