package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CleanScore converts a raw score cell to a float64. It never fails: blanks,
// unparsable text and non-finite values all become 0.0.
func CleanScore(v any) float64 {
	f, _ := ParseScore(v)
	return f
}

// ParseScore is CleanScore with an explicit success flag. Strings are trimmed
// and decimal commas become points before parsing.
func ParseScore(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		return parseScoreString(x)
	default:
		return parseScoreString(fmt.Sprint(x))
	}
}

func parseScoreString(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInteger reads an integer cell. Integral decimals such as "101.0", the
// way spreadsheets often store codes, are accepted.
func ParseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
