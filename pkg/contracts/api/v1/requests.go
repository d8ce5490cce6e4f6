// Package api contains the request and response contracts of the v1 HTTP API.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"puntajes/pkg/contracts/domain"
)

// ErrInvalidYear is returned when a year value is present but is not a
// positive integer.
var ErrInvalidYear = errors.New("invalid year")

// Year is an admission year that decodes from a JSON number or a numeric
// string. The web client posts the year as a string.
type Year struct {
	Value int
	// Raw is the value as received, kept for error messages.
	Raw string
}

// Set reports whether a non-empty value was supplied.
func (y Year) Set() bool {
	return y.Raw != ""
}

// UnmarshalJSON implements json.Unmarshaler. null and "" leave the year unset.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = Year{}
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	*y = Year{Raw: raw}
	if raw == "" {
		return nil
	}

	v, err := ParseYear(raw)
	if err != nil {
		return err
	}
	y.Value = v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (y Year) MarshalJSON() ([]byte, error) {
	if !y.Set() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(y.Value)), nil
}

// ParseYear parses a positive integer year. A trailing ".0" is accepted so
// that 2024.0 from a spreadsheet-minded client still works.
func ParseYear(raw string) (int, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), ".0")
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, raw)
	}
	return v, nil
}

// QueryRequest is the body of POST /api/consultar.
type QueryRequest struct {
	Year       Year   `json:"year" validate:"required"`
	University string `json:"universidad" validate:"required"`
	Program    string `json:"carrera" validate:"required"`
}

// Normalize trims surrounding whitespace from the free-text fields.
func (r *QueryRequest) Normalize() {
	r.University = strings.TrimSpace(r.University)
	r.Program = strings.TrimSpace(r.Program)
}

// QueryResponse is the success body of POST /api/consultar.
type QueryResponse = domain.QueryResult

// OptionsResponse is the body of GET /api/opciones/{year}.
type OptionsResponse = domain.Options

// YearsResponse is the body of GET /api/anios.
type YearsResponse = domain.Years

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
