package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	api "puntajes/pkg/contracts/api/v1"
)

// ErrEmptyBody is returned by DecodeJSON for a request without a body.
var ErrEmptyBody = errors.New("empty request body")

// FieldErrors lists the request fields that failed validation, by JSON name.
type FieldErrors []FieldError

// FieldError describes one invalid field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (fe FieldErrors) Error() string {
	return "invalid fields: " + strings.Join(fe.Fields(), ", ")
}

// Fields returns the names of the invalid fields.
func (fe FieldErrors) Fields() []string {
	names := make([]string, len(fe))
	for i, f := range fe {
		names[i] = f.Field
	}
	return names
}

// Validator validates decoded request bodies using struct tags.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a validator that reports fields by their JSON name
// and understands api.Year.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// an unset year validates as a missing value
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if y, ok := field.Interface().(api.Year); ok && y.Set() {
			return y.Value
		}
		return nil
	}, api.Year{})

	return &Validator{
		validate: v,
		logger:   logger.With(slog.String("component", "validation")),
	}
}

// Struct validates s and returns FieldErrors when any rule fails.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	v.logger.Debug("request validation failed", slog.String("fields", fields.Error()))
	return fields
}

// DecodeJSON decodes the request body into dst. An absent, blank or null
// body yields ErrEmptyBody; malformed JSON and trailing data are errors too.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	var raw json.RawMessage
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("decode request body: unexpected data after JSON value")
	}
	if string(raw) == "null" {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
