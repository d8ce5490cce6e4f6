package services

import (
	"errors"
	"fmt"
	"strings"

	apperrors "puntajes/internal/errors"
)

// Admission errors. They are carried as the Cause of an *apperrors.AppError
// whose Message is shown to users, so both errors.Is on these sentinels and
// errors.As on AppError work on anything AdmissionService returns.
var (
	ErrNoCatalog      = errors.New("no catalog for year")
	ErrNoEnrollment   = errors.New("no enrollment ledger for year")
	ErrNoMatch        = errors.New("no catalog rows match university and program")
	ErrSchemaMismatch = errors.New("data file lacks expected columns")
	ErrReadFailure    = errors.New("data file could not be read")
)

// User facing messages.
const (
	msgNoOptions         = "No hay datos disponibles para el año %d"
	msgNoCodes           = "No se pudieron cargar códigos para %d"
	msgNoEnrollment      = "No se encontró el archivo de matrícula para el año %d"
	msgNoMatch           = "No se encontraron registros para la combinación universidad/carrera."
	msgCatalogColumns    = "El archivo de datos no tiene las columnas esperadas (%s)"
	msgEnrollmentColumns = "El archivo de matrícula no tiene las columnas esperadas (%s)"
	msgInternal          = "Error interno procesando datos"
)

func wrap(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

func notFound(sentinel error, message string, cause error) error {
	return apperrors.NewNotFoundError(message, wrap(sentinel, cause))
}

func readFailure(cause error) error {
	return apperrors.NewParsingError(msgInternal, wrap(ErrReadFailure, cause))
}

// schemaMismatch names every expected column to the user and only the
// missing ones in the cause.
func schemaMismatch(format string, expected, missing []string) error {
	return apperrors.NewSchemaError(fmt.Sprintf(format, strings.Join(expected, ", ")),
		fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", ")))
}

func noMatch(university, program string) error {
	return apperrors.NewNoMatchError(msgNoMatch,
		fmt.Errorf("%w: %q / %q", ErrNoMatch, university, program)).
		WithContext("universidad", university).
		WithContext("carrera", program)
}

// outcome labels metrics with "ok" or the error type.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if t := apperrors.TypeOf(err); t != "" {
		return string(t)
	}
	return "error"
}
