package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "puntajes/internal/errors"
	api "puntajes/pkg/contracts/api/v1"
)

func newOptionsCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "opciones <year>",
		Short: "Lista universidades y carreras de un año",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := api.ParseYear(args[0])
			if err != nil {
				return rt.write(nil, apperrors.InvalidYearError(args[0]))
			}
			return rt.write(rt.services.Admission.ListOptions(cmd.Context(), year))
		},
	}
}

func newQueryCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "consultar <year> <universidad> <carrera>",
		Short: "Rango de puntaje ponderado por código de carrera",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := api.ParseYear(args[0])
			if err != nil {
				return rt.write(nil, apperrors.InvalidYearError(args[0]))
			}
			university, program := strings.TrimSpace(args[1]), strings.TrimSpace(args[2])
			if university == "" || program == "" {
				return rt.write(nil, apperrors.ErrMissingFields)
			}
			return rt.write(rt.services.Admission.Query(cmd.Context(), year, university, program))
		},
	}
}

func newYearsCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "anios",
		Short: "Lista los años con datos disponibles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.write(rt.services.Admission.Years(cmd.Context()))
		},
	}
}

func newCheckCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "verificar",
		Short: "Revisa que cada año tenga su libro de códigos y su archivo de matrícula",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := rt.services.Validator.Check()
			if err != nil {
				return err
			}
			if err := rt.writeJSON(report); err != nil {
				return err
			}
			if missing := report.Incomplete(); len(missing) > 0 {
				return fmt.Errorf("incomplete years: %v", missing)
			}
			return nil
		},
	}
}
