package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"puntajes/internal/app"
	"puntajes/internal/config"
	apperrors "puntajes/internal/errors"
	"puntajes/internal/exporter"
	"puntajes/internal/infrastructure"
	"puntajes/pkg/contracts"
	"puntajes/pkg/contracts/domain"
)

// errReported marks a failure whose JSON body was already written.
var errReported = errors.New("error reported")

type cliOptions struct {
	configFile string
	dataDir    string
	logLevel   string
	format     string
	output     string
}

// session is what every subcommand needs once flags are parsed.
type session struct {
	services   *app.ServiceContainer
	errHandler *apperrors.ErrorHandler
	csv        *exporter.CSVWriter
	format     string
	output     string
	out        io.Writer
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	rt := &session{}

	root := &cobra.Command{
		Use:           "puntajes",
		Short:         "Consulta de puntajes de admisión sobre los archivos locales",
		Version:       contracts.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: config.yaml if present)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data root holding one directory per year")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	root.PersistentFlags().StringVar(&opts.format, "format", "json", "result format: json or csv")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "write csv results to this file instead of stdout")

	root.AddCommand(
		newOptionsCmd(rt),
		newQueryCmd(rt),
		newYearsCmd(rt),
		newCheckCmd(rt),
	)
	return root
}

func (rt *session) init(cmd *cobra.Command, opts *cliOptions) error {
	if opts.format != "json" && opts.format != "csv" {
		return fmt.Errorf("unsupported format %q", opts.format)
	}
	if opts.output != "" && opts.format != "csv" {
		return errors.New("--output requires --format csv")
	}

	load := config.Load
	if opts.configFile != "" {
		load = func() (*config.Config, error) { return config.LoadFrom(opts.configFile) }
	}
	cfg, err := load()
	if err != nil {
		return err
	}
	if opts.dataDir != "" {
		cfg.Paths.DataDir = opts.dataDir
	}
	cfg.Logging.Level = opts.logLevel
	cfg.Logging.Output = "stderr"
	cfg.Logging.Format = "text"

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return err
	}
	logger.Debug("using data root", slog.String("data_dir", paths.DataDir))

	rt.services = app.NewServiceContainer(paths.DataDir, logger, nil)
	rt.errHandler = apperrors.NewErrorHandler(logger, false)
	rt.csv = exporter.NewCSVWriter(logger)
	rt.format = opts.format
	rt.output = opts.output
	rt.out = cmd.OutOrStdout()
	return nil
}

// write prints v in the selected format, or the error body for err as
// indented JSON. Errors that map to a successful HTTP status still exit zero.
func (rt *session) write(v interface{}, err error) error {
	if err == nil {
		if rt.format == "csv" {
			return rt.writeCSV(v)
		}
		return rt.writeJSON(v)
	}

	apiErr := rt.errHandler.ToAPIError(err)
	if encErr := rt.writeJSON(apiErr); encErr != nil {
		return encErr
	}
	if apiErr.StatusCode < http.StatusBadRequest {
		return nil
	}
	return errReported
}

func (rt *session) writeCSV(v interface{}) error {
	var opts exporter.WriteOptions
	switch res := v.(type) {
	case *domain.QueryResult:
		opts = exporter.QueryOptions(res)
	case *domain.Options:
		opts = exporter.OptionsOptions(res)
	case *domain.Years:
		opts = exporter.YearsOptions(res)
	default:
		return fmt.Errorf("no csv layout for %T", v)
	}

	if rt.output != "" {
		if err := rt.csv.WriteFile(rt.output, opts); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "wrote", rt.output)
		return nil
	}
	return rt.csv.Write(rt.out, opts)
}

func (rt *session) writeJSON(v interface{}) error {
	enc := json.NewEncoder(rt.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
