package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/signboard/internal/config"
	"github.com/nao1215/signboard/internal/gsheet"
	"github.com/nao1215/signboard/internal/log"
	"github.com/nao1215/signboard/internal/model"
	"github.com/nao1215/signboard/internal/pipeline"
	"github.com/nao1215/signboard/internal/report"
)

// ErrLoadFailed is returned when at least one source failed to load.
var ErrLoadFailed = errors.New("failed to load")

// app bundles what a command needs after flags and config are resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	loader *pipeline.Loader
}

// newApp resolves configuration from flags, the config file and the given
// source names, then builds the logger and loader.
func newApp(cmd *cobra.Command, sourceNames []string) (*app, error) {
	cfg, err := buildConfig(cmd, sourceNames)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg, cmd.ErrOrStderr())

	opts := cfg.ClientOptions()
	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		opts = append(opts, gsheet.WithBaseURL(baseURL))
	}

	client, err := gsheet.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet client: %w", err)
	}

	loader := pipeline.NewLoader(
		pipeline.StandardFactory(client, cfg.LocaleTag(), logger),
		pipeline.WithLoaderLogger(logger),
	)

	logger.Debug("configuration resolved",
		"sources", len(cfg.Sources),
		"timeout", cfg.Timeout,
		"locale", cfg.Locale,
		"config", cfg.ConfigFilePath,
	)

	return &app{cfg: cfg, logger: logger, loader: loader}, nil
}

// buildConfig creates a Config from defaults, the config file and flags.
func buildConfig(cmd *cobra.Command, sourceNames []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not found.
	// Otherwise run without one when nothing is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
		cfg.ConfigFilePath = configPath
	case explicitConfigPath:
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	// Flags win over the config file only when given.
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.Proxy, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("locale") {
		if cfg.Locale, err = flags.GetString("locale"); err != nil {
			return nil, err
		}
	}

	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}

	// Report flags are only registered on the commands that render reports.
	if flags.Lookup("json") != nil {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("markdown") != nil {
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("output") != nil {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("xlsx") != nil {
		if cfg.XLSXFile, err = flags.GetString("xlsx"); err != nil {
			return nil, err
		}
	}

	var override config.SourceOverride
	if override.SheetID, err = flags.GetString("sheet-id"); err != nil {
		return nil, err
	}
	if override.GID, err = flags.GetString("gid"); err != nil {
		return nil, err
	}
	if override.Range, err = flags.GetString("range"); err != nil {
		return nil, err
	}

	if err := cfg.ResolveSources(sourceNames, override); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setupLogger creates the secure structured logger for the configuration.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if cfg.LogJSON {
		return log.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return log.NewSecureLogger(w, cfg.Verbose)
}

// signalContext returns a context cancelled on interrupt or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openOutput returns the report destination. An empty path means the
// command's stdout. The returned close function is always safe to call.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// writeReport renders with the selected writer into memory, then copies the
// result to the configured destination. A failed render leaves the
// destination untouched.
func (a *app) writeReport(cmd *cobra.Command, render func(report.Writer) (int, error)) error {
	path := a.cfg.ReportFile
	if a.cfg.XLSXFile != "" {
		path = a.cfg.XLSXFile
	}

	var buf bytes.Buffer
	if _, err := render(a.newWriter(&buf)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	out, closeOut, err := openOutput(cmd, path)
	if err != nil {
		return err
	}

	_, err = buf.WriteTo(out)
	if cerr := closeOut(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
	}
	return nil
}

// newWriter selects the report writer for the configured format.
func (a *app) newWriter(out io.Writer) report.Writer {
	switch {
	case a.cfg.XLSXFile != "":
		return report.NewXLSXWriter(out)
	case a.cfg.JSONReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case a.cfg.MarkdownReport:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(a.cfg.Verbose))
	}
}

// loadFailures returns an error naming every snapshot that failed to load.
func loadFailures(snaps []*model.Snapshot) error {
	var errs []error
	for _, snap := range snaps {
		if snap == nil || !snap.Status.IsFailure() {
			continue
		}
		errs = append(errs, fmt.Errorf("%w %q (%s): %s", ErrLoadFailed, snap.Source, snap.Status, snap.ErrorMessage))
	}
	return errors.Join(errs...)
}
