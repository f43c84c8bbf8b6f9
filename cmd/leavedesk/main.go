// Command leavedesk is the terminal client for the leave desk backend: an
// interactive dashboard plus scriptable subcommands.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naveenspark/leavedesk/internal/config"
	"github.com/naveenspark/leavedesk/internal/logging"
	"github.com/naveenspark/leavedesk/internal/metrics"
	"github.com/naveenspark/leavedesk/internal/service"
	"github.com/naveenspark/leavedesk/internal/session"
	"github.com/naveenspark/leavedesk/internal/storage"
	"github.com/naveenspark/leavedesk/internal/token"
	"github.com/naveenspark/leavedesk/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	a := newApp(os.Stdin, os.Stdout)
	err := a.rootCmd().Execute()
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the flags and the lazily built dependencies shared by commands.
type app struct {
	in  io.Reader
	out io.Writer

	configPath  string
	logLevel    string
	metricsFile string

	cfg           *config.Config
	logger        *zap.Logger
	restoreGlobal func()
	store         storage.KV
	recorder      *metrics.Recorder
	svc           *service.Service
	prompt        *prompter
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{in: in, out: out}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leavedesk",
		Short:         "Manage leave requests from the terminal",
		Long:          "leavedesk opens an interactive dashboard when run without a subcommand.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			return a.runDashboard()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/.leavedesk/config.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "write API call metrics to this file on exit")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.requestsCmd(),
		a.employeesCmd(),
		a.supervisorsCmd(),
		a.configCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "leavedesk "+version)
		},
	}
}

// loadConfig resolves configuration once.
func (a *app) loadConfig() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.NewLoader(nil).Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	return nil
}

// setup builds logger, storage and service from the configuration.
func (a *app) setup() error {
	if a.svc != nil {
		return nil
	}
	if err := a.loadConfig(); err != nil {
		return err
	}
	cfg := a.cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return err
	}
	a.logger = logger
	a.restoreGlobal = zap.ReplaceGlobals(logger)

	store, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.store = store

	a.recorder = metrics.New()
	c := client.New(cfg.API.BaseURL,
		client.WithTimeout(cfg.API.Timeout),
		client.WithRetryConfig(client.RetryConfig{
			MaxRetries:      cfg.API.Retry.Retries(),
			InitialInterval: cfg.API.Retry.InitialInterval,
			Multiplier:      cfg.API.Retry.Multiplier,
			MaxInterval:     cfg.API.Retry.MaxInterval,
		}),
		client.WithLogger(logger.Named("client")),
		client.WithObserver(a.recorder),
	)

	tokens := token.New(store).WithOverride(os.Getenv(token.EnvVar))
	a.svc = service.New(c, tokens, session.New(store),
		service.WithLogger(logger.Named("service")),
		service.WithTokenLifetime(cfg.Token.LifetimeDays),
	)
	logger.Debug("ready",
		zap.String("api", cfg.API.BaseURL),
		zap.String("storage", cfg.Storage.Path),
		zap.String("version", version))
	return nil
}

// close flushes metrics and releases storage. Safe to call more than once.
func (a *app) close() {
	if a.recorder != nil && a.metricsFile != "" {
		if err := a.recorder.WriteToTextfile(a.metricsFile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: write metrics: %v\n", err)
		}
		a.recorder = nil
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close storage", zap.Error(err))
		}
		a.store = nil
	}
	if a.logger != nil {
		a.logger.Sync() //nolint:errcheck
	}
	if a.restoreGlobal != nil {
		a.restoreGlobal()
		a.restoreGlobal = nil
	}
}

// check turns a failed Result into an error carrying its message.
func check[T any](r service.Result[T]) (T, error) {
	if !r.OK() {
		return r.Data, errors.New(r.Error)
	}
	return r.Data, nil
}
