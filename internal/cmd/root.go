package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/matthieukhl/telcodata/internal/config"
	"github.com/matthieukhl/telcodata/internal/database"
	"github.com/matthieukhl/telcodata/internal/generate"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// v holds the merged flag, env, file and default settings.
	v = config.New("")
)

var rootCmd = &cobra.Command{
	Use:   "telcodata",
	Short: "Telcodata - synthetic telecom database generator",
	Long: `Telcodata builds a synthetic telecom database (customers, call detail
records, data usage and billing) in a single embedded SQLite file, ready to be
queried by SQL clients or natural-language-to-SQL agents.

Record counts come from config.yaml, TELCODATA_* environment variables or
command flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("db", "", "Database file (sqlite3) or DSN (mysql)")

	// Flags only override config values when set explicitly.
	_ = v.BindPFlag("db.dsn", rootCmd.PersistentFlags().Lookup("db"))
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", describe(err))
		os.Exit(1)
	}
}

// describe prefixes err with the failure kind the user can act on.
func describe(err error) string {
	switch {
	case errors.Is(err, generate.ErrPrecursorMissing):
		return "precursor missing: " + err.Error()
	case errors.Is(err, generate.ErrUniquenessViolation):
		return "uniqueness violation: " + err.Error()
	case errors.Is(err, database.ErrPersistence):
		return "persistence failure: " + err.Error()
	default:
		return err.Error()
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05.000",
	}))
}

func connect(cfg *config.Config) (*database.DB, error) {
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
