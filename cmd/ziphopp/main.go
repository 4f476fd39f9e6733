package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/ziphopp/internal/app"
	"github.com/creativeyann17/ziphopp/internal/config"
	"github.com/creativeyann17/ziphopp/internal/logger"
	"github.com/creativeyann17/ziphopp/pkg/history"
	"github.com/creativeyann17/ziphopp/pkg/picker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Persistent flags shared by every subcommand
var (
	configPath  string
	historyPath string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:           "ziphopp",
	Short:         "ziphopp - inspect zip archives and keep track of recent ones",
	Long:          "ziphopp lists the contents of zip archives, checks passwords of encrypted ones,\nand remembers the archives you opened last.",
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <user config dir>/ziphopp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&historyPath, "history", "", "History file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostics level: debug, info, warn, error (overrides config)")
}

// environment is everything a command needs once config is loaded
type environment struct {
	cfg   *config.Config
	log   logger.Logger
	store *history.Store
}

// setup loads config, builds the logger and opens the history store.
// fallbackLevel applies when --log-level is not set; empty keeps the config level.
// The history store cannot work without its file, so failing to open it is fatal.
func setup(fallbackLevel string) (*environment, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if historyPath != "" {
		cfg.HistoryFile = historyPath
	}
	switch {
	case logLevel != "":
		cfg.Log.Level = logLevel
	case fallbackLevel != "":
		cfg.Log.Level = fallbackLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(cfg.LoggerOptions()...)
	log.Debug("config loaded", "config", path, "history", cfg.HistoryFile, "max_recent", cfg.MaxRecent)

	store, err := history.Open(cfg.HistoryFile, cfg.MaxRecent)
	if err != nil {
		return nil, fmt.Errorf("history unavailable: %w", err)
	}

	return &environment{cfg: cfg, log: log, store: store}, nil
}

// newApp builds the app with the given picker
func (e *environment) newApp(p picker.Picker) (*app.App, error) {
	return app.New(app.Options{
		History:    e.store,
		Picker:     p,
		Filter:     e.cfg.PickerFilter(),
		VerifyData: e.cfg.VerifyData,
		Logger:     e.log,
	})
}

func (e *environment) close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close history", "error", err)
	}
}
