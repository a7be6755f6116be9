package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/biolquiz/internal/bank"
	"github.com/abhisek/biolquiz/internal/config"
	"github.com/abhisek/biolquiz/internal/logging"
	"github.com/abhisek/biolquiz/internal/store"
)

// cfg is loaded before any command runs.
var cfg *config.App

var rootCmd = &cobra.Command{
	Use:          "biolquiz",
	Short:        "Biology multiple-choice quiz",
	Long:         "biolquiz is a terminal quiz for BIOL 1009. Missed questions come back until you answer them correctly.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BIOLQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Question bank file or URL (overrides BIOLQUIZ_BANK env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) error {
	c, err := config.Load(config.DefaultDotenv())
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if b, _ := cmd.Flags().GetString("bank"); b != "" {
		c.Bank = b
	}
	cfg = c
	return nil
}

// resolveDBPath returns the database path using --db or BIOLQUIZ_DB,
// then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func loadBank(ctx context.Context) (*bank.Bank, error) {
	return bank.Load(ctx, cfg.Bank,
		bank.WithImageBase(cfg.ImageBase),
		bank.WithTimeout(cfg.FetchTimeout),
	)
}

// cliLogger logs to stderr for the non-interactive commands.
func cliLogger() zerolog.Logger {
	return logging.New("biolquiz", cfg.Env, os.Stderr, logging.ParseLevel(cfg.Log.Level), true)
}
