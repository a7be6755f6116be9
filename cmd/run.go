package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/biolquiz/internal/app"
	"github.com/abhisek/biolquiz/internal/logging"
)

// runApp opens the store, loads the bank, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	ctx = logging.IntoContext(ctx, &logger)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	opts := app.Options{
		ProgressRepo: st.ProgressRepo(),
		EventRepo:    st.EventRepo(),
		Logger:       &logger,
	}

	b, err := loadBank(ctx)
	if err != nil {
		// The TUI shows the no-data state instead of exiting.
		logger.Error().Err(err).Str("source", cfg.Bank).Msg("failed to load question bank")
		opts.LoadErr = err
	} else {
		logger.Info().
			Str("subject", b.Subject).
			Int("quizzes", len(b.Quizzes())).
			Int("questions", b.QuestionCount()).
			Int("skipped", b.Skipped()).
			Msg("question bank loaded")
		opts.Bank = b
	}

	return app.Run(opts)
}

// fileLogger opens the TUI log file; the terminal belongs to the TUI.
func fileLogger() (zerolog.Logger, func(), error) {
	path := cfg.Log.File
	if path == "" {
		p, err := logging.DefaultLogPath()
		if err != nil {
			return zerolog.Nop(), func() {}, fmt.Errorf("resolve log path: %w", err)
		}
		path = p
	}

	f, err := logging.OpenFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		return zerolog.Nop(), func() {}, nil
	}
	logger := logging.New("biolquiz", cfg.Env, f, logging.ParseLevel(cfg.Log.Level), false)
	return logger, func() { f.Close() }, nil
}

