package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear stored progress",
	Long:  "Clear stored per-question progress for one quiz (--quiz) or for every quiz. The event log is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		quizID, _ := cmd.Flags().GetString("quiz")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ProgressRepo().Reset(cmd.Context(), quizID)
		if err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}

		logger := cliLogger()
		logger.Debug().Str("quiz_id", quizID).Int("rows", n).Msg("progress reset")

		scope := "all quizzes"
		if quizID != "" {
			scope = quizID
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d progress records for %s.\n", n, scope)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("quiz", "", "Quiz id to reset, e.g. quiz_0 (default: all)")
}
