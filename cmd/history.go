package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/biolquiz/internal/store"
	"github.com/abhisek/biolquiz/internal/ui/components"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			return fmt.Errorf("--limit must be positive")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		answers, err := st.EventRepo().RecentAnswers(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("load answers: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(answers) == 0 {
			fmt.Fprintln(out, "No answers recorded yet.")
			return nil
		}

		var rows [][]string
		for _, a := range answers {
			result := "wrong"
			if a.Correct {
				result = "correct"
			}
			rows = append(rows, []string{
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				a.QuestionID,
				truncate(a.Prompt, 40),
				components.OptionLabel(a.Selected) + ") " + truncate(a.SelectedText, 24),
				result,
			})
		}
		printTable(out, []string{"When", "Question", "Prompt", "Chosen", "Result"}, rows)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of answers to show")
}
