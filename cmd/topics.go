package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/biolquiz/internal/logging"
	"github.com/abhisek/biolquiz/internal/store"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List quiz topics with question counts and stored mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := cliLogger()
		ctx := logging.IntoContext(cmd.Context(), &logger)

		b, err := loadBank(ctx)
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		progress, err := st.ProgressRepo().All(ctx)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		var rows [][]string
		for _, q := range b.Quizzes() {
			saved := progress[q.ID]
			mastered := 0
			for _, question := range q.Questions {
				if saved[question.ID] {
					mastered++
				}
			}
			rows = append(rows, []string{
				q.ID,
				q.Title,
				strconv.Itoa(len(q.Questions)),
				strconv.Itoa(mastered),
			})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, b.Subject)
		printTable(out, []string{"ID", "Topic", "Questions", "Mastered"}, rows)
		if n := b.Skipped(); n > 0 {
			fmt.Fprintf(out, "%d questions without options were left out.\n", n)
		}
		fmt.Fprintf(out, "%d of %d questions mastered overall.\n", totalMastered(progress), b.QuestionCount())
		return nil
	},
}

func totalMastered(progress map[string]map[string]bool) int {
	n := 0
	for _, quiz := range progress {
		n += store.MasteredCount(quiz)
	}
	return n
}
