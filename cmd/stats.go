package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/biolquiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored progress and recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("sessions")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		progress, err := st.ProgressRepo().All(ctx)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		sessions, err := st.EventRepo().RecentSessions(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(progress) == 0 && len(sessions) == 0 {
			fmt.Fprintln(out, "No progress recorded yet.")
			return nil
		}

		quizIDs := make([]string, 0, len(progress))
		for id := range progress {
			quizIDs = append(quizIDs, id)
		}
		sort.Strings(quizIDs)

		var rows [][]string
		for _, id := range quizIDs {
			answered := len(progress[id])
			mastered := store.MasteredCount(progress[id])
			rows = append(rows, []string{
				id,
				strconv.Itoa(answered),
				strconv.Itoa(mastered),
				strconv.Itoa(answered - mastered),
			})
		}
		fmt.Fprintln(out, "Progress")
		printTable(out, []string{"Quiz", "Answered", "Correct", "Wrong"}, rows)

		if len(sessions) == 0 {
			return nil
		}
		rows = rows[:0]
		for _, s := range sessions {
			rows = append(rows, []string{
				s.Timestamp.Local().Format("2006-01-02 15:04"),
				s.Action,
				strings.Join(s.QuizIDs, ","),
				fmt.Sprintf("%d/%d", s.Mastered, s.Total),
				strconv.Itoa(s.FirstTry),
				(time.Duration(s.DurationSecs) * time.Second).String(),
			})
		}
		fmt.Fprintln(out, "Recent sessions")
		printTable(out, []string{"When", "Action", "Quizzes", "Mastered", "First try", "Duration"}, rows)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("sessions", 10, "Number of recent sessions to show")
}
