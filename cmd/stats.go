package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parserinator/parserinator/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent quiz sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		var sessions []store.SessionSummaryRecord
		err := withRepo(cmd, func(repo store.EventRepo) error {
			var err error
			sessions, err = repo.QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
			return err
		})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-16s  %-9s  %-4s  %-30s  %6s  %8s  %6s\n",
			"Date", "Level", "Year", "Subjects", "Score", "Attempts", "Time")
		fmt.Println(strings.Repeat("─", 92))

		var score, attempts, secs int
		for _, s := range sessions {
			subjects := "Any"
			if s.Subjects != "" {
				subjects = strings.ReplaceAll(s.Subjects, ";", ", ")
			}
			fmt.Printf("%-16s  %-9s  %-4d  %-30s  %6d  %8d  %6s\n",
				s.Timestamp.Local().Format("2006-01-02 15:04"),
				s.Difficulty, s.Year, truncate(subjects, 30),
				s.Score, s.Attempts, formatDuration(s.DurationSecs))
			score += s.Score
			attempts += s.Attempts
			secs += s.DurationSecs
		}
		fmt.Println(strings.Repeat("─", 92))
		fmt.Printf("%-16s  %-9s  %-4s  %-30s  %6d  %8d  %6s\n",
			fmt.Sprintf("%d sessions", len(sessions)), "", "", "", score, attempts, formatDuration(secs))
		return nil
	},
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
