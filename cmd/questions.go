package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
)

var questionsCmd = &cobra.Command{
	Use:     "questions",
	Aliases: []string{"q"},
	Short:   "Manage the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		printNotices(rt.Env)

		questions := rt.Env.Bank.Questions()
		if anyFilterFlag(cmd) {
			crit, err := criteriaFromFlags(cmd, filter.Criteria{})
			if err != nil {
				return err
			}
			questions = filterPartial(questions, cmd, crit)
		}

		if len(questions) == 0 {
			fmt.Println("No questions found.")
			return nil
		}

		fmt.Printf("%-4s  %-9s  %-4s  %-24s  %-48s  %s\n", "#", "Level", "Year", "Subjects", "Question", "Answer")
		fmt.Println(strings.Repeat("─", 110))
		for i, q := range questions {
			fmt.Printf("%-4d  %-9s  %-4d  %-24s  %-48s  %s\n",
				i+1, q.Difficulty, q.Year,
				truncate(strings.Join(q.Subjects, ", "), 24),
				truncate(q.Text, 48),
				q.Answer,
			)
		}
		fmt.Printf("\n%d question(s)\n", len(questions))
		return nil
	},
}

var questionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question",
	Example: `  parserinator questions add --text "Largest planet?" --answer Jupiter \
    --subject Science --difficulty District --year 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		text, _ := cmd.Flags().GetString("text")
		answer, _ := cmd.Flags().GetString("answer")
		subjects, _ := cmd.Flags().GetStringSlice("subject")
		level, _ := cmd.Flags().GetString("difficulty")
		year, _ := cmd.Flags().GetInt("year")

		difficulty, ok := bank.ParseDifficulty(level)
		if !ok {
			difficulty = bank.Difficulty(level)
		}
		q := bank.Question{Text: text, Answer: answer, Subjects: subjects, Difficulty: difficulty, Year: year}
		if err := rt.Env.Bank.Add(q); err != nil {
			var verr *bank.ValidationError
			if errors.As(err, &verr) {
				return verr
			}
			return fmt.Errorf("add question: %w", err)
		}
		fmt.Printf("Added. %d question(s) in the bank.\n", rt.Env.Bank.Len())
		return nil
	},
}

var questionsDeleteCmd = &cobra.Command{
	Use:   "delete <text>",
	Short: "Delete every question with exactly this text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		n, err := rt.Env.Bank.Remove(bank.ByText(args[0]))
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("no question with text %q", args[0])
		}
		fmt.Printf("Deleted %d question(s).\n", n)
		return nil
	},
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Append questions from a spreadsheet",
	Long: "Append questions from the first sheet of an .xlsx file. The first row is a\n" +
		"header: Text, Answer, Subjects (separated by ;), Difficulty, Year.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		n, rowErrs, err := rt.Env.Bank.ImportXLSX(args[0])
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		for _, re := range rowErrs {
			fmt.Fprintln(cmd.ErrOrStderr(), "skipped", re)
		}
		fmt.Printf("Imported %d question(s), skipped %d.\n", n, len(rowErrs))
		return nil
	},
}

var questionsExportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Write questions to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		printNotices(rt.Env)

		questions := rt.Env.Bank.Questions()
		if anyFilterFlag(cmd) {
			crit, err := criteriaFromFlags(cmd, filter.Criteria{})
			if err != nil {
				return err
			}
			questions = filterPartial(questions, cmd, crit)
		}
		if err := bank.ExportXLSX(args[0], questions); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("Exported %d question(s) to %s.\n", len(questions), args[0])
		return nil
	},
}

func anyFilterFlag(cmd *cobra.Command) bool {
	f := cmd.Flags()
	return f.Changed("year") || f.Changed("difficulty") || f.Changed("subject")
}

// filterPartial keeps questions matching the filter flags that were set.
// Unlike the quiz filter, year and difficulty may be left open here.
func filterPartial(questions []bank.Question, cmd *cobra.Command, c filter.Criteria) []bank.Question {
	f := cmd.Flags()
	var out []bank.Question
	for _, q := range questions {
		if f.Changed("year") && q.Year != c.Year {
			continue
		}
		if f.Changed("difficulty") && q.Difficulty != c.Difficulty {
			continue
		}
		if len(c.Subjects) > 0 && !q.HasSubject(c.Subjects[0]) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func init() {
	addFilterFlags(questionsListCmd)
	addFilterFlags(questionsExportCmd)

	questionsAddCmd.Flags().String("text", "", "Question text")
	questionsAddCmd.Flags().String("answer", "", "Answer")
	questionsAddCmd.Flags().StringSlice("subject", nil, "Subject (repeatable)")
	questionsAddCmd.Flags().String("difficulty", string(bank.DifficultyDistrict), "District, Regional or State")
	questionsAddCmd.Flags().Int("year", 0, "Question year")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsAddCmd)
	questionsCmd.AddCommand(questionsDeleteCmd)
	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsExportCmd)
}
