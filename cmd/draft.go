package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parserinator/parserinator/internal/draft"
	"github.com/parserinator/parserinator/internal/llm"
	"github.com/parserinator/parserinator/internal/store"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft new questions with an LLM",
	Long: "Ask the configured LLM provider to write questions for a difficulty, year and\n" +
		"subject. Drafted questions are checked for duplicates and shown for review\n" +
		"before they are added to the bank.\n\n" +
		"Configure a provider with PARSERINATOR_LLM_PROVIDER and its API key, or set\n" +
		"ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		printNotices(rt.Env)

		env := rt.Env
		crit, err := criteriaFromFlags(cmd, env.Settings.Criteria())
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		yes, _ := cmd.Flags().GetBool("yes")

		cfg, err := llm.ResolveConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		var repo store.EventRepo
		if rt.Store != nil {
			repo = rt.Store.EventRepo()
		}
		provider, err := llm.NewProvider(ctx, cfg, repo, env.Log())
		if err != nil {
			return err
		}

		existing := make([]string, 0, env.Bank.Len())
		for _, q := range env.Bank.Questions() {
			existing = append(existing, q.Text)
		}

		fmt.Fprintf(os.Stderr, "Drafting %d question(s) for %s with %s...\n", count, crit.Label(), provider.ModelID())
		drafter := draft.New(provider, draft.DefaultConfig(), env.Log())
		result, err := drafter.Draft(ctx, draft.Input{Criteria: crit, Count: count, Existing: existing})
		if err != nil {
			return fmt.Errorf("draft questions: %w", err)
		}

		for _, r := range result.Rejected {
			fmt.Fprintf(os.Stderr, "rejected %q: %v\n", truncate(r.Question.Text, 60), r.Err)
		}
		if len(result.Questions) == 0 {
			fmt.Println("No usable questions were drafted.")
			return nil
		}

		for i, q := range result.Questions {
			fmt.Printf("%d. [%s] %s\n   → %s\n\n", i+1, strings.Join(q.Subjects, ", "), q.Text, q.Answer)
		}

		if !yes && !confirm(fmt.Sprintf("Add %d question(s) to the bank?", len(result.Questions))) {
			fmt.Println("Nothing added.")
			return nil
		}

		for _, q := range result.Questions {
			if err := env.Bank.Add(q); err != nil {
				return fmt.Errorf("add drafted question: %w", err)
			}
		}
		fmt.Printf("Added %d question(s). %d in the bank.\n", len(result.Questions), env.Bank.Len())
		return nil
	},
}

// confirm asks a yes/no question on stdin. Anything but y/yes is no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	addFilterFlags(draftCmd)
	draftCmd.Flags().IntP("count", "n", 5, "Number of questions to draft")
	draftCmd.Flags().BoolP("yes", "y", false, "Add drafted questions without asking")
}
