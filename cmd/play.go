package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parserinator/parserinator/internal/app"
	"github.com/parserinator/parserinator/internal/bank"
	"github.com/parserinator/parserinator/internal/filter"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away",
	Long:  "Start a quiz. Filter flags override the last used filter and are saved.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		env := rt.Env
		crit, err := criteriaFromFlags(cmd, env.Settings.Criteria())
		if err != nil {
			return err
		}
		if err := crit.Validate(); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		env.Settings.SetCriteria(crit)
		env.SaveSettings()

		return app.Run(env, app.Options{StartQuiz: true})
	},
}

// addFilterFlags registers --year, --difficulty and --subject on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Int("year", 0, "Question year")
	cmd.Flags().String("difficulty", "", "District, Regional or State")
	cmd.Flags().String("subject", "", "Subject (empty for any)")
}

// criteriaFromFlags applies the filter flags that were set on top of base.
func criteriaFromFlags(cmd *cobra.Command, base filter.Criteria) (filter.Criteria, error) {
	c := base
	if cmd.Flags().Changed("year") {
		c.Year, _ = cmd.Flags().GetInt("year")
	}
	if cmd.Flags().Changed("difficulty") {
		s, _ := cmd.Flags().GetString("difficulty")
		d, ok := bank.ParseDifficulty(s)
		if !ok {
			return c, fmt.Errorf("unknown difficulty %q", s)
		}
		c.Difficulty = d
	}
	if cmd.Flags().Changed("subject") {
		s, _ := cmd.Flags().GetString("subject")
		c.Subjects = nil
		if s != "" {
			c.Subjects = []string{s}
		}
	}
	return c, nil
}

func init() {
	addFilterFlags(playCmd)
}
