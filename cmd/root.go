package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parserinator",
	Short: "Quiz bowl practice in the terminal",
	Long: "Parserinator reveals quiz bowl questions one character at a time so you can\n" +
		"practice buzzing in. Questions live in a local JSON bank you can grow by hand,\n" +
		"from spreadsheets, or with an LLM.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (overrides PARSERINATOR_HOME)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
