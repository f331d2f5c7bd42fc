package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the session history",
	Long:  "Delete every recorded quiz session. The question bank and settings are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		if err := requireStore(rt); err != nil {
			return err
		}

		if !yes && !confirm("Delete all session history?") {
			fmt.Println("Nothing deleted.")
			return nil
		}

		n, err := rt.Store.EventRepo().ClearSessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		rt.Env.Log().Info("session history cleared", "count", n)
		fmt.Printf("Deleted %d session(s).\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
