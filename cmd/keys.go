package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parserinator/parserinator/internal/keybind"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the active key bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		printNotices(rt.Env)

		fmt.Printf("%-14s  %-10s  %s\n", "Action", "Key", "Description")
		for _, a := range keybind.Actions {
			fmt.Printf("%-14s  %-10s  %s\n", a, rt.Env.Keys.Key(a), a.Description())
		}
		fmt.Printf("\nEdit %s/%s to change them.\n", rt.DataDir, keybind.DefaultFileName)
		return nil
	},
}
