package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the active target's history (other targets are kept)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}
		store.ClearActiveHistory()
		warnUnsaved(cmd, store)

		fmt.Fprintf(cmd.OutOrStdout(), "Log cleared. %s\n", store.ActiveTargetLabel())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
