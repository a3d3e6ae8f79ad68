package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/catalog"
)

var selectCmd = &cobra.Command{
	Use:   "select <target>",
	Short: "Make a target the active one (catalog id or name, anything else is used as-is)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		key := strings.Join(args, " ")
		id := key
		if e, ok := catalog.Encounter(key); ok {
			id = e.ID
		}
		store.SelectTarget(id)
		warnUnsaved(cmd, store)

		fmt.Fprintln(cmd.OutOrStdout(), store.ActiveTargetLabel())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
