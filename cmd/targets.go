package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/catalog"
	"github.com/fakeyudi/hollowlog/internal/combatlog"
	"github.com/fakeyudi/hollowlog/internal/label"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List selectable encounters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		active := store.ActiveTarget()
		all := catalog.Encounters()
		for i, e := range all {
			mark := " "
			if e.ID == active {
				mark = "*"
			}
			hits := combatlog.Summarize(store.History(e.ID)).Hits
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s  %d hits\n", mark,
				label.PadRight(label.Progress(e.Name, i+1, len(all)), 24),
				label.PadRight(e.ID, 18),
				label.PadRight(e.Arena, 22),
				hits,
			)
		}
		if catalog.EncounterIndex(active) < 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "* %s (uncataloged)\n", active)
		}
		return nil
	},
}

var attacksCmd = &cobra.Command{
	Use:   "attacks",
	Short: "List attacks that can be recorded with hit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for i, a := range catalog.Attacks() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  %s  %d\n", i+1, label.PadRight(a.Name, 16), label.PadRight(a.ID, 16), a.Damage)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(attacksCmd)
}
