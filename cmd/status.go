package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/export"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active target and its totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func runStatus(cmd *cobra.Command) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}

	r := export.Build(store.ActiveTarget(), store.ActiveHistory(), "", time.Now())
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, store.ActiveTargetLabel())
	if r.Arena != "" {
		fmt.Fprintf(out, "Arena: %s (%s)\n", r.Arena, r.Version)
	}
	fmt.Fprintf(out, "Hits: %d\n", r.Hits)
	fmt.Fprintf(out, "Damage: %d\n", r.Damage)
	if left, ok := r.Remaining(); ok {
		fmt.Fprintf(out, "HP remaining: %d/%d\n", left, r.HP)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
