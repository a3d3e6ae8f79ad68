package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/combatlog"
	"github.com/fakeyudi/hollowlog/internal/label"
)

var logOrder string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print the active target's combat history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := displayOrder(logOrder)
		if err != nil {
			return err
		}
		store, _, err := openStore()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, store.ActiveTargetLabel())
		printHistory(out, store.ActiveHistory(), order)
		return nil
	},
}

// printHistory writes one line per event in display order. An empty history
// prints the "Log started" placeholder.
func printHistory(w io.Writer, history []combatlog.Event, order combatlog.Order) {
	if len(history) == 0 {
		fmt.Fprintf(w, "  %s\n", combatlog.MarkerDisplayName)
		return
	}
	width := 0
	for _, e := range history {
		if n := label.Width(e.DisplayName); n > width {
			width = n
		}
	}
	for _, e := range combatlog.Ordered(history, order) {
		ts := e.RecordedAt.Local().Format("15:04:05")
		if e.IsMarker() {
			fmt.Fprintf(w, "  %-5s %s  %s\n", "", ts, e.DisplayName)
			continue
		}
		fmt.Fprintf(w, "  #%-4d %s  %s  %d\n", e.Seq, ts, label.PadRight(e.DisplayName, width), e.Damage)
	}
}

func init() {
	logCmd.Flags().StringVar(&logOrder, "order", "", "Display order: newest or oldest (overrides config)")
	rootCmd.AddCommand(logCmd)
}
