package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/combatlog"
	"github.com/fakeyudi/hollowlog/internal/export"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Print a previously exported combat log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", path)
			}
			return err
		}

		r, err := export.ParserFor(path).Parse(data)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), r)
		return nil
	},
}

// printReport writes a plain-text summary of an exported log.
func printReport(w io.Writer, r *export.Report) {
	fmt.Fprintln(w, "## Summary")
	fmt.Fprintf(w, "  Target:    %s\n", r.TargetName)
	if r.Arena != "" {
		fmt.Fprintf(w, "  Arena:     %s\n", r.Arena)
	}
	fmt.Fprintf(w, "  Exported:  %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "  Hits:      %d\n", r.Hits)
	fmt.Fprintf(w, "  Damage:    %d\n", r.Damage)
	if left, ok := r.Remaining(); ok {
		fmt.Fprintf(w, "  HP left:   %d/%d\n", left, r.HP)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "## History (%s first)\n", r.Order)
	// Events are already in the exported order.
	printHistory(w, r.Events, combatlog.OldestFirst)
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
