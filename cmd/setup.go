package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/catalog"
	"github.com/fakeyudi/hollowlog/internal/combatlog"
	"github.com/fakeyudi/hollowlog/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure hollowlog (re-run anytime to edit settings)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd)
	},
}

// runSetup asks for the global settings and saves them. Answers default to
// the current global config.
func runSetup(cmd *cobra.Command) error {
	var existing *config.Config
	if c, err := config.LoadGlobal(); err == nil {
		existing = c
	}
	current := config.Merge(existing)

	next, err := promptConfig(cmd.InOrStdin(), cmd.OutOrStdout(), current)
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}
	if err := config.SaveGlobal(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "  ✓ Config saved.")
	fmt.Fprintln(out, "  Setup complete. Run 'hollowlog hit \"Nail Strike\"' or just 'hollowlog' to start logging.")
	fmt.Fprintln(out)
	return nil
}

func promptConfig(in io.Reader, out io.Writer, cur config.Config) (config.Config, error) {
	r := bufio.NewReader(in)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Fprintf(out, "%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Fprintf(out, "%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  ┌─────────────────────────────────┐")
	fmt.Fprintln(out, "  │   hollowlog — first-time setup  │")
	fmt.Fprintln(out, "  └─────────────────────────────────┘")
	fmt.Fprintln(out)

	next := cur

	target, err := ask("  Default target (id or name)", cur.DefaultTarget)
	if err != nil {
		return cur, err
	}
	if e, ok := catalog.Encounter(target); ok {
		target = e.ID
	}
	next.DefaultTarget = target

	order, err := ask("  Log order (newest/oldest)", cur.Order)
	if err != nil {
		return cur, err
	}
	o, err := combatlog.ParseOrder(order)
	if err != nil {
		o = combatlog.NewestFirst
	}
	next.Order = string(o)

	format, err := ask("  Export format (markdown/json)", cur.DefaultFormat)
	if err != nil {
		return cur, err
	}
	if format == "json" {
		next.DefaultFormat = "json"
	} else {
		next.DefaultFormat = "markdown"
	}

	fmt.Fprintln(out)
	return next, nil
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
