package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/catalog"
	"github.com/fakeyudi/hollowlog/internal/export"
)

var exportFormat string
var exportOut string
var exportOrder string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active target's history to a Markdown or JSON file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := displayOrder(exportOrder)
		if err != nil {
			return err
		}
		store, _, err := openStore()
		if err != nil {
			return err
		}

		format := exportFormat
		if format == "" {
			format = cfg.DefaultFormat
		}
		renderer, ext := export.For(format)

		now := time.Now()
		r := export.Build(store.ActiveTarget(), store.ActiveHistory(), order, now)
		data, err := renderer.Render(r)
		if err != nil {
			return fmt.Errorf("render export: %w", err)
		}

		if exportOut == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		path := exportOut
		if path == "" {
			path = exportFileName(r.Target, now, ext)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries. Output: %s\n", len(r.Events), path)
		return nil
	},
}

// exportFileName builds the default output name in the working directory.
// Target ids are free-form, so anything that could act as a path separator
// is replaced.
func exportFileName(target string, now time.Time, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, catalog.Slug(target))
	name = strings.Trim(name, ".-")
	if name == "" {
		name = "target"
	}
	return "hollowlog-" + name + "-" + now.Format("20060102-150405") + ext
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: markdown or json (overrides config)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file, or - for stdout")
	exportCmd.Flags().StringVar(&exportOrder, "order", "", "Display order: newest or oldest (overrides config)")
	rootCmd.AddCommand(exportCmd)
}
