package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/logger"
	"github.com/fakeyudi/hollowlog/internal/tui"
	"github.com/fakeyudi/hollowlog/internal/watch"
)

var tuiOrder string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Log attacks interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	order, err := displayOrder(tuiOrder)
	if err != nil {
		return err
	}
	store, storage, err := openStore()
	if err != nil {
		return err
	}

	// Without a watcher the TUI still works; it just won't see writes from
	// other hollowlog processes.
	var changes <-chan struct{}
	fw, err := watch.NewFileWatcher(storage.Path(), log.Named("watch"))
	if err != nil {
		log.Warn("state file not watched", logger.Error(err))
	} else {
		defer fw.Close()
		changes = fw.Changes()
	}

	return tui.Run(store, order, changes)
}

func init() {
	tuiCmd.Flags().StringVar(&tuiOrder, "order", "", "Display order: newest or oldest (overrides config)")
	rootCmd.AddCommand(tuiCmd)
}
