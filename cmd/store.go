package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/catalog"
	"github.com/fakeyudi/hollowlog/internal/combatlog"
)

// openStore opens the combat log under the configured data directory.
func openStore() (*combatlog.Store, *combatlog.DiskStorage, error) {
	storage, err := combatlog.NewDiskStorage(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	store := combatlog.Open(storage,
		combatlog.WithLogger(log.Named("combatlog")),
		combatlog.WithDefaultTarget(cfg.DefaultTarget),
		combatlog.WithTargetNames(catalog.TargetName),
	)
	return store, storage, nil
}

// displayOrder resolves the configured order, letting a non-empty flag win.
func displayOrder(flag string) (combatlog.Order, error) {
	if flag != "" {
		return combatlog.ParseOrder(flag)
	}
	return combatlog.ParseOrder(cfg.Order)
}

// warnUnsaved prints a warning when the last mutation did not reach disk.
// The command still succeeds; the change is lost when the process exits.
func warnUnsaved(cmd *cobra.Command, store *combatlog.Store) {
	if err := store.PersistErr(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", err)
	}
}
