package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/hollowlog/internal/config"
	"github.com/fakeyudi/hollowlog/internal/logger"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// log is the process logger, configured from cfg.LogLevel.
var log logger.Logger = logger.Nop()

var rootCmd = &cobra.Command{
	Use:   "hollowlog",
	Short: "Log attacks against bosses and keep per-target combat history",
	// With no subcommand: TUI on a terminal, status otherwise.
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd()) {
			return runTUI(cmd)
		}
		return runStatus(cmd)
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "setup" {
			return nil
		}

		// First run on a terminal: offer the setup wizard once.
		if !globalConfigExists() && term.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "  Welcome to hollowlog! Looks like this is your first time.")
			if err := runSetup(cmd); err != nil {
				return err
			}
		}

		return loadConfig()
	},
}

// loadConfig merges global, project and environment configuration and sets
// up the logger.
func loadConfig() error {
	global, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	project, err := config.LoadProject()
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	cfg = config.Merge(global, project, env)

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	log = logger.Stderr(cfg.LogLevel)
	return nil
}

func globalConfigExists() bool {
	path, err := config.GlobalPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}
