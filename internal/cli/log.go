package cli

import (
	"fmt"
	"os"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/config"
	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/ui"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the action log",
	Long: `Print the append-only action log. Every executed command, removal
and confirmation decision is recorded there.

Examples:
  ucleaner log              # Print the action log
  ucleaner log clear        # Truncate the action log`,
	RunE: runLogShow,
}

var logClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the action log",
	RunE:  runLogClear,
}

func init() {
	logCmd.AddCommand(logClearCmd)
}

func runLogShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(config.ActionLogPath())
	if err != nil {
		if os.IsNotExist(err) {
			ui.MutedMsg("Action log is empty")
			return nil
		}
		return fmt.Errorf("failed to read action log: %w", err)
	}
	if len(data) == 0 {
		ui.MutedMsg("Action log is empty")
		return nil
	}

	os.Stdout.Write(data)
	return nil
}

func runLogClear(cmd *cobra.Command, args []string) error {
	if !cfg.General.AutoConfirm {
		ok, err := ui.Confirm("Clear the action log?", false)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	if err := alog.Clear(); err != nil {
		return fmt.Errorf("failed to clear action log: %w", err)
	}
	ui.SuccessMsg("Action log cleared")
	return nil
}
