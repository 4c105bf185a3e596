package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"evalgo.org/eqinv/internal/console"
	"evalgo.org/eqinv/internal/eventlog"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the error log of rejected data file lines",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	lines, err := eventlog.New(cfg.Data.LogFile).Lines()
	if errors.Is(err, eventlog.ErrNoLog) {
		fmt.Fprintln(cmd.OutOrStdout(), "No log file found.")
		return nil
	}
	if err != nil {
		return err
	}

	console.RenderLog(cmd.OutOrStdout(), lines)
	return nil
}
