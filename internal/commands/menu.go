package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"evalgo.org/eqinv/internal/console"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Open the interactive menu. This is also what eqinv does when run
without a subcommand.

The inventory is saved when you choose 0 or when input ends (Ctrl-D).`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

// runMenu refuses to start when the data file cannot be backed up and read,
// since the exit save would overwrite it.
func runMenu(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return fmt.Errorf("menu not started, the inventory could not be backed up and loaded: %w", err)
	}

	out := cmd.OutOrStdout()
	if n := len(ws.report.Skipped); n > 0 {
		console.Warning(out, fmt.Sprintf("%d line(s) of %s were ignored; see %s or choose 9.",
			n, ws.store.DataFile(), ws.errLog.Path()))
	}

	return console.NewSession(cmd.InOrStdin(), out, ws.reg, ws.store, ws.errLog).Run()
}
