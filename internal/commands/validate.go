package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evalgo.org/eqinv/internal/console"
	"evalgo.org/eqinv/internal/inventory"
	"evalgo.org/eqinv/internal/storage"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a data file without loading it",
	Long: `Check every line of a data file with the same rules the loader uses
and print the lines that would be ignored. Nothing is written: no backup,
no error log entries.

The command fails when at least one line would be ignored.

Examples:
  eqinv validate data/equipments.csv
  eqinv validate import.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	filename := args[0]

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	store := storage.New(filename, "", nil)
	report, err := store.Read(f, inventory.New())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	console.RenderLoadReport(out, filename, report)

	if n := len(report.Skipped); n > 0 {
		return fmt.Errorf("%d of %d line(s) would be ignored", n, report.Lines)
	}
	console.Success(out, "✓ File is valid")
	return nil
}
