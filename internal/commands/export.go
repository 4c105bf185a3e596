package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/eqinv/internal/console"
	"evalgo.org/eqinv/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the inventory and its summary as JSON or YAML",
	Long: `Export every record together with the summary report.

Without --output the document is written to stdout. With --output and no
--format, the format follows the file extension (.yaml/.yml or JSON).

Examples:
  eqinv export
  eqinv export --format yaml
  eqinv export --output backups/inventory.yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := export.FormatJSON
	switch {
	case exportFormat != "":
		f, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		format = f
	case exportOutput != "":
		format = export.FormatFromPath(exportOutput)
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	snapshot := export.NewSnapshot(ws.reg, time.Now())
	if exportOutput == "" {
		return export.Encode(cmd.OutOrStdout(), format, snapshot)
	}

	if err := export.WriteFile(exportOutput, format, snapshot); err != nil {
		return err
	}
	console.Success(cmd.OutOrStdout(), fmt.Sprintf("Exported %d equipment to %s.", len(snapshot.Equipment), exportOutput))
	return nil
}
