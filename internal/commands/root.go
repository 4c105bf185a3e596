package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evalgo.org/eqinv/internal/config"
	"evalgo.org/eqinv/internal/export"
	"evalgo.org/eqinv/internal/logger"
	"evalgo.org/eqinv/internal/version"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "eqinv",
	Short: "Network equipment inventory",
	Long: `eqinv keeps an inventory of routers, switches, servers and firewalls.

Run without a subcommand to open the interactive menu. The subcommands
perform one operation against the data file and exit; those that change
the inventory save it before returning.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

// Execute runs the command selected by os.Args.
func Execute() error {
	// main sets the version after package initialization
	rootCmd.Version = version.Get().Version
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("data-file", "", "equipment data file (default: ./data/equipments.csv)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (json, text)")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(operateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "%s" .Version}}
`)
}

func initConfig() {
	var err error
	cfg, err = config.LoadWithFlags(cfgFile, rootCmd.PersistentFlags())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	l := logger.GetLogger()
	l.Debug().
		Str("data_file", cfg.Data.File).
		Str("backup_file", cfg.Data.BackupFile).
		Str("log_file", cfg.Data.LogFile).
		Msg("Configuration loaded")
}

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information.

Examples:
  eqinv version
  eqinv version --verbose
  eqinv version --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()

		if versionFormat != "" && versionFormat != "text" {
			format, err := export.ParseFormat(versionFormat)
			if err != nil {
				return err
			}
			return export.Encode(out, format, info)
		}

		fmt.Fprintln(out, info.String())
		if cmd.Flag("verbose").Changed {
			fmt.Fprintf(out, "\nDetails:\n")
			fmt.Fprintf(out, "  Version:    %s\n", info.Version)
			fmt.Fprintf(out, "  Git Commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "  Modified:   %t\n", info.Modified)
			fmt.Fprintf(out, "  Built:      %s\n", info.BuildTime)
			fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
			fmt.Fprintf(out, "  Platform:   %s\n", info.Platform)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "verbose version output")
	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "output format (text, json, yaml)")
}
