package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"evalgo.org/eqinv/internal/config"
)

var (
	initConfigPath  string
	initConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runShowConfig,
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	RunE:  runInitConfig,
}

func init() {
	initConfigCmd.Flags().StringVar(&initConfigPath, "path", "config.yaml", "where to write the configuration")
	initConfigCmd.Flags().BoolVar(&initConfigForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	if err := config.Defaults().WriteFile(initConfigPath, initConfigForce); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", initConfigPath)
	return nil
}
