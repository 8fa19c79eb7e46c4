package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godatagen/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Init writes the default configuration as YAML to the path given by
--config. An existing file is left alone unless --force is set.

Connection settings may reference environment variables as ${VAR}; a .env
file next to the configuration is read before expansion.

Example:
  godatagen init --config godatagen.yaml`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"Overwrite an existing configuration file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := GetConfigFile()
	if err := config.WriteDefault(path, initForce); err != nil {
		return err
	}
	fmt.Fprintf(outputWriter, "Wrote default configuration to %s\n", path)
	return nil
}
