// Command eqinv manages an inventory of network equipment.
package main

import (
	"fmt"
	"os"

	"evalgo.org/eqinv/internal/commands"
	"evalgo.org/eqinv/internal/version"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	version.Version = Version
	version.BuildTime = BuildTime
	version.GitCommit = GitCommit

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
