package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in sprout's version
	VersionMajor = 0
	// VersionMinor is the minor number in sprout's version
	VersionMinor = 1
	// VersionPatch is the patch number in sprout's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sprout",
		Long:  `All software has versions. This is sprout's`,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sprout v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
