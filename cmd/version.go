package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gosfr/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gosfr",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Sodium Fast Reactor input builder and driver")
		fmt.Printf("Targets %s\n", version.Engine)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
