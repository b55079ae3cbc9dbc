package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/consensys/zkcalc"
)

// versionCmd prints the zkcalc library version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the zkcalc version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("zkcalc", zkcalc.Version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
