package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/shopfront"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shopfront",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shopfront version %s\n", shopfront.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
