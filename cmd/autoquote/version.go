package main

import (
	"fmt"

	"github.com/aretw0/autoquote"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of autoquote",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "autoquote version %s\n", autoquote.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
