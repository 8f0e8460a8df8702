package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "wiredleafctl",
	Short:         "Admin tooling for the WiredLeaf API",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd, createAdminCmd, exportCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
