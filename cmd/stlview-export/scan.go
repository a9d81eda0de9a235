package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlview/pkg/stl"
)

var scanRecursive bool

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List the STL files in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := stl.ScanDir(args[0], scanRecursive)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false, "Descend into subdirectories")
}
