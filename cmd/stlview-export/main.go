package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlview/version"
)

var rootCmd = &cobra.Command{
	Use:   "stlview-export",
	Short: "Render STL files to PNG images without a window",
	Long: `stlview-export renders STL models offscreen with the same camera and
lighting as the stlview viewer and writes PNG images. It also reports model
information and lists the STL files of a directory.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
