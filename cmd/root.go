package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlview/internal/app"
	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/pkg/library"
	"github.com/philipparndt/stlview/version"
)

var (
	configPath     string
	noConfig       bool
	nativeDialogs  bool
	softwareExport bool
	watchFiles     bool
)

var rootCmd = &cobra.Command{
	Use:   "stlview [paths...]",
	Short: "STL viewer and PNG exporter",
	Long: `stlview shows STL models in an orbiting 3D viewport and exports rendered
views as PNG images. Each path is an STL file or a directory whose STL files
are loaded.`,
	Args:    validPaths,
	Version: version.GetFullVersion(),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.Options{
			NativeDialogs:  nativeDialogs,
			SoftwareExport: softwareExport,
			Watch:          watchFiles,
		}
		if !noConfig {
			opts.ConfigPath = configPath
			if opts.ConfigPath == "" {
				if path, err := config.DefaultPath(); err == nil {
					opts.ConfigPath = path
				}
			}
		}
		return app.Run(args, opts)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default is the user config directory)")
	rootCmd.Flags().BoolVar(&noConfig, "no-config", false, "Neither read nor save the config file")
	rootCmd.Flags().BoolVar(&nativeDialogs, "dialogs", true, "Use native file dialogs")
	rootCmd.Flags().BoolVar(&softwareExport, "software", false, "Render exports on the CPU")
	rootCmd.Flags().BoolVarP(&watchFiles, "watch", "w", true, "Reload models when their files change")
}

// validPaths rejects arguments that can never be loaded
func validPaths(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if err := library.ValidatePath(arg); err != nil {
			return fmt.Errorf("invalid path argument: %w", err)
		}
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
