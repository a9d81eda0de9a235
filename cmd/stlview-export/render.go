package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlview/internal/config"
	"github.com/philipparndt/stlview/pkg/export"
	"github.com/philipparndt/stlview/pkg/library"
	"github.com/philipparndt/stlview/pkg/raster"
	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
	"github.com/philipparndt/stlview/pkg/watcher"
)

var (
	renderOut         string
	renderWidth       int
	renderHeight      int
	renderRecursive   bool
	renderCaption     bool
	renderWatch       bool
	renderConfig      string
	renderSupersample int
	renderWireframe   bool
	renderView        string
)

var renderCmd = &cobra.Command{
	Use:   "render [paths...]",
	Short: "Export PNG images of STL files and directories",
	Long: `Render every given STL file, and every STL file inside the given
directories, to a PNG image. Images are written next to their source unless
--out names a directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output directory (default: next to each STL file)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Image width in pixels (default from config)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Image height in pixels (default from config)")
	renderCmd.Flags().BoolVarP(&renderRecursive, "recursive", "r", false, "Descend into subdirectories")
	renderCmd.Flags().BoolVar(&renderCaption, "caption", false, "Draw the file name into each image")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Export again whenever a file changes")
	renderCmd.Flags().StringVarP(&renderConfig, "config", "c", "", "Config file (default is the user config directory)")
	renderCmd.Flags().IntVar(&renderSupersample, "supersample", 0, "Render at N times the size and downsample (1-4)")
	renderCmd.Flags().BoolVar(&renderWireframe, "wireframe", false, "Overlay triangle edges")
	renderCmd.Flags().StringVar(&renderView, "view", "", "Camera preset: front, back, left, right, top or bottom")
}

// renderJob is the fully resolved configuration of a render run
type renderJob struct {
	settings render.Settings
	exporter *export.Exporter
	lib      *library.Library
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(renderConfig)
	if err != nil {
		return err
	}

	job, err := newRenderJob(cmd, cfg)
	if err != nil {
		return err
	}

	for _, path := range args {
		job.load(path, cfg.Load.Recursive || renderRecursive)
	}
	if job.lib.Len() == 0 {
		return errors.New("no STL files could be loaded")
	}

	summary := job.exportAll(job.lib.Models())
	if !renderWatch {
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d exports failed", summary.Failed, summary.Failed+summary.Exported)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return job.watch(ctx)
}

// newRenderJob applies command line flags on top of the config
func newRenderJob(cmd *cobra.Command, cfg config.Config) (*renderJob, error) {
	s := cfg.Render
	if renderWidth > 0 {
		s.ExportWidth = renderWidth
	}
	if renderHeight > 0 {
		s.ExportHeight = renderHeight
	}
	if renderSupersample > 0 {
		s.Supersample = renderSupersample
	}
	if cmd.Flags().Changed("wireframe") {
		s.Wireframe = renderWireframe
	}
	if renderView != "" {
		view, err := parseView(renderView)
		if err != nil {
			return nil, err
		}
		s.SetView(view)
	}
	if err := raster.CheckTarget(s.ExportWidth, s.ExportHeight); err != nil {
		return nil, err
	}
	if s.ExportWidth < render.MinExportSize || s.ExportHeight < render.MinExportSize {
		return nil, fmt.Errorf("export size %dx%d is below the minimum of %d pixels",
			s.ExportWidth, s.ExportHeight, render.MinExportSize)
	}

	opts := export.Options{
		OutputDir:    cfg.Export.OutputDir,
		NextToSource: cfg.Export.NextToSource,
		Caption:      cfg.Export.Caption || renderCaption,
	}
	if renderOut != "" {
		opts.OutputDir = renderOut
		opts.NextToSource = false
	}

	return &renderJob{
		settings: s.Clamped(),
		exporter: export.NewExporter(raster.NewOffscreen(), opts),
		lib:      library.New(),
	}, nil
}

// parseView resolves a camera preset name
func parseView(name string) (render.View, error) {
	for v := render.ViewFront; v <= render.ViewBottom; v++ {
		if v.String() == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", name)
}

func (j *renderJob) load(path string, recursive bool) {
	var err error
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		_, err = j.lib.LoadFolder(path, recursive)
	} else {
		err = j.lib.LoadPath(path)
	}
	fmt.Println(j.lib.Status())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func (j *renderJob) exportAll(models []*stl.Model) export.Summary {
	summary := j.exporter.ExportAll(models, j.settings, func(p export.Progress) {
		fmt.Printf("\r[%d/%d]", p.Done, p.Total)
	})
	fmt.Println()

	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "  failed %s: %v\n", r.Model.Filename, r.Err)
		} else {
			fmt.Printf("  %s -> %s\n", r.Model.Filename, r.Path)
		}
	}
	fmt.Println(summary)
	return summary
}

// watch exports models again after their files change until ctx is done
func (j *renderJob) watch(ctx context.Context) error {
	mw, err := watcher.New(watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	defer mw.Close()

	changed := make(chan string, 16)
	mw.OnChange = func(path string) {
		select {
		case changed <- path:
		default:
		}
	}
	if err := mw.Set(j.lib.Paths()); err != nil {
		return err
	}
	mw.Start(ctx)

	fmt.Printf("Watching %d file(s) for changes, press Ctrl+C to stop\n", len(mw.Files()))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			var models []*stl.Model
			for _, path := range mw.Drain() {
				i := j.lib.IndexOf(path)
				if i < 0 {
					continue
				}
				if err := j.lib.Reload(i); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", j.lib.Status(), err)
					continue
				}
				fmt.Println(j.lib.Status())
				models = append(models, j.lib.Models()[i])
			}
			if len(models) > 0 {
				j.exportAll(models)
			}
		}
	}
}

// loadConfig reads the config file, falling back to the default location
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}
