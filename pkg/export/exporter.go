package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/philipparndt/stlview/pkg/render"
	"github.com/philipparndt/stlview/pkg/stl"
)

// ErrNoModel is returned when there is nothing to export
var ErrNoModel = errors.New("no model loaded")

// Target renders a model into a tightly packed RGBA buffer of exactly
// width x height pixels, top row first.
type Target interface {
	Name() string
	Render(m *stl.Model, s render.Settings, width, height int) ([]byte, error)
}

// Options control where and how images are written
type Options struct {
	OutputDir    string // used when NextToSource is false
	NextToSource bool
	Caption      bool // draw the file name into the image
}

// Destination returns the output directory for OutputPath
func (o Options) Destination() string {
	if o.NextToSource {
		return ""
	}
	return o.OutputDir
}

// Progress tracks a running batch export
type Progress struct {
	Done   int
	Total  int
	Active bool
}

// Fraction returns the completed share in [0,1]
func (p Progress) Fraction() float32 {
	if p.Total <= 0 {
		return 0
	}
	return float32(p.Done) / float32(p.Total)
}

// Result is the outcome of exporting one model
type Result struct {
	Model *stl.Model
	Path  string
	Err   error
}

// Summary counts the results of a batch export
type Summary struct {
	Exported int
	Failed   int
	Results  []Result
}

func (s Summary) String() string {
	return fmt.Sprintf("Batch export: %d exported, %d failed", s.Exported, s.Failed)
}

// Exporter renders models through a Target and saves them as PNG
type Exporter struct {
	Target   Target
	Options  Options
	Progress Progress
}

// NewExporter creates an exporter writing through target
func NewExporter(target Target, opts Options) *Exporter {
	return &Exporter{
		Target:  target,
		Options: opts,
	}
}

// PathFor returns where the image of m will be written
func (e *Exporter) PathFor(m *stl.Model) string {
	src := m.Path
	if src == "" {
		src = m.Filename
	}
	return OutputPath(src, e.Options.Destination())
}

// Export renders m at the export size in s and writes it to path
func (e *Exporter) Export(m *stl.Model, s render.Settings, path string) error {
	if m == nil {
		return ErrNoModel
	}

	width, height := s.ExportWidth, s.ExportHeight
	pix, err := e.Target.Render(m, s, width, height)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", m.Filename, err)
	}

	if !e.Options.Caption {
		return SavePNG(path, width, height, pix)
	}

	img := &image.RGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	if err := DrawCaption(img, m.Filename, color.White); err != nil {
		return fmt.Errorf("failed to draw caption: %w", err)
	}
	return WriteImage(path, img)
}

// ExportCurrent exports m to its derived output path
func (e *Exporter) ExportCurrent(m *stl.Model, s render.Settings) (string, error) {
	if m == nil {
		return "", ErrNoModel
	}
	path := e.PathFor(m)
	return path, e.Export(m, s, path)
}

// ExportAll exports every model sequentially. A failure only counts
// against the summary; the batch always runs to the end. onProgress, when
// set, is called after each model.
func (e *Exporter) ExportAll(models []*stl.Model, s render.Settings, onProgress func(Progress)) Summary {
	summary := Summary{Results: make([]Result, 0, len(models))}
	if len(models) == 0 {
		return summary
	}

	e.Progress = Progress{Total: len(models), Active: true}
	for i, m := range models {
		path := e.PathFor(m)
		err := e.Export(m, s, path)
		if err != nil {
			summary.Failed++
		} else {
			summary.Exported++
		}
		summary.Results = append(summary.Results, Result{Model: m, Path: path, Err: err})

		e.Progress.Done = i + 1
		if onProgress != nil {
			onProgress(e.Progress)
		}
	}
	e.Progress.Active = false

	return summary
}
