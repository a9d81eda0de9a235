package library

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/philipparndt/stlview/pkg/stl"
)

// ReadyStatus is the status of a library nothing was loaded into yet
const ReadyStatus = "Ready. Load an STL file or folder to begin."

// Library is the ordered collection of loaded models with a current
// selection. Models are appended on successful load and only removed all
// at once by Clear.
type Library struct {
	models  []*stl.Model
	current int
	status  string

	parse func(string) (*stl.Model, error)
}

// New creates an empty library
func New() *Library {
	return &Library{
		models:  make([]*stl.Model, 0),
		current: -1,
		status:  ReadyStatus,
		parse:   stl.Parse,
	}
}

// Status returns the message describing the last operation
func (l *Library) Status() string {
	return l.status
}

// SetStatus replaces the status message
func (l *Library) SetStatus(format string, args ...any) {
	l.status = fmt.Sprintf(format, args...)
}

// Len returns the number of loaded models
func (l *Library) Len() int {
	return len(l.models)
}

// Models returns the loaded models in load order
func (l *Library) Models() []*stl.Model {
	return l.models
}

// Current returns the selected model or nil
func (l *Library) Current() *stl.Model {
	if l.current < 0 || l.current >= len(l.models) {
		return nil
	}
	return l.models[l.current]
}

// CurrentIndex returns the selected index, -1 when nothing is loaded
func (l *Library) CurrentIndex() int {
	return l.current
}

// Select makes model i current
func (l *Library) Select(i int) bool {
	if i < 0 || i >= len(l.models) {
		return false
	}
	l.current = i
	return true
}

// Next selects the following model, wrapping around
func (l *Library) Next() {
	if len(l.models) > 0 {
		l.current = (l.current + 1) % len(l.models)
	}
}

// Previous selects the preceding model, wrapping around
func (l *Library) Previous() {
	if len(l.models) > 0 {
		l.current = (l.current - 1 + len(l.models)) % len(l.models)
	}
}

// Clear removes every model
func (l *Library) Clear() {
	l.models = make([]*stl.Model, 0)
	l.current = -1
	l.status = "All models cleared."
}

// LoadPath loads a file, or every STL file directly inside a directory
func (l *Library) LoadPath(path string) error {
	if err := ValidatePath(path); err != nil {
		l.SetStatus("Invalid path: %v", err)
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		l.SetStatus("Failed to load: %s", path)
		return &stl.FileAccessError{Path: path, Op: "stat", Err: err}
	}
	if info.IsDir() {
		_, err := l.LoadFolder(path, false)
		return err
	}
	return l.LoadFile(path)
}

// LoadDropped loads paths dropped onto a window. Directories follow
// recursive and files without the STL extension are skipped. It returns
// the number of models added.
func (l *Library) LoadDropped(paths []string, recursive bool) int {
	before := len(l.models)
	for _, path := range paths {
		if err := ValidatePath(path); err != nil {
			l.SetStatus("Invalid path: %v", err)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			l.SetStatus("Failed to load: %s", path)
			continue
		}

		switch {
		case info.IsDir():
			l.LoadFolder(path, recursive)
		case stl.IsSTLFile(path):
			l.LoadFile(path)
		default:
			l.SetStatus("Ignored non-STL file: %s", filepath.Base(path))
		}
	}
	return len(l.models) - before
}

// LoadFile parses one STL file, appends it and makes it current.
// On failure the library is unchanged apart from the status.
func (l *Library) LoadFile(path string) error {
	if err := ValidatePath(path); err != nil {
		l.SetStatus("Invalid path: %v", err)
		return err
	}

	model, err := l.parse(path)
	if err != nil {
		log.Printf("stlview: %v", err)
		l.SetStatus("Failed to load: %s", path)
		return err
	}

	l.models = append(l.models, model)
	l.current = len(l.models) - 1
	l.SetStatus("Loaded: %s (%d triangles)", model.Filename, model.TriangleCount())
	return nil
}

// LoadFolder loads every STL file in dir. Files that fail to parse are
// skipped. It returns the number of models loaded.
func (l *Library) LoadFolder(dir string, recursive bool) (int, error) {
	if err := ValidatePath(dir); err != nil {
		l.SetStatus("Invalid path: %v", err)
		return 0, err
	}

	files, err := stl.ScanDir(dir, recursive)
	if err != nil {
		log.Printf("stlview: %v", err)
	}
	if len(files) == 0 {
		l.SetStatus("No STL files found in: %s", dir)
		return 0, err
	}

	loaded := 0
	for _, file := range files {
		model, err := l.parse(file)
		if err != nil {
			log.Printf("stlview: skipping %s: %v", file, err)
			continue
		}
		l.models = append(l.models, model)
		loaded++
	}

	if loaded == 0 {
		l.SetStatus("Failed to load any files from: %s", dir)
		return 0, fmt.Errorf("no loadable STL files in %s", dir)
	}

	l.current = len(l.models) - 1
	l.SetStatus("Loaded %d of %d STL files from: %s", loaded, len(files), dir)
	return loaded, nil
}

// IndexOf returns the index of the model loaded from path, or -1
func (l *Library) IndexOf(path string) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for i, m := range l.models {
		if m.Path == abs || m.Path == path {
			return i
		}
	}
	return -1
}

// Reload parses model i again from disk and replaces it in place.
// The previous model is kept if the file no longer parses.
func (l *Library) Reload(i int) error {
	if i < 0 || i >= len(l.models) {
		return fmt.Errorf("reload: index %d out of range", i)
	}

	old := l.models[i]
	model, err := l.parse(old.Path)
	if err != nil {
		l.SetStatus("Reload failed: %s", old.Filename)
		return err
	}

	l.models[i] = model
	l.SetStatus("Reloaded: %s (%d triangles)", model.Filename, model.TriangleCount())
	return nil
}

// Paths returns the source paths of all models
func (l *Library) Paths() []string {
	paths := make([]string, len(l.models))
	for i, m := range l.models {
		paths[i] = m.Path
	}
	return paths
}
