package stl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTriangles is reported when a file decodes cleanly but holds no facets
var ErrNoTriangles = errors.New("no triangles")

// FileAccessError reports a path that could not be opened, read or listed
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("stl: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("stl: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// FormatError reports malformed STL content: truncated binary records,
// unparseable ASCII tokens or a file without triangles.
type FormatError struct {
	Path   string
	Format Format
	Line   int // 1-based line number for ASCII input, 0 otherwise
	Msg    string
	Err    error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("stl: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "invalid %s file", e.Format)
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
