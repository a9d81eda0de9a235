package stl

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file suffix recognized as STL, compared case-insensitively
const Extension = ".stl"

// IsSTLFile reports whether path carries the STL extension
func IsSTLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// ScanDir lists the STL files in dir, descending into subdirectories when
// recursive is set. Only regular files (or symlinks to them) are returned,
// sorted lexicographically by full path. On failure the list is empty.
func ScanDir(dir string, recursive bool) ([]string, error) {
	files := []string{}

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isRegularSTL(path, d) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return []string{}, &FileAccessError{Path: dir, Op: "scan", Err: err}
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return []string{}, &FileAccessError{Path: dir, Op: "scan", Err: err}
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if !entry.IsDir() && isRegularSTL(path, entry) {
				files = append(files, path)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

func isRegularSTL(path string, d fs.DirEntry) bool {
	if !IsSTLFile(path) {
		return false
	}
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	return false
}
