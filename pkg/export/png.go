package export

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// EncodeError reports a PNG that could not be written
type EncodeError struct {
	Path string
	Op   string // "mkdir", "create", "encode" or "close"
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// OutputPath derives the PNG path for an STL file: the file stem with a
// .png extension, next to the source when outDir is empty.
func OutputPath(stlPath, outDir string) string {
	base := filepath.Base(stlPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem + ".png"

	if outDir == "" {
		return filepath.Join(filepath.Dir(stlPath), name)
	}
	return filepath.Join(outDir, name)
}

// SavePNG writes tightly packed RGBA pixels, top row first, as a PNG.
// Missing parent directories are created.
func SavePNG(path string, width, height int, pix []byte) error {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return &EncodeError{
			Path: path,
			Op:   "encode",
			Err:  fmt.Errorf("got %d bytes for %dx%d pixels", len(pix), width, height),
		}
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return WriteImage(path, img)
}

// WriteImage encodes img as a PNG file at path
func WriteImage(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &EncodeError{Path: path, Op: "mkdir", Err: err}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Op: "create", Err: err}
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(path)
		return &EncodeError{Path: path, Op: "encode", Err: err}
	}
	if err := file.Close(); err != nil {
		return &EncodeError{Path: path, Op: "close", Err: err}
	}

	if info, err := os.Stat(path); err == nil {
		log.Printf("stlview: exported %s (%d KB)", path, info.Size()/1024)
	}
	return nil
}
