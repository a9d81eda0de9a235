package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/philipparndt/stlview/pkg/geometry"
)

const (
	headerSize     = 80
	countSize      = 4
	binaryPrologue = headerSize + countSize
	recordSize     = 50 // 12 float32 values plus a 2 byte attribute

	// maxPrealloc caps the triangle slice reserved up front from a header
	// count that has not been validated against the file size yet.
	maxPrealloc = 1 << 20
)

// Format identifies the STL encoding of a file
type Format int

const (
	FormatUnknown Format = iota
	FormatBinary
	FormatASCII
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatASCII:
		return "ascii"
	default:
		return "unknown"
	}
}

// Parse reads an STL file and returns a fully prepared Model.
// It automatically detects whether the file is ASCII or binary format.
// No partial model is returned on failure.
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &FileAccessError{Path: filename, Op: "open", Err: err}
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, &FileAccessError{Path: filename, Op: "stat", Err: err}
	}

	model, err := Decode(file, info.Size())
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			formatErr.Path = filename
		}
		var accessErr *FileAccessError
		if errors.As(err, &accessErr) && accessErr.Path == "" {
			accessErr.Path = filename
		}
		return nil, err
	}

	model.Filename = filepath.Base(filename)
	model.Path = filename
	if abs, err := filepath.Abs(filename); err == nil {
		model.Path = abs
	}

	return model, nil
}

// Detect classifies STL content from its first 84 bytes and the total size.
// A size that matches the binary layout for a non-zero triangle count wins
// over the "solid" keyword, since some binary exporters write "solid" into
// the header. Pass a negative size when it is unknown.
func Detect(header []byte, size int64) Format {
	if len(header) < binaryPrologue {
		return FormatASCII
	}

	count := binary.LittleEndian.Uint32(header[headerSize:binaryPrologue])
	expected := int64(binaryPrologue) + int64(count)*recordSize
	if count > 0 && size == expected {
		return FormatBinary
	}

	if bytes.HasPrefix(header, []byte("solid")) {
		return FormatASCII
	}
	return FormatBinary
}

// Decode parses STL content of the given total size from r.
// The returned model has normals repaired and derived data built.
func Decode(r io.Reader, size int64) (*Model, error) {
	reader := bufio.NewReaderSize(r, 64*1024)

	header, err := reader.Peek(binaryPrologue)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &FileAccessError{Op: "read", Err: err}
	}

	format := Detect(header, size)

	var model *Model
	switch format {
	case FormatBinary:
		model, err = decodeBinary(reader)
	default:
		model, err = decodeASCII(reader)
	}
	if err != nil {
		return nil, err
	}

	if model.IsEmpty() {
		return nil, &FormatError{Format: format, Err: ErrNoTriangles}
	}

	model.Format = format
	model.Prepare()
	return model, nil
}

// decodeBinary parses a binary STL stream
func decodeBinary(reader io.Reader) (*Model, error) {
	var prologue [binaryPrologue]byte
	if _, err := io.ReadFull(reader, prologue[:]); err != nil {
		return nil, &FormatError{Format: FormatBinary, Msg: "truncated header", Err: err}
	}

	model := NewModel(headerName(prologue[:headerSize]))

	triangleCount := binary.LittleEndian.Uint32(prologue[headerSize:])
	model.Triangles = make([]geometry.Triangle, 0, min(int(triangleCount), maxPrealloc))

	var record [recordSize]byte
	for i := uint32(0); i < triangleCount; i++ {
		if _, err := io.ReadFull(reader, record[:]); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, &FormatError{
				Format: FormatBinary,
				Msg:    fmt.Sprintf("triangle %d of %d", i, triangleCount),
				Err:    err,
			}
		}

		// The trailing attribute byte count is ignored.
		model.AddTriangle(geometry.NewTriangle(
			readVector(record[0:12]),
			readVector(record[12:24]),
			readVector(record[24:36]),
			readVector(record[36:48]),
		))
	}

	return model, nil
}

func readVector(b []byte) geometry.Vector3 {
	return geometry.FromFloat32([3]float32{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
	})
}

// headerName extracts printable text from a binary header
func headerName(header []byte) string {
	name := string(bytes.TrimRight(header, "\x00"))
	if !utf8.ValidString(name) {
		return ""
	}
	return strings.TrimSpace(name)
}

// decodeASCII parses an ASCII STL stream
func decodeASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	model := NewModel("")

	var current geometry.Triangle
	cursor := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 && model.Name == "" {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) < 2 || fields[1] != "normal" {
				continue
			}
			normal, err := parseVector(fields[2:], lineNo)
			if err != nil {
				return nil, err
			}
			current = geometry.Triangle{Normal: normal}
			cursor = 0

		case "vertex":
			v, err := parseVector(fields[1:], lineNo)
			if err != nil {
				return nil, err
			}
			switch cursor {
			case 0:
				current.V1 = v
			case 1:
				current.V2 = v
			case 2:
				current.V3 = v
			default:
				model.Stats.IgnoredVertices++
			}
			cursor++

		case "endfacet":
			model.AddTriangle(current)
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &FormatError{Format: FormatASCII, Line: lineNo + 1, Msg: "line too long", Err: err}
		}
		return nil, &FileAccessError{Op: "read", Err: err}
	}

	return model, nil
}

// parseVector parses the three coordinates of a facet normal or vertex line
func parseVector(fields []string, lineNo int) (geometry.Vector3, error) {
	if len(fields) < 3 {
		return geometry.Vector3{}, &FormatError{
			Format: FormatASCII,
			Line:   lineNo,
			Msg:    fmt.Sprintf("expected 3 coordinates, got %d", len(fields)),
		}
	}

	var coords [3]float32
	for i := range coords {
		value, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return geometry.Vector3{}, &FormatError{
				Format: FormatASCII,
				Line:   lineNo,
				Msg:    fmt.Sprintf("invalid coordinate %q", fields[i]),
				Err:    err,
			}
		}
		coords[i] = float32(value)
	}
	return geometry.FromFloat32(coords), nil
}
