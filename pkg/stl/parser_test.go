package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlview/pkg/geometry"
)

// binarySTL encodes triangles as a binary STL. Each triangle is given as
// normal, v1, v2, v3.
func binarySTL(header string, triangles ...[4][3]float32) []byte {
	var buf bytes.Buffer
	var h [80]byte
	copy(h[:], header)
	buf.Write(h[:])
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(triangles)))
	for _, tri := range triangles {
		for _, v := range tri {
			for _, c := range v {
				_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(c))
			}
		}
		_ = binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

var (
	unitTriangle = [4][3]float32{{0, 0, 1}, {0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	farTriangle  = [4][3]float32{{0, 0, 1}, {2, 2, 2}, {3, 2, 2}, {2, 3, 2}}
)

const singleFacet = `solid cube
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid cube
`

func TestParseBinary(t *testing.T) {
	data := binarySTL("test part", unitTriangle, farTriangle)
	require.Len(t, data, 184)

	path := writeFile(t, t.TempDir(), "part.stl", data)
	model, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, FormatBinary, model.Format)
	assert.Equal(t, "test part", model.Name)
	assert.Equal(t, "part.stl", model.Filename)
	assert.True(t, filepath.IsAbs(model.Path))
	assert.Equal(t, 2, model.TriangleCount())
	assert.Equal(t, 6, model.VertexCount)
	assert.Len(t, model.VertexData, 6*FloatsPerVertex)

	assert.Equal(t, geometry.NewVector3(0, 0, 0), model.Bounds.Min)
	assert.Equal(t, geometry.NewVector3(3, 3, 2), model.Bounds.Max)
}

func TestParseASCII(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cube.stl", []byte(singleFacet))
	model, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, FormatASCII, model.Format)
	assert.Equal(t, "cube", model.Name)
	require.Equal(t, 1, model.TriangleCount())
	assert.Equal(t, geometry.NewVector3(0, 0, 1), model.Triangles[0].Normal)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), model.Triangles[0].V2)

	// First vertex: normal then position
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 0}, model.VertexData[:6])
}

func TestDecodeASCIICountsEndfacets(t *testing.T) {
	var b strings.Builder
	b.WriteString("solid many\n")
	for i := 0; i < 5; i++ {
		b.WriteString("facet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nvertex 0 1 0\nendloop\nendfacet\n")
	}
	b.WriteString("endsolid many\n")

	model, err := Decode(strings.NewReader(b.String()), int64(b.Len()))
	require.NoError(t, err)
	assert.Equal(t, 5, model.TriangleCount())
}

func TestDecodeASCIIIgnoresExtraVertices(t *testing.T) {
	src := `solid quad
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
vertex 1 1 0
endloop
endfacet
endsolid
`
	model, err := Decode(strings.NewReader(src), int64(len(src)))
	require.NoError(t, err)
	assert.Equal(t, 1, model.TriangleCount())
	assert.Equal(t, 1, model.Stats.IgnoredVertices)
	assert.Equal(t, geometry.NewVector3(0, 1, 0), model.Triangles[0].V3)
}

func TestDecodeASCIIInvalidToken(t *testing.T) {
	src := "solid bad\nfacet normal 0 0 1\nouter loop\nvertex 0 zero 0\n"
	_, err := Decode(strings.NewReader(src), int64(len(src)))
	require.Error(t, err)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, FormatASCII, formatErr.Format)
	assert.Equal(t, 4, formatErr.Line)
	assert.Contains(t, err.Error(), "line 4")
}

func TestDecodeASCIIMissingCoordinate(t *testing.T) {
	src := "solid bad\nfacet normal 0 0\n"
	_, err := Decode(strings.NewReader(src), int64(len(src)))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 2, formatErr.Line)
}

func TestParseTruncatedBinary(t *testing.T) {
	data := binarySTL("", unitTriangle, farTriangle)
	data = data[:len(data)-20]

	path := writeFile(t, t.TempDir(), "short.stl", data)
	model, err := Parse(path)
	assert.Nil(t, model)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, FormatBinary, formatErr.Format)
	assert.Equal(t, path, formatErr.Path)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestParseNoTriangles(t *testing.T) {
	dir := t.TempDir()

	ascii := writeFile(t, dir, "empty.stl", []byte("solid empty\nendsolid empty\n"))
	_, err := Parse(ascii)
	assert.ErrorIs(t, err, ErrNoTriangles)

	bin := writeFile(t, dir, "zero.stl", binarySTL("zero"))
	_, err = Parse(bin)
	assert.ErrorIs(t, err, ErrNoTriangles)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.stl"))

	var accessErr *FileAccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, "open", accessErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDetect(t *testing.T) {
	solidBinary := binarySTL("solid exported by cad", unitTriangle)

	tests := []struct {
		name   string
		header []byte
		size   int64
		want   Format
	}{
		{"short input", []byte("solid x\n"), 8, FormatASCII},
		{"binary size match wins over solid", solidBinary[:84], int64(len(solidBinary)), FormatBinary},
		{"solid with mismatched size", solidBinary[:84], 4096, FormatASCII},
		{"no solid keyword", binarySTL("model", unitTriangle)[:84], 1, FormatBinary},
		{"zero count with solid", binarySTL("solid")[:84], 84, FormatASCII},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.header, tt.size))
		})
	}
}

func TestParseSolidHeaderBinary(t *testing.T) {
	data := binarySTL("solid exported by cad", unitTriangle)
	model, err := Decode(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, FormatBinary, model.Format)
	assert.Equal(t, 1, model.TriangleCount())
}

func TestParseRepairsZeroNormals(t *testing.T) {
	zeroNormal := [4][3]float32{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	colinear := [4][3]float32{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	data := binarySTL("", zeroNormal, colinear, unitTriangle)

	model, err := Decode(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, 1, model.Stats.RepairedNormals)
	assert.Equal(t, 1, model.Stats.DegenerateTriangles)
	assert.InDelta(t, 1.0, model.Triangles[0].Normal.Z, 1e-9)
	assert.Equal(t, geometry.Vector3{}, model.Triangles[1].Normal)

	// The vertex buffer carries the repaired normal
	assert.Equal(t, float32(1), model.VertexData[2])
}

func TestPrepareIsIdempotent(t *testing.T) {
	data := binarySTL("", unitTriangle, farTriangle)
	model, err := Decode(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	bounds := model.Bounds
	vertices := append([]float32(nil), model.VertexData...)

	model.Prepare()
	assert.Equal(t, bounds, model.Bounds)
	require.Len(t, model.VertexData, len(vertices))
	for i := range vertices {
		assert.Equal(t, math.Float32bits(vertices[i]), math.Float32bits(model.VertexData[i]), "float %d", i)
	}

	assert.LessOrEqual(t, model.Bounds.Min.X, model.Bounds.Max.X)
	assert.LessOrEqual(t, model.Bounds.Min.Y, model.Bounds.Max.Y)
	assert.LessOrEqual(t, model.Bounds.Min.Z, model.Bounds.Max.Z)
}

func TestFormatErrorMessage(t *testing.T) {
	err := &FormatError{Path: "a.stl", Format: FormatASCII, Line: 3, Msg: "invalid coordinate \"x\""}
	assert.Equal(t, `stl: a.stl: invalid ascii file at line 3: invalid coordinate "x"`, err.Error())
}
