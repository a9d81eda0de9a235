package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlview/pkg/render"
)

const facet = `solid part
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid part
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSTL(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(facet), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	src := t.TempDir()
	writeSTL(t, src, "a.stl")
	writeSTL(t, src, "nested/b.stl")
	out := filepath.Join(t.TempDir(), "images")
	cfg := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := execute(t, "render", src, "--recursive", "--out", out,
		"--width", "96", "--height", "64", "--config", cfg)
	require.NoError(t, err)

	for _, name := range []string{"a.png", "b.png"} {
		f, err := os.Open(filepath.Join(out, name))
		require.NoError(t, err, name)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 96, img.Bounds().Dx())
		assert.Equal(t, 64, img.Bounds().Dy())
	}
}

func TestRenderCommandRejectsSmallSize(t *testing.T) {
	t.Cleanup(func() { renderWidth, renderHeight = 0, 0 })
	src := t.TempDir()
	writeSTL(t, src, "a.stl")
	out := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := execute(t, "render", src, "--out", out,
		"--width", "64", "--height", "48", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below the minimum")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderCommandNothingLoaded(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := execute(t, "render", t.TempDir(), "--config", cfg, "--out", t.TempDir())
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	path := writeSTL(t, t.TempDir(), "part.stl")

	out, err := execute(t, "info", path, "--edges", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: part")
	assert.Contains(t, out, "Format: ascii")
	assert.Contains(t, out, "Triangles: 1")
	assert.Contains(t, out, "Diagonal: 1.414214 units")
	assert.Contains(t, out, "Top 2 Longest Edges")
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeSTL(t, dir, "a.stl")
	writeSTL(t, dir, "sub/b.stl")

	out, err := execute(t, "scan", dir, "--recursive=false")
	require.NoError(t, err)
	assert.Equal(t, a+"\n", out)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stlview", "config.yaml")

	out, err := execute(t, "config", "init", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute(t, "config", "init", "--file", path)
	assert.Error(t, err)

	out, err = execute(t, "config", "show", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "render:")
	assert.Contains(t, out, "next_to_source: true")
}

func TestParseView(t *testing.T) {
	v, err := parseView("top")
	require.NoError(t, err)
	assert.Equal(t, render.ViewTop, v)

	_, err = parseView("diagonal")
	assert.Error(t, err)
}
