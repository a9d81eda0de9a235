package dialog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlview/pkg/library"
)

func TestNoneReportsCancel(t *testing.T) {
	var p Provider = None{}
	assert.False(t, p.Available())

	path, ok, err := p.OpenFile()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, path)

	_, ok, err = p.SaveFile("out.png")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestChoose(t *testing.T) {
	assert.IsType(t, Native{}, Choose(true))
	assert.IsType(t, None{}, Choose(false))
}

func TestCheckedValidatesSelection(t *testing.T) {
	path, ok, err := checked("/tmp/model.stl", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/model.stl", path)

	_, ok, err = checked(strings.Repeat("x", library.MaxPathLength+1), nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.ErrorIs(t, err, library.ErrPathTooLong)

	boom := errors.New("boom")
	_, ok, err = checked("", boom)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}
