package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs([]string{"completion", shell})
			require.NoError(t, rootCmd.Execute())
			assert.Contains(t, out.String(), "stlview")
		})
	}
}

func TestValidPaths(t *testing.T) {
	assert.NoError(t, validPaths(rootCmd, []string{"a.stl", "models"}))
	assert.Error(t, validPaths(rootCmd, []string{strings.Repeat("a", 5000)}))
	assert.Error(t, validPaths(rootCmd, []string{""}))
}
