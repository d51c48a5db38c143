package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "survey version")

	out, err = execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is valid! 17 questions")

	out, err = execute(t, "graph")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
}

func TestValidate_BrokenCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	doc := `entry: 1
questions:
  - id: 1
    prompt: Start
    kind: short_text
    next: 2
  - id: 3
    prompt: Orphan
    kind: short_text
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := execute(t, "validate", "--catalog", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestConfig_Rejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  kind: floppy\n"), 0o644))

	_, err := execute(t, "graph", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store kind "floppy"`)
}
