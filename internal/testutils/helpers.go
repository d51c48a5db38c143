package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteQuestions writes question files (name -> content) into dir.
func WriteQuestions(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), "write %s", name)
	}
}

// SetupQuestionRepo is SetupTestRepo in strict mode, seeded with files.
func SetupQuestionRepo(t *testing.T, files map[string]string) (string, core.Repository) {
	t.Helper()
	dir, repo := SetupTestRepo(t, loam.WithStrict(true))
	WriteQuestions(t, dir, files)
	return dir, repo
}
