package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/survey/pkg/adapters/file"
	"github.com/aretw0/survey/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nested", "submissions.json"))
	tests.RunBlobStoreContract(t, store)
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	store := file.New(filepath.Join(dir, "submissions.json"))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, []byte(`[]`)))
	require.NoError(t, store.Put(ctx, []byte(`[[]]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "submissions.json", entries[0].Name())
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, file.DefaultPath, file.New("").Path)
}
