package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/survey/pkg/adapters/memory"
	"github.com/aretw0/survey/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	tests.RunBlobStoreContract(t, store)
}

func TestMemoryStore_Seed(t *testing.T) {
	seed := []byte(`[[]]`)
	store := memory.NewStore(seed...)
	seed[0] = 'x'

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `[[]]`, string(got))
}
