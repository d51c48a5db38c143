package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/aretw0/survey/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunBlobStoreContract verifies that a BlobStore implementation adheres to the
// interface contract. The store must be empty when passed in.
func RunBlobStoreContract(t *testing.T, store ports.BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get Empty", func(t *testing.T) {
		data, err := store.Get(ctx)
		require.NoError(t, err, "an empty store is not an error")
		assert.Empty(t, data)
	})

	t.Run("Put and Get", func(t *testing.T) {
		payload := []byte(`[[{"questionId":1,"answer":"A"}]]`)
		require.NoError(t, store.Put(ctx, payload))

		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(payload), string(got))
	})

	t.Run("Put Replaces", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, []byte(`[]`)))
		require.NoError(t, store.Put(ctx, []byte(`[[]]`)))

		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, `[[]]`, string(got))
	})

	t.Run("Returned Bytes Are Detached", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, []byte(`abc`)))
		got, err := store.Get(ctx)
		require.NoError(t, err)
		if len(got) > 0 {
			got[0] = 'z'
		}
		again, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})
}

// CatalogContractTest verifies that a catalog serves every listed id and
// rejects unknown ids with domain.ErrNotFound.
func CatalogContractTest(t *testing.T, catalog ports.CatalogLister) {
	t.Helper()

	t.Run("Entry Exists", func(t *testing.T) {
		q, err := catalog.Get(catalog.EntryID())
		require.NoError(t, err)
		assert.Equal(t, catalog.EntryID(), q.ID)
	})

	t.Run("Listed Ids Resolve", func(t *testing.T) {
		ids := catalog.IDs()
		require.NotEmpty(t, ids)
		for _, id := range ids {
			q, err := catalog.Get(id)
			require.NoError(t, err, "id %d", id)
			assert.Equal(t, id, q.ID)
		}
	})

	t.Run("Unknown Id", func(t *testing.T) {
		_, err := catalog.Get(-1)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})
}
