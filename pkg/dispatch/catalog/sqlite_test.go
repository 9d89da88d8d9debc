package catalog_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/randalmurphal/dispatch/pkg/dispatch/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dispatch.db")

	store1, err := catalog.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Save(record("default", "mathmod", "math.add", "int", 0)))
	require.NoError(t, store1.Close())

	store2, err := catalog.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	got, err := store2.Get("default", "mathmod", "math.add", "int")
	require.NoError(t, err)
	assert.Equal(t, "id-math.add-int", got.ID)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := catalog.NewSQLiteStore("/nonexistent/path/dispatch.db")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := catalog.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	store, err := catalog.NewSQLiteStore(filepath.Join(t.TempDir(), "concurrent.db"))
	require.NoError(t, err)
	defer store.Close()

	const numGoroutines = 20
	const numOps = 10

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				sig := fmt.Sprintf("sig-%d-%d", id, j)
				assert.NoError(t, store.Save(record("default", "m", "f", sig, 0)))
				_, _ = store.Find("default", "m", "f")
			}
		}(i)
	}

	wg.Wait()

	records, err := store.List("default")
	require.NoError(t, err)
	assert.Len(t, records, numGoroutines*numOps)
}
