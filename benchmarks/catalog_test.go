package benchmarks

import (
	"os"
	"testing"
	"time"

	"github.com/randalmurphal/dispatch/pkg/dispatch"
	"github.com/randalmurphal/dispatch/pkg/dispatch/catalog"
)

func benchRecord(n int) catalog.Record {
	sig := sigFor(n)
	return catalog.Record{
		ID:           typeName(n),
		Registry:     "bench",
		RegistryID:   "bench-id",
		Module:       "benchmod",
		Name:         "bench.f",
		Signature:    sig.Canonical(),
		Display:      sig.String(),
		File:         "bench.go",
		Line:         n,
		RegisteredAt: time.Now(),
	}
}

// BenchmarkMemoryStore_Save measures in-memory catalog upserts.
func BenchmarkMemoryStore_Save(b *testing.B) {
	store := catalog.NewMemoryStore()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(benchRecord(i % 100))
	}
}

// BenchmarkSQLiteStore_Save measures SQLite catalog upserts.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(benchRecord(i % 100))
	}
}

// BenchmarkSQLiteStore_Find measures a function lookup over 100 records.
func BenchmarkSQLiteStore_Find(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()
	for i := 0; i < 100; i++ {
		_ = store.Save(benchRecord(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Find("bench", "benchmod", "bench.f")
	}
}

// BenchmarkRegister_WithCatalog measures registration with a SQLite catalog.
func BenchmarkRegister_WithCatalog(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()
	r := dispatch.New[dispatch.Func](dispatch.WithCatalog(store))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Register(dispatch.NewKey("benchmod", "bench.f", sigFor(i)), noopImpl)
	}
}

func createSQLiteStore(b *testing.B) (*catalog.SQLiteStore, func()) {
	b.Helper()
	tmpFile, err := os.CreateTemp("", "bench-*.db")
	if err != nil {
		b.Fatal(err)
	}
	tmpFile.Close()

	store, err := catalog.NewSQLiteStore(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		b.Fatal(err)
	}

	return store, func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}
}
