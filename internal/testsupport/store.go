package testsupport

import (
	"context"
	"testing"

	"jobindex/internal/config"
	"jobindex/internal/docstore"
)

// MustOpenStore opens a document store for the test config and closes it on
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *docstore.Store {
	t.Helper()
	store, err := docstore.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// PutDocument inserts a raw JSON document and returns its identifier.
func PutDocument(t testing.TB, store *docstore.Store, body string) string {
	t.Helper()
	id, err := store.Put(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("put document: %v", err)
	}
	return id
}
