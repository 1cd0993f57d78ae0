package testsupport

import (
	"context"
	"testing"

	"dashrec/internal/config"
	"dashrec/internal/store"
)

// MustOpenStore opens a store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewRecording creates an uploaded recording for tests using the provided store.
func NewRecording(t testing.TB, st *store.Store, id, filename, videoPath string, sizeBytes int64) *store.Recording {
	t.Helper()

	rec, err := st.NewRecording(context.Background(), id, filename, videoPath, sizeBytes)
	if err != nil {
		t.Fatalf("store.NewRecording: %v", err)
	}
	return rec
}
