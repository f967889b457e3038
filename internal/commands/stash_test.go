package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/AshGw/litecrypt/internal/stash"
)

// fakeStore keeps records in memory so the command flows can run without a
// database.
type fakeStore struct {
	records map[string][]stash.Record
	keys    map[string]string
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string][]stash.Record),
		keys:    make(map[string]string),
	}
}

func (f *fakeStore) Insert(_ context.Context, filename string, content []byte, ref string) (int64, error) {
	f.nextID++
	f.records[ref] = append(f.records[ref], stash.Record{
		ID:       f.nextID,
		Filename: filename,
		Ref:      ref,
		Content:  append([]byte(nil), content...),
	})

	return f.nextID, nil
}

func (f *fakeStore) InsertKey(_ context.Context, _, key, ref string) (int64, error) {
	f.nextID++
	f.keys[ref] = key

	return f.nextID, nil
}

func (f *fakeStore) GetByRef(_ context.Context, ref string) (*stash.Record, error) {
	records := f.records[ref]
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q", stash.ErrNotFound, ref)
	}

	record := records[len(records)-1]

	return &record, nil
}

func (f *fakeStore) GetKeyByRef(_ context.Context, ref string) (string, error) {
	key, ok := f.keys[ref]
	if !ok {
		return "", fmt.Errorf("%w: %q", stash.ErrNotFound, ref)
	}

	return key, nil
}

func (f *fakeStore) List(_ context.Context) ([]stash.Record, error) {
	var records []stash.Record
	for _, group := range f.records {
		records = append(records, group...)
	}

	return records, nil
}

func (f *fakeStore) UpdateByRef(_ context.Context, ref string, content []byte) error {
	records := f.records[ref]
	if len(records) == 0 {
		return fmt.Errorf("%w: %q", stash.ErrNotFound, ref)
	}

	records[len(records)-1].Content = append([]byte(nil), content...)

	return nil
}

func (f *fakeStore) DeleteByRef(_ context.Context, ref string) (int64, error) {
	removed := int64(len(f.records[ref]))
	delete(f.records, ref)

	return removed, nil
}

func writeTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	return path
}

func TestPutEnvelopeStoresContentAndKey(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ctx := context.Background()
	content := []byte("envelope bytes")
	path := writeTestFile(t, t.TempDir(), "secret.txt.crypt", content)

	ref, err := putEnvelope(ctx, store, path, "", "deadbeef")
	if err != nil {
		t.Fatalf("putEnvelope: %v", err)
	}

	if ref == "" {
		t.Fatal("expected a generated ref")
	}

	record, err := store.GetByRef(ctx, ref)
	if err != nil {
		t.Fatalf("GetByRef: %v", err)
	}

	if !bytes.Equal(record.Content, content) {
		t.Errorf("stored content = %q, want %q", record.Content, content)
	}

	if record.Filename != "secret.txt.crypt" {
		t.Errorf("stored filename = %q, want base name", record.Filename)
	}

	key, err := store.GetKeyByRef(ctx, ref)
	if err != nil {
		t.Fatalf("GetKeyByRef: %v", err)
	}

	if key != "deadbeef" {
		t.Errorf("stored key = %q, want %q", key, "deadbeef")
	}
}

func TestPutEnvelopeWithoutKeyStoresNoKey(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ctx := context.Background()
	path := writeTestFile(t, t.TempDir(), "plain.crypt", []byte("data"))

	ref, err := putEnvelope(ctx, store, path, "my-ref", "")
	if err != nil {
		t.Fatalf("putEnvelope: %v", err)
	}

	if ref != "my-ref" {
		t.Errorf("ref = %q, want the explicit one", ref)
	}

	if _, err := store.GetKeyByRef(ctx, ref); !errors.Is(err, stash.ErrNotFound) {
		t.Errorf("GetKeyByRef error = %v, want ErrNotFound", err)
	}
}

func TestGetEnvelopeWritesContent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ctx := context.Background()
	dir := t.TempDir()
	content := []byte("retrieved bytes")
	path := writeTestFile(t, dir, "doc.crypt", content)

	ref, err := putEnvelope(ctx, store, path, "", "")
	if err != nil {
		t.Fatalf("putEnvelope: %v", err)
	}

	output := filepath.Join(dir, "restored.crypt")

	written, size, err := getEnvelope(ctx, store, ref, output)
	if err != nil {
		t.Fatalf("getEnvelope: %v", err)
	}

	if written != output || size != len(content) {
		t.Errorf("got (%q, %d), want (%q, %d)", written, size, output, len(content))
	}

	restored, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if !bytes.Equal(restored, content) {
		t.Errorf("restored content = %q, want %q", restored, content)
	}
}

func TestGetEnvelopeUnknownRef(t *testing.T) {
	t.Parallel()

	_, _, err := getEnvelope(context.Background(), newFakeStore(), "no-such-ref", "")
	if !errors.Is(err, stash.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateEnvelopeReplacesContent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	ctx := context.Background()
	dir := t.TempDir()
	path := writeTestFile(t, dir, "note.crypt", []byte("old bytes"))

	ref, err := putEnvelope(ctx, store, path, "", "")
	if err != nil {
		t.Fatalf("putEnvelope: %v", err)
	}

	updated := writeTestFile(t, dir, "note-v2.crypt", []byte("new bytes"))

	if err := updateEnvelope(ctx, store, ref, updated); err != nil {
		t.Fatalf("updateEnvelope: %v", err)
	}

	record, err := store.GetByRef(ctx, ref)
	if err != nil {
		t.Fatalf("GetByRef: %v", err)
	}

	if !bytes.Equal(record.Content, []byte("new bytes")) {
		t.Errorf("content after update = %q, want %q", record.Content, "new bytes")
	}
}

func TestUpdateEnvelopeUnknownRef(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTestFile(t, dir, "note.crypt", []byte("bytes"))

	err := updateEnvelope(context.Background(), newFakeStore(), "no-such-ref", path)
	if !errors.Is(err, stash.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
