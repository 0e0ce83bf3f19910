package cas

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

// TestPutAndGet tests that storing a blob returns its SHA-256 hash
// and that retrieving by hash returns the exact same bytes.
func TestPutAndGet(t *testing.T) {
	store := newTestStore(t)
	data := []byte("#nyumba#")

	h := sha256.Sum256(data)
	want := hex.EncodeToString(h[:])

	hash, err := store.Put(data)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if hash != want {
		t.Errorf("hash = %s, want %s", hash, want)
	}
	if !store.Has(hash) {
		t.Error("Has() = false after Put")
	}

	got, err := store.Get(hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get() = %q, want %q", got, data)
	}
}

// TestPutDuplicate tests deduplication of identical content.
func TestPutDuplicate(t *testing.T) {
	store := newTestStore(t)
	data := []byte("duplicate")

	h1, err := store.Put(data)
	if err != nil {
		t.Fatalf("first Put: %v", err)
	}
	h2, err := store.Put(data)
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if h1 != h2 {
		t.Errorf("hashes differ: %s != %s", h1, h2)
	}

	entries, err := os.ReadDir(filepath.Join(store.Root(), "blobs", "sha256", h1[:2]))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("found %d files, want 1", len(entries))
	}
}

func TestGetErrors(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Get("not-a-hash"); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("Get(invalid) error = %v, want ErrInvalidHash", err)
	}
	if _, err := store.Get(Hash([]byte("absent"))); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("Get(absent) error = %v, want ErrBlobNotFound", err)
	}
	if store.Has("zz") {
		t.Error("Has(invalid) = true")
	}
}

func TestGetCorruptBlob(t *testing.T) {
	store := newTestStore(t)
	hash, err := store.Put([]byte("original"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := os.WriteFile(store.blobPath(hash), []byte("tampered"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := store.Get(hash); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("Get(corrupt) error = %v, want ErrBlobNotFound", err)
	}
}

func TestKey(t *testing.T) {
	a := Key("src.txt", "abc")
	if a != Key("src.txt", "abc") {
		t.Error("Key is not deterministic")
	}
	if !isValidHash(a) {
		t.Errorf("Key() = %q, not a 64-char hex digest", a)
	}
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Key does not separate parts")
	}
	if Key() == Key("") {
		t.Error("Key() and Key(\"\") collide")
	}
}

func TestPutKeyedAndResolve(t *testing.T) {
	store := newTestStore(t)
	key := Key("corpus", "v1")

	if _, err := store.GetKeyed(key); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("GetKeyed before Put error = %v, want ErrBlobNotFound", err)
	}

	hash, err := store.PutKeyed(key, []byte("first"))
	if err != nil {
		t.Fatalf("PutKeyed: %v", err)
	}
	resolved, err := store.Resolve(key)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved != hash {
		t.Errorf("Resolve() = %s, want %s", resolved, hash)
	}

	// re-pointing a key replaces its target
	if _, err := store.PutKeyed(key, []byte("second")); err != nil {
		t.Fatalf("PutKeyed again: %v", err)
	}
	got, err := store.GetKeyed(key)
	if err != nil {
		t.Fatalf("GetKeyed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("GetKeyed() = %q, want %q", got, "second")
	}

	if _, err := store.PutKeyed("bad", nil); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("PutKeyed(invalid key) error = %v, want ErrInvalidHash", err)
	}
}

func TestPutRenameFailure(t *testing.T) {
	store := newTestStore(t)

	orig := osRename
	osRename = func(string, string) error { return errors.New("rename failed") }
	defer func() { osRename = orig }()

	if _, err := store.Put([]byte("data")); err == nil {
		t.Fatal("Put succeeded despite rename failure")
	}

	// no temp files are left behind
	var leftovers int
	filepath.Walk(store.Root(), func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			leftovers++
		}
		return nil
	})
	if leftovers != 0 {
		t.Errorf("%d files left after failed Put", leftovers)
	}
}

func TestPutWriteFailure(t *testing.T) {
	store := newTestStore(t)

	orig := tempFileWrite
	tempFileWrite = func(*os.File, []byte) (int, error) { return 0, errors.New("disk full") }
	defer func() { tempFileWrite = orig }()

	if _, err := store.Put([]byte("data")); err == nil {
		t.Fatal("Put succeeded despite write failure")
	}
}
