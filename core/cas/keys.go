package cas

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// keyPointer is the structure stored in key pointer files.
type keyPointer struct {
	SHA256 string `json:"sha256"`
}

// Key derives a BLAKE3 key from an ordered list of parts. Parts are length
// prefixed, so ("ab", "c") and ("a", "bc") give different keys.
func Key(parts ...string) string {
	h := blake3.New()
	var n [8]byte
	for _, p := range parts {
		size := uint64(len(p))
		for i := range n {
			n[i] = byte(size >> (8 * i))
		}
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PutKeyed stores data and points key at it, replacing any earlier target.
func (s *Store) PutKeyed(key string, data []byte) (string, error) {
	if !isValidHash(key) {
		return "", ErrInvalidHash
	}

	hash, err := s.Put(data)
	if err != nil {
		return "", err
	}

	pointer, err := json.Marshal(keyPointer{SHA256: hash})
	if err != nil {
		return "", fmt.Errorf("failed to marshal pointer: %w", err)
	}
	if err := writeAtomic(s.keyPath(key), ".pointer-*", pointer); err != nil {
		return "", fmt.Errorf("failed to write pointer: %w", err)
	}
	return hash, nil
}

// Resolve returns the SHA-256 hash a key points at.
func (s *Store) Resolve(key string) (string, error) {
	if !isValidHash(key) {
		return "", ErrInvalidHash
	}

	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrBlobNotFound
		}
		return "", fmt.Errorf("failed to read pointer: %w", err)
	}

	var pointer keyPointer
	if err := json.Unmarshal(data, &pointer); err != nil {
		return "", fmt.Errorf("failed to parse pointer: %w", err)
	}
	return pointer.SHA256, nil
}

// GetKeyed returns the blob a key points at.
func (s *Store) GetKeyed(key string) ([]byte, error) {
	hash, err := s.Resolve(key)
	if err != nil {
		return nil, err
	}
	return s.Get(hash)
}

// keyPath returns <root>/keys/blake3/<first2>/<key>.json.
func (s *Store) keyPath(key string) string {
	return filepath.Join(s.root, "keys", "blake3", key[:2], key+".json")
}
