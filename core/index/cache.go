package index

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/JuniperGloss/core/cas"
	"github.com/FocuswithJustin/JuniperGloss/core/corpus"
	"github.com/FocuswithJustin/JuniperGloss/core/errors"
)

// cacheFormat is mixed into every key; bump it when Encoded changes shape.
const cacheFormat = "gloss-encoded/1"

// Injectable for tests.
var (
	xzNewWriter = xz.NewWriter
	xzNewReader = xz.NewReader
)

// Cache persists encoded corpora as xz-compressed JSON in a content-addressed
// store. A nil *Cache is a disabled cache: every Get misses and Put does nothing.
type Cache struct {
	store *cas.Store
}

// OpenCache opens or creates a cache rooted at dir.
func OpenCache(dir string) (*Cache, error) {
	store, err := cas.NewStore(dir)
	if err != nil {
		return nil, errors.NewIO("open cache", dir, err)
	}
	return &Cache{store: store}, nil
}

// CacheKey identifies one side of an encoded corpus pair. role distinguishes
// source from target; inputs are the content hashes of everything that
// decides the verse set and tokens (both corpus files, loader options).
func CacheKey(role string, opts corpus.LoadOptions, inputs ...string) string {
	parts := []string{
		cacheFormat,
		role,
		string(opts.Format),
		strconv.FormatBool(opts.Normalizer.Lowercase),
	}
	return cas.Key(append(parts, inputs...)...)
}

// Get returns the encoded corpus stored under key. A miss is reported as an
// error matching errors.ErrNotFound.
func (c *Cache) Get(key string) (*Encoded, error) {
	if c == nil {
		return nil, errors.NewNotFound("cache entry", key)
	}

	data, err := c.store.GetKeyed(key)
	if err != nil {
		if errors.Is(err, cas.ErrBlobNotFound) {
			return nil, &errors.NotFoundError{Resource: "cache entry", ID: key}
		}
		return nil, errors.Wrap(err, "read cache entry")
	}

	zr, err := xzNewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: "xz", Path: key, Message: err.Error(), Err: err}
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, &errors.ParseError{Format: "xz", Path: key, Message: err.Error(), Err: err}
	}

	var enc Encoded
	if err := json.Unmarshal(raw, &enc); err != nil {
		return nil, &errors.ParseError{Format: "cache entry", Path: key, Message: err.Error(), Err: err}
	}
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return &enc, nil
}

// Put stores enc under key, replacing any earlier entry.
func (c *Cache) Put(key string, enc *Encoded) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(enc)
	if err != nil {
		return errors.Wrap(err, "encode cache entry")
	}

	var buf bytes.Buffer
	zw, err := xzNewWriter(&buf)
	if err != nil {
		return errors.Wrap(err, "create xz writer")
	}
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return errors.Wrap(err, "compress cache entry")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "compress cache entry")
	}

	if _, err := c.store.PutKeyed(key, buf.Bytes()); err != nil {
		return errors.NewIO("write cache entry", c.store.Root(), err)
	}
	return nil
}
