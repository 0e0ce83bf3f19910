// Package gloss wires corpus loading, the encoded-corpus cache, indexing and
// induction into one pipeline, and glosses text with the resulting lexicon.
package gloss

import (
	"context"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/FocuswithJustin/JuniperGloss/core/cas"
	"github.com/FocuswithJustin/JuniperGloss/core/corpus"
	"github.com/FocuswithJustin/JuniperGloss/core/errors"
	"github.com/FocuswithJustin/JuniperGloss/core/index"
	"github.com/FocuswithJustin/JuniperGloss/core/lexicon"
	"github.com/FocuswithJustin/JuniperGloss/core/score"
	"github.com/FocuswithJustin/JuniperGloss/internal/logging"
)

// Injectable for tests.
var osReadFile = os.ReadFile

// Config describes one lexicon build.
type Config struct {
	// SourcePath and TargetPath are the training corpora.
	SourcePath string
	TargetPath string

	// Load controls parsing and tokenisation of both corpora.
	Load corpus.LoadOptions

	// Intersect restricts both corpora to their common verses instead of
	// rejecting corpora whose verse sets differ.
	Intersect bool

	// CacheDir holds encoded corpora between runs. Empty disables caching.
	CacheDir string

	// Scorer names the association measure; see score.Names.
	Scorer string

	// Workers bounds induction parallelism. Zero means GOMAXPROCS.
	Workers int
}

// Result is a built lexicon with a summary of how it was built.
type Result struct {
	Lexicon *lexicon.Lexicon

	// Verses is the number of aligned verses induction ran over.
	Verses int

	// SourceNGrams and TargetNGrams are the vocabulary sizes.
	SourceNGrams int
	TargetNGrams int

	// Cached reports that both encoded corpora came from the cache.
	Cached bool
}

// side is one language of the training pair while it moves through the pipeline.
type side struct {
	role string
	path string
	data []byte
	key  string
	enc  *index.Encoded
	c    *corpus.Corpus
}

// BuildLexicon loads both corpora, checks their alignment, encodes them
// (through the cache when configured), indexes them and induces a lexicon.
// Corpus load failures and verse mismatches are returned before any
// induction work starts.
func BuildLexicon(ctx context.Context, cfg Config) (*Result, error) {
	scorer, err := score.Lookup(cfg.Scorer)
	if err != nil {
		return nil, err
	}

	src := &side{role: "source", path: cfg.SourcePath}
	trg := &side{role: "target", path: cfg.TargetPath}
	for _, s := range []*side{src, trg} {
		if s.path == "" {
			return nil, errors.NewValidation(s.role, "corpus path is required")
		}
		data, err := osReadFile(s.path)
		if err != nil {
			return nil, errors.NewIO("read corpus", s.path, err)
		}
		s.data = data
	}

	var c *index.Cache
	if cfg.CacheDir != "" {
		if c, err = index.OpenCache(cfg.CacheDir); err != nil {
			return nil, err
		}
	}
	srcHash, trgHash := cas.Hash(src.data), cas.Hash(trg.data)
	intersect := strconv.FormatBool(cfg.Intersect)
	src.key = index.CacheKey(src.role, cfg.Load, srcHash, trgHash, intersect)
	trg.key = index.CacheKey(trg.role, cfg.Load, srcHash, trgHash, intersect)

	start := time.Now()
	for _, s := range []*side{src, trg} {
		s.enc = lookup(ctx, c, s)
	}
	cached := src.enc != nil && trg.enc != nil && slices.Equal(src.enc.VerseIDs, trg.enc.VerseIDs)

	if !cached {
		if err := encodePair(ctx, cfg, c, src, trg); err != nil {
			return nil, err
		}
	}
	logging.Stage(ctx, "encode", time.Since(start), "verses", len(src.enc.VerseIDs), "cached", cached)

	start = time.Now()
	srcIdx, trgIdx := index.New(src.enc), index.New(trg.enc)
	logging.Stage(ctx, "index", time.Since(start),
		"source_ngrams", srcIdx.NGrams(), "target_ngrams", trgIdx.NGrams())

	start = time.Now()
	lex, err := lexicon.Induce(ctx, srcIdx, trgIdx, lexicon.InduceOptions{
		Scorer:  scorer,
		Workers: cfg.Workers,
		Progress: func(done, total int) {
			logging.InductionProgress(ctx, done, total)
		},
	})
	if err != nil {
		return nil, err
	}
	logging.Stage(ctx, "induce", time.Since(start), "entries", lex.Len())

	return &Result{
		Lexicon:      lex,
		Verses:       srcIdx.Verses(),
		SourceNGrams: srcIdx.NGrams(),
		TargetNGrams: trgIdx.NGrams(),
		Cached:       cached,
	}, nil
}

// lookup returns the cached encoding for s, or nil on a miss. Unreadable
// entries are logged and treated as misses.
func lookup(ctx context.Context, c *index.Cache, s *side) *index.Encoded {
	if c == nil {
		return nil
	}
	enc, err := c.Get(s.key)
	switch {
	case err == nil:
		logging.CacheEvent(ctx, "hit", s.role, s.key)
		return enc
	case errors.Is(err, errors.ErrNotFound):
		logging.CacheEvent(ctx, "miss", s.role, s.key)
	default:
		logging.WarnContext(ctx, "unreadable cache entry", "role", s.role, "key", s.key, "error", err.Error())
	}
	return nil
}

// encodePair parses both corpora, settles the verse set and encodes each
// side, reusing a cached encoding when it was built over the same verses.
func encodePair(ctx context.Context, cfg Config, c *index.Cache, src, trg *side) error {
	start := time.Now()
	for _, s := range []*side{src, trg} {
		parsed, err := corpus.Parse(s.path, s.data, cfg.Load)
		if err != nil {
			return err
		}
		s.c = parsed
		logging.CorpusLoaded(ctx, s.role, s.path, string(parsed.Format), parsed.Len(), parsed.TokenCount())
	}
	logging.Stage(ctx, "load", time.Since(start))

	var ids []corpus.VerseID
	if cfg.Intersect {
		ids = corpus.CommonIDs(src.c, trg.c)
		if dropped := src.c.Len() + trg.c.Len() - 2*len(ids); dropped > 0 {
			logging.WarnContext(ctx, "dropping unaligned verses",
				"common", len(ids), "source", src.c.Len(), "target", trg.c.Len())
		}
	} else {
		if err := corpus.CheckAligned(src.c, trg.c); err != nil {
			return err
		}
		ids = src.c.IDs()
	}

	for _, s := range []*side{src, trg} {
		if s.enc != nil {
			if slices.Equal(s.enc.VerseIDs, ids) {
				continue
			}
			logging.CacheEvent(ctx, "stale", s.role, s.key)
		}
		enc, err := index.Encode(s.c, ids)
		if err != nil {
			return err
		}
		s.enc = enc
		if err := c.Put(s.key, enc); err != nil {
			logging.WarnContext(ctx, "cache write failed", "role", s.role, "error", err.Error())
			continue
		}
		if c != nil {
			logging.CacheEvent(ctx, "store", s.role, s.key)
		}
	}
	return nil
}
