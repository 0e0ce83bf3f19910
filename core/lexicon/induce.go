package lexicon

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/JuniperGloss/core/errors"
	"github.com/FocuswithJustin/JuniperGloss/core/index"
	"github.com/FocuswithJustin/JuniperGloss/core/score"
)

// InduceOptions configures Induce.
type InduceOptions struct {
	// Scorer measures association. Defaults to score.BetaBinomial.
	Scorer score.Scorer

	// Workers is the number of goroutines. Zero means GOMAXPROCS.
	Workers int

	// Progress, if set, is called with the number of target n-grams
	// processed so far. Calls may come from any worker goroutine.
	Progress func(done, total int)

	// ProgressEvery is the number of target n-grams between Progress calls.
	ProgressEvery int
}

const defaultProgressEvery = 10000

// Induce finds, for every target n-gram, the source n-gram that maximises
// score times source length among those sharing at least one verse with it,
// and keeps it when its score is strictly positive.
//
// The two indexes must be encoded over the same verse list. The result does
// not depend on Workers. Induce stops between target n-grams when ctx is
// cancelled and returns ctx.Err().
func Induce(ctx context.Context, src, trg *index.Index, opts InduceOptions) (*Lexicon, error) {
	if src == nil || trg == nil {
		return nil, errors.NewValidation("index", "source and target indexes are required")
	}
	if src.Verses() != trg.Verses() {
		return nil, &errors.AlignmentError{SourceVerses: src.Verses(), TargetVerses: trg.Verses()}
	}
	if opts.Workers < 0 {
		return nil, errors.NewValidation("workers", "must not be negative")
	}

	scorer := opts.Scorer
	if scorer == nil {
		scorer = score.BetaBinomial{}
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	every := opts.ProgressEvery
	if every <= 0 {
		every = defaultProgressEvery
	}

	total := trg.NGrams()
	best := make([]Entry, total)
	found := make([]bool, total)

	g, gctx := errgroup.WithContext(ctx)
	next := make(chan int32, workers*4)
	g.Go(func() error {
		defer close(next)
		for t := range int32(total) {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			case next <- t:
			}
		}
		return nil
	})

	var (
		mu   sync.Mutex
		done int
	)
	for range workers {
		g.Go(func() error {
			in := inducer{src: src, trg: trg, scorer: scorer, joiner: src.NewJoiner()}
			for t := range next {
				best[t], found[t] = in.best(t)
				if opts.Progress != nil {
					mu.Lock()
					done++
					if done%every == 0 || done == total {
						opts.Progress(done, total)
					}
					mu.Unlock()
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lex := New()
	vocab := trg.Vocabulary()
	for t := range best {
		if found[t] {
			lex.entries[vocab[t]] = best[t]
		}
	}
	return lex, nil
}

// inducer holds the per-worker state for Induce.
type inducer struct {
	src, trg *index.Index
	scorer   score.Scorer
	joiner   *index.Joiner
}

// best returns the winning candidate for target n-gram t and whether it
// has a strictly positive score.
func (in *inducer) best(t int32) (Entry, bool) {
	verses := in.trg.VersesContaining(t)
	ids, counts := in.joiner.CoOccurring(verses)
	if len(ids) == 0 {
		return Entry{}, false
	}

	c := score.Counts{
		Verses: in.src.Verses(),
		Target: in.trg.VerseFrequency(t),
		NGrams: in.src.NGrams(),
	}

	var top Entry
	for i, s := range ids {
		c.Both = int(counts[i])
		c.Source = in.src.VerseFrequency(s)
		cand := Entry{Score: in.scorer.Score(c), Source: in.src.NGram(s)}
		if i == 0 || compareEntries(cand, top) > 0 {
			top = cand
		}
	}
	return top, top.Score > 0
}
