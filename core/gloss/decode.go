package gloss

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/FocuswithJustin/JuniperGloss/core/cache"
	"github.com/FocuswithJustin/JuniperGloss/core/corpus"
	"github.com/FocuswithJustin/JuniperGloss/core/errors"
	"github.com/FocuswithJustin/JuniperGloss/core/lexicon"
	"github.com/FocuswithJustin/JuniperGloss/core/ngram"
)

const maxLineSize = 16 * 1024 * 1024

// DecoderOptions configures a Decoder.
type DecoderOptions struct {
	// Normalizer must match the one used to load the training corpora.
	Normalizer corpus.Normalizer

	// KeepSentinels writes the stored source n-gram as is instead of
	// stripping its boundary sentinels.
	KeepSentinels bool

	// Cache sizes the per-token memo. The zero value uses cache.DefaultConfig.
	Cache cache.Config
}

// gloss is the memoised outcome for one token.
type gloss struct {
	word string
	ok   bool
}

// Decoder glosses text token by token with a fixed lexicon. Tokens are
// translated independently and untranslated tokens are dropped.
type Decoder struct {
	opts DecoderOptions
	lex  *lexicon.Lexicon
	memo *cache.Memo[string, gloss]
}

// NewDecoder returns a decoder over lex.
func NewDecoder(lex *lexicon.Lexicon, opts DecoderOptions) *Decoder {
	cfg := opts.Cache
	if cfg.MaxSize == 0 {
		cfg = cache.DefaultConfig()
	}
	d := &Decoder{opts: opts, lex: lex}
	d.memo = cache.NewMemo(cfg, d.translate)
	return d
}

// Token glosses one token. ok is false when the lexicon has no match or
// the match is nothing but sentinels.
func (d *Decoder) Token(token string) (string, bool) {
	g := d.memo.Get(token)
	return g.word, g.ok
}

func (d *Decoder) translate(token string) gloss {
	src, ok := d.lex.Translate(token)
	if !ok {
		return gloss{}
	}
	if !d.opts.KeepSentinels {
		src = ngram.Strip(src)
	}
	return gloss{word: src, ok: src != ""}
}

// Line glosses every token of line and joins the translations with single
// spaces. A line with no translatable token yields "".
func (d *Decoder) Line(line string) string {
	var words []string
	for _, tok := range d.opts.Normalizer.Tokenize(line) {
		if w, ok := d.Token(tok); ok {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

// Decode glosses r line by line, writing exactly one output line per input
// line. It checks ctx between lines.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	bw := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := bw.WriteString(d.Line(scanner.Text())); err != nil {
			return errors.NewIO("write", "", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.NewIO("write", "", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIO("read input", "", err)
	}
	if err := bw.Flush(); err != nil {
		return errors.NewIO("write", "", err)
	}
	return nil
}

// Stats returns the token memo statistics.
func (d *Decoder) Stats() cache.Stats {
	return d.memo.Stats()
}
