package corpus

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Ref is an OSIS-style scripture reference used as a verse identifier.
type Ref struct {
	Book     string
	Chapter  int
	Verse    int
	SubVerse string
	VerseEnd int
}

// refGrammar accepts "Gen.1", "Gen.1.1", "Gen.1.1a", "Gen.1.1-3", "1John.3.16".
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string       `@Int?`
	BookName   string       `@Ident`
	ChapterRef *chapterPart `( "." @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterPart struct {
	Chapter  int        `@Int`
	VerseRef *versePart `( "." @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type versePart struct {
	Verse    int     `@Int`
	SubVerse *string `@SubVerse?`
	Range    *int    `( "-" @Int )?`
}

// Ident starts with uppercase to distinguish book names from a sub-verse letter.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Z][A-Za-z]*`},
	{Name: "SubVerse", Pattern: `[a-z]`},
	{Name: "Punct", Pattern: `[.\-]`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
)

// ParseRef parses an OSIS reference such as "Matt.5.3".
func ParseRef(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid reference format: %q: %w", s, err)
	}

	ref := &Ref{Book: parsed.BookPrefix + parsed.BookName}
	if cp := parsed.ChapterRef; cp != nil {
		ref.Chapter = cp.Chapter
		if vp := cp.VerseRef; vp != nil {
			ref.Verse = vp.Verse
			if vp.SubVerse != nil {
				ref.SubVerse = *vp.SubVerse
			}
			if vp.Range != nil {
				ref.VerseEnd = *vp.Range
			}
		}
	}
	return ref, nil
}

// Compare orders references by book name, chapter, verse, sub-verse and range end.
// Book names compare lexically; the order is deterministic, not canonical.
func (r *Ref) Compare(o *Ref) int {
	return cmp.Or(
		cmp.Compare(r.Book, o.Book),
		cmp.Compare(r.Chapter, o.Chapter),
		cmp.Compare(r.Verse, o.Verse),
		cmp.Compare(r.SubVerse, o.SubVerse),
		cmp.Compare(r.VerseEnd, o.VerseEnd),
	)
}
