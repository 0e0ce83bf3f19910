package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	gerrors "github.com/FocuswithJustin/JuniperGloss/core/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		input   string
		want    Ref
		wantErr bool
	}{
		{input: "Gen.1", want: Ref{Book: "Gen", Chapter: 1}},
		{input: "Gen.1.1", want: Ref{Book: "Gen", Chapter: 1, Verse: 1}},
		{input: "Gen.1.1a", want: Ref{Book: "Gen", Chapter: 1, Verse: 1, SubVerse: "a"}},
		{input: "Matt.5.3-12", want: Ref{Book: "Matt", Chapter: 5, Verse: 3, VerseEnd: 12}},
		{input: "1John.3.16", want: Ref{Book: "1John", Chapter: 3, Verse: 16}},
		{input: "", wantErr: true},
		{input: "gen.1.1", wantErr: true},
		{input: "Gen 1:1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRef(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRef(%q) = %+v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) error: %v", tt.input, err)
			}
			if *got != tt.want {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestSortVerseIDs(t *testing.T) {
	ids := []VerseID{"Gen.1.10", "10", "x", "Gen.1.2", "2", "Exod.1.1", "Gen.1.2a", "1", "a"}
	SortVerseIDs(ids)
	want := []VerseID{"1", "2", "10", "Exod.1.1", "Gen.1.2", "Gen.1.2a", "Gen.1.10", "a", "x"}
	if !slices.Equal(ids, want) {
		t.Errorf("SortVerseIDs = %v, want %v", ids, want)
	}
}

func TestCompareVerseIDs(t *testing.T) {
	tests := []struct {
		a, b VerseID
		want int
	}{
		{"9", "10", -1},
		{"10", "9", 1},
		{"7", "007", 1},
		{"40001001", "Gen.1.1", -1},
		{"Gen.2.1", "Gen.1.31", 1},
		{"Gen.1.1", "Gen.1.1", 0},
	}
	for _, tt := range tests {
		if got := CompareVerseIDs(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVerseIDs(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizerTokenize(t *testing.T) {
	tests := []struct {
		name string
		norm Normalizer
		line string
		want []string
	}{
		{"whitespace", Normalizer{}, "  In the\tbeginning  ", []string{"In", "the", "beginning"}},
		{"empty", Normalizer{}, "   ", []string{}},
		{"sentinel removed", Normalizer{}, "#tag a#b ##", []string{"tag", "ab"}},
		{"fold", Normalizer{Lowercase: true}, "Mungu ALISEMA", []string{"mungu", "alisema"}},
		{"nfc", Normalizer{}, "café", []string{"café"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.norm.Tokenize(tt.line)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	c, err := Parse("src.txt", []byte("nyumba kubwa\n\nmtu\r\n"), LoadOptions{Format: FormatText})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if got, _ := c.Tokens("1"); !slices.Equal(got, []string{"nyumba", "kubwa"}) {
		t.Errorf("verse 1 = %q", got)
	}
	if got, ok := c.Tokens("2"); !ok || len(got) != 0 {
		t.Errorf("verse 2 = %q, %v; want empty verse", got, ok)
	}
	if got, _ := c.Tokens("3"); !slices.Equal(got, []string{"mtu"}) {
		t.Errorf("verse 3 = %q", got)
	}
	if c.TokenCount() != 3 {
		t.Errorf("TokenCount() = %d, want 3", c.TokenCount())
	}
}

func TestParseTSV(t *testing.T) {
	data := "Gen.1.1\tIn the beginning\n\nGen.1.2\tAnd the earth\n"
	c, err := Parse("src.tsv", []byte(data), LoadOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Format != FormatTSV {
		t.Errorf("Format = %q, want tsv", c.Format)
	}
	if !slices.Equal(c.IDs(), []VerseID{"Gen.1.1", "Gen.1.2"}) {
		t.Errorf("IDs() = %v", c.IDs())
	}
}

func TestParseTSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
	}{
		{"duplicate", "1\ta\n1\tb\n", 2},
		{"missing tab", "1\ta\nno tab here\n", 2},
		{"empty id", "1\ta\n \tb\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x.tsv", []byte(tt.data), LoadOptions{Format: FormatTSV})
			var pe *gerrors.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error = %v, want ParseError", err)
			}
			if pe.Line != tt.line {
				t.Errorf("Line = %d, want %d", pe.Line, tt.line)
			}
		})
	}
}

const osisContainer = `<?xml version="1.0" encoding="UTF-8"?>
<osis xmlns="http://www.bibletechnologies.net/2003/OSIS/namespace">
  <osisText osisIDWork="Test" xml:lang="sw">
    <div type="book" osisID="Gen">
      <chapter osisID="Gen.1">
        <verse osisID="Gen.1.1">Hapo mwanzo<note>a footnote</note> Mungu</verse>
        <verse osisID="Gen.1.2">Nchi ilikuwa</verse>
      </chapter>
    </div>
  </osisText>
</osis>`

const osisMilestone = `<?xml version="1.0" encoding="UTF-8"?>
<osis xmlns="http://www.bibletechnologies.net/2003/OSIS/namespace">
  <osisText osisIDWork="Test" xml:lang="sw">
    <div type="book" osisID="Gen">
      <chapter sID="Gen.1" osisID="Gen.1"/>
      <p><verse sID="Gen.1.1" osisID="Gen.1.1"/>Hapo mwanzo<note>a footnote</note> Mungu<verse eID="Gen.1.1"/>
      <verse sID="Gen.1.2" osisID="Gen.1.2"/>Nchi <hi type="italic">ilikuwa</hi><verse eID="Gen.1.2"/></p>
      <chapter eID="Gen.1"/>
    </div>
  </osisText>
</osis>`

func TestParseOSIS(t *testing.T) {
	for name, data := range map[string]string{"container": osisContainer, "milestone": osisMilestone} {
		t.Run(name, func(t *testing.T) {
			c, err := Parse("gen.xml", []byte(data), LoadOptions{})
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if c.Format != FormatOSIS {
				t.Errorf("Format = %q, want osis", c.Format)
			}
			if !slices.Equal(c.IDs(), []VerseID{"Gen.1.1", "Gen.1.2"}) {
				t.Fatalf("IDs() = %v", c.IDs())
			}
			if got, _ := c.Tokens("Gen.1.1"); !slices.Equal(got, []string{"Hapo", "mwanzo", "Mungu"}) {
				t.Errorf("Gen.1.1 = %q", got)
			}
			if got, _ := c.Tokens("Gen.1.2"); !slices.Equal(got, []string{"Nchi", "ilikuwa"}) {
				t.Errorf("Gen.1.2 = %q", got)
			}
		})
	}
}

func TestParseOSISWithoutVerses(t *testing.T) {
	_, err := Parse("empty.xml", []byte(`<osis><osisText/></osis>`), LoadOptions{})
	if !errors.Is(err, gerrors.ErrInvalidInput) {
		t.Errorf("error = %v, want invalid input", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		data string
		want Format
	}{
		{"bible.xml", "", FormatOSIS},
		{"bible.osis", "", FormatOSIS},
		{"bible.txt", "<?xml version=\"1.0\"?><osis/>", FormatOSIS},
		{"bible.txt", "\n1\tIn the beginning\n", FormatTSV},
		{"bible.txt", "In the beginning\nAnd the earth\tx\n", FormatText},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.path, []byte(tt.data)); got != tt.want {
			t.Errorf("DetectFormat(%q, %q) = %q, want %q", tt.path, tt.data, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "src.txt", "Nyumba\n")

	c, err := Load(path, LoadOptions{Normalizer: Normalizer{Lowercase: true}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, _ := c.Tokens("1"); !slices.Equal(got, []string{"nyumba"}) {
		t.Errorf("verse 1 = %q", got)
	}
	if c.Path != path {
		t.Errorf("Path = %q, want %q", c.Path, path)
	}

	if _, err := Load(filepath.Join(dir, "missing.txt"), LoadOptions{}); err == nil {
		t.Error("Load of missing file succeeded")
	}
	if _, err := Load(path, LoadOptions{Format: "docx"}); !errors.Is(err, gerrors.ErrUnsupported) {
		t.Errorf("error = %v, want unsupported", err)
	}
}

func TestCheckAligned(t *testing.T) {
	src := New("", FormatText)
	trg := New("", FormatText)
	for _, id := range []VerseID{"1", "2", "3"} {
		src.Append(id, "a")
		trg.Append(id, "b")
	}
	if err := CheckAligned(src, trg); err != nil {
		t.Fatalf("CheckAligned on aligned corpora: %v", err)
	}

	trg.Append("4", "c")
	err := CheckAligned(src, trg)
	var ae *gerrors.AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want AlignmentError", err)
	}
	if ae.SourceVerses != 3 || ae.TargetVerses != 4 {
		t.Errorf("counts = %d/%d, want 3/4", ae.SourceVerses, ae.TargetVerses)
	}
	if !slices.Equal(ae.MissingInSource, []string{"4"}) {
		t.Errorf("MissingInSource = %v", ae.MissingInSource)
	}
	if !errors.Is(err, gerrors.ErrAlignment) {
		t.Error("error should match ErrAlignment")
	}
}

func TestCommonIDsAndRestrict(t *testing.T) {
	src := New("", FormatTSV)
	trg := New("", FormatTSV)
	src.Append("Gen.1.1", "a")
	src.Append("Gen.1.2", "b")
	trg.Append("Gen.1.2", "c")
	trg.Append("Gen.1.3", "d")

	common := CommonIDs(src, trg)
	if !slices.Equal(common, []VerseID{"Gen.1.2"}) {
		t.Fatalf("CommonIDs = %v", common)
	}
	r := src.Restrict(common)
	if r.Len() != 1 || !r.Has("Gen.1.2") || r.Has("Gen.1.1") {
		t.Errorf("Restrict kept %v", r.IDs())
	}

	none := New("", FormatText)
	none.Append("x")
	if got := CommonIDs(src, none); len(got) != 0 {
		t.Errorf("CommonIDs with disjoint corpora = %v", got)
	}
}
