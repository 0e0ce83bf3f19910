package lexicon

import (
	"testing"

	"github.com/FocuswithJustin/JuniperGloss/core/corpus"
)

func TestTranslate(t *testing.T) {
	lex := FromMap(map[string]Entry{
		"#house#": {Score: 2, Source: "#nyumba#"},
		"#hous":   {Score: 1, Source: "nyumb"},
		"s#":      {Score: 5, Source: "#za#"},
		"#man#":   {Score: 1.5, Source: "#mtu#"},
		"#dead#":  {Score: -1, Source: "#wafu#"},
	})

	tests := []struct {
		name   string
		token  string
		want   string
		wantOK bool
	}{
		{"whole token", "house", "#nyumba#", true},
		{"prefix only", "housed", "nyumb", true},
		// s# gives 5*4=20, beating #hous at 1*5=5.
		{"higher weight wins", "houses", "#za#", true},
		{"exact vocabulary hit", "man", "#mtu#", true},
		{"dropped non-positive entry", "dead", "", false},
		{"unknown", "xyz", "", false},
		{"empty token", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := lex.Translate(tt.token)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Translate(%q) = %q, %v; want %q, %v", tt.token, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBestTieBreaks(t *testing.T) {
	t.Run("longer target key", func(t *testing.T) {
		lex := FromMap(map[string]Entry{
			"#ab#": {Score: 1, Source: "#x#"},
			"ab":   {Score: 1, Source: "#x#"},
		})
		m, ok := lex.Best("ab")
		if !ok || m.Target != "#ab#" {
			t.Errorf("Best = %+v, %v; want target #ab#", m, ok)
		}
	})

	t.Run("higher score at equal weight", func(t *testing.T) {
		lex := FromMap(map[string]Entry{
			"#a": {Score: 2, Source: "pq"},   // weight 4
			"b#": {Score: 1, Source: "pqrs"}, // weight 4
		})
		m, ok := lex.Best("ab")
		if !ok || m.Source != "pq" {
			t.Errorf("Best = %+v, %v; want source pq", m, ok)
		}
	})

	t.Run("smaller source", func(t *testing.T) {
		lex := FromMap(map[string]Entry{
			"#a": {Score: 1, Source: "zz"},
			"b#": {Score: 1, Source: "yy"},
		})
		m, ok := lex.Best("ab")
		if !ok || m.Source != "yy" {
			t.Errorf("Best = %+v, %v; want source yy", m, ok)
		}
	})

	t.Run("smaller target", func(t *testing.T) {
		lex := FromMap(map[string]Entry{
			"#b": {Score: 1, Source: "yy"},
			"a#": {Score: 1, Source: "yy"},
		})
		m, ok := lex.Best("ba")
		if !ok || m.Target != "#b" {
			t.Errorf("Best = %+v, %v; want target #b", m, ok)
		}
	})
}

func TestTranslateEndToEnd(t *testing.T) {
	src, trg := buildPair(t,
		map[corpus.VerseID][]string{"1": {"nyumba"}},
		map[corpus.VerseID][]string{"1": {"house"}},
	)
	lex := mustInduce(t, src, trg, InduceOptions{})
	got, ok := lex.Translate("house")
	if !ok || got != "#nyumba#" {
		t.Errorf("Translate(house) = %q, %v; want #nyumba#", got, ok)
	}
}

func TestEntryWeight(t *testing.T) {
	if got := (Entry{Score: 0.5, Source: "#nyumba#"}).Weight(); got != 4 {
		t.Errorf("Weight() = %v, want 4", got)
	}
	if got := (Entry{Score: 1, Source: "ñá"}).Weight(); got != 2 {
		t.Errorf("Weight() counts bytes: %v, want 2", got)
	}
}
