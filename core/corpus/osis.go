package corpus

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/JuniperGloss/core/errors"
)

var verseExpr = xpath.MustCompile("//*[local-name()='verse']")

// parseOSIS reads container verses (<verse osisID="..">text</verse>) and
// milestone verses (<verse sID=".." osisID=".."/> .. <verse eID=".."/>).
// Notes are skipped. A verse whose osisID lists several references is
// stored under the first one.
func parseOSIS(path string, r io.Reader, n Normalizer) (*Corpus, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &errors.ParseError{Format: "osis", Path: path, Message: err.Error(), Err: err}
	}
	if len(xmlquery.QuerySelectorAll(doc, verseExpr)) == 0 {
		return nil, errors.NewParse("osis", path, 0, "no verse elements")
	}

	w := &osisWalker{corpus: New(path, FormatOSIS), norm: n}
	w.walk(doc)
	w.flush()
	return w.corpus, nil
}

type osisWalker struct {
	corpus  *Corpus
	norm    Normalizer
	current VerseID
	text    strings.Builder
}

func (w *osisWalker) flush() {
	if w.current != "" {
		w.corpus.Append(w.current, w.norm.Tokenize(w.text.String())...)
	}
	w.current = ""
	w.text.Reset()
}

func (w *osisWalker) walk(node *xmlquery.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if w.current != "" {
				w.text.WriteString(child.Data)
				w.text.WriteByte(' ')
			}
		case xmlquery.ElementNode:
			switch child.Data {
			case "note":
				continue
			case "verse":
				w.verse(child)
				continue
			}
			w.walk(child)
		}
	}
}

func (w *osisWalker) verse(el *xmlquery.Node) {
	id := firstRef(el.SelectAttr("osisID"))

	if sid := el.SelectAttr("sID"); sid != "" {
		w.flush()
		if id == "" {
			id = firstRef(sid)
		}
		w.current = id
		return
	}
	if el.SelectAttr("eID") != "" {
		w.flush()
		return
	}
	if id == "" {
		return
	}

	w.flush()
	var sb strings.Builder
	collectText(el, &sb)
	w.corpus.Append(id, w.norm.Tokenize(sb.String())...)
}

func collectText(node *xmlquery.Node, sb *strings.Builder) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			sb.WriteString(child.Data)
			sb.WriteByte(' ')
		case xmlquery.ElementNode:
			if child.Data != "note" {
				collectText(child, sb)
			}
		}
	}
}

func firstRef(attr string) VerseID {
	fields := strings.Fields(attr)
	if len(fields) == 0 {
		return ""
	}
	return VerseID(fields[0])
}
