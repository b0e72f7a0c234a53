package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ResolveHighlightStyle looks name up in chroma's registry. An empty name
// yields the default style; an unknown one yields the default and false.
func ResolveHighlightStyle(name string) (*chroma.Style, bool) {
	if name == "" {
		return styles.Get(DefaultHighlightStyle), true
	}
	if s, ok := styles.Registry[strings.ToLower(name)]; ok {
		return s, true
	}
	return styles.Get(DefaultHighlightStyle), false
}

// highlightCSS generates the class-based stylesheet that matches the
// markup produced by the goldmark highlighting extension.
func highlightCSS(style *chroma.Style) (string, error) {
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, style); err != nil {
		return "", err
	}
	return b.String(), nil
}
