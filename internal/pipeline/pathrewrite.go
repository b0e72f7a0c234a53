package pipeline

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteImageSources applies normalize to the src attribute of every <img>
// tag in a raw HTML fragment.
//
// The fragment is tokenized rather than parsed into a tree: Markdown HTML
// blocks are often unbalanced (an opening <div> in one block, the closing tag
// in another), and every token other than a rewritten <img> is copied byte
// for byte.
func RewriteImageSources(fragment string, normalize ImageNormalizer) string {
	if normalize == nil || !strings.Contains(strings.ToLower(fragment), "<img") {
		return fragment
	}

	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	b.Grow(len(fragment))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			b.Write(z.Raw())
			if z.Err() != io.EOF {
				return fragment
			}
			return b.String()

		case html.StartTagToken, html.SelfClosingTagToken:
			// Token() lowercases the tag name inside the raw buffer.
			raw := string(z.Raw())
			tok := z.Token()
			if tok.DataAtom != atom.Img || !rewriteSrc(&tok, normalize) {
				b.WriteString(raw)
				continue
			}
			b.WriteString(tok.String())

		default:
			b.Write(z.Raw())
		}
	}
}

// rewriteSrc reports whether any src attribute changed.
func rewriteSrc(tok *html.Token, normalize ImageNormalizer) bool {
	changed := false
	for i, attr := range tok.Attr {
		if attr.Namespace != "" || attr.Key != "src" {
			continue
		}
		if v := normalize(attr.Val); v != attr.Val {
			tok.Attr[i].Val = v
			changed = true
		}
	}
	return changed
}
