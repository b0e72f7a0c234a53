package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates goldmark failed to render the document.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// MarkdownOptions configures one GoldmarkConverter.
type MarkdownOptions struct {
	// HardWraps renders single newlines as <br>.
	HardWraps bool

	// Emoji renders :shortcode: as Twemoji images.
	Emoji bool

	// ImageNormalizer rewrites Markdown image destinations. Nil leaves them
	// untouched.
	ImageNormalizer ImageNormalizer

	// RewriteRawHTML also passes <img> tags inside raw HTML through
	// ImageNormalizer. Set for rasterized output only.
	RewriteRawHTML bool

	// HighlightStyle names the chroma style. Empty means DefaultHighlightStyle.
	HighlightStyle string

	Logger *slog.Logger
}

// GoldmarkConverter renders Markdown to an HTML body fragment.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// twemojiTemplate pins the Twemoji release so rasterized output does not
// change when the CDN's latest tag moves. Arguments: alt text, code point,
// XHTML closing.
const twemojiTemplate = `<img class="emoji" draggable="false" alt="%[1]s" src="https://cdn.jsdelivr.net/gh/twitter/twemoji@v14.0.2/assets/72x72/%[2]s.png"%[3]s>`

// NewGoldmarkConverter builds a goldmark instance with GFM, footnotes,
// raw HTML passthrough and chroma highlighting, plus the optional features
// selected in opts.
func NewGoldmarkConverter(opts MarkdownOptions) *GoldmarkConverter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	style, _ := ResolveHighlightStyle(opts.HighlightStyle)

	exts := []goldmark.Extender{
		extension.GFM,      // tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1]
		highlighting.NewHighlighting(
			highlighting.WithCustomStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // theme CSS comes from the style aggregator
			),
		),
		&imageHooks{
			normalize:      opts.ImageNormalizer,
			rewriteRawHTML: opts.RewriteRawHTML,
			logger:         logger,
		},
	}
	if opts.Emoji {
		exts = append(exts, emoji.New(
			emoji.WithRenderingMethod(emoji.Twemoji),
			emoji.WithTwemojiTemplate(twemojiTemplate),
		))
	}

	htmlOpts := []renderer.Option{
		html.WithUnsafe(), // raw HTML passes through
		html.WithXHTML(),
	}
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(htmlOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML renders content to an HTML fragment. goldmark has no context
// support, so cancellation is observed with a goroutine and select.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)
