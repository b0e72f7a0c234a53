package pipeline

import (
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Priorities below goldmark's defaults (1000) so these run and render first.
const (
	hookTransformerPriority = 100
	hookRendererPriority    = 100
)

// imageHooks wires image normalization into goldmark: an AST transformer
// for Markdown images and, optionally, a node renderer for raw HTML.
type imageHooks struct {
	normalize      ImageNormalizer
	rewriteRawHTML bool
	logger         *slog.Logger
}

func (e *imageHooks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&imageTransformer{normalize: e.normalize, logger: e.logger}, hookTransformerPriority),
	))
	if e.rewriteRawHTML && e.normalize != nil {
		m.Renderer().AddOptions(renderer.WithNodeRenderers(
			util.Prioritized(&rawHTMLRenderer{normalize: e.normalize}, hookRendererPriority),
		))
	}
}

// imageTransformer rewrites ast.Image destinations and reports fenced code
// blocks whose language chroma does not know.
type imageTransformer struct {
	normalize ImageNormalizer
	logger    *slog.Logger
}

func (t *imageTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Image:
			if t.normalize != nil {
				node.Destination = []byte(t.normalize(string(node.Destination)))
			}
		case *ast.FencedCodeBlock:
			lang := strings.TrimSpace(string(node.Language(source)))
			if lang != "" && lexers.Get(lang) == nil {
				t.logger.Warn("unknown code block language, rendering as plain text", "language", lang)
			}
		}
		return ast.WalkContinue, nil
	})
}

// rawHTMLRenderer replaces goldmark's HTML block and inline raw HTML
// renderers. Output equals the unsafe default except for <img> src values.
type rawHTMLRenderer struct {
	normalize ImageNormalizer
}

func (r *rawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *rawHTMLRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.HTMLBlock)

	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	if n.HasClosure() {
		b.Write(n.ClosureLine.Value(source))
	}

	html.DefaultWriter.SecureWrite(w, []byte(RewriteImageSources(b.String(), r.normalize)))
	return ast.WalkContinue, nil
}

func (r *rawHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)

	var b strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		b.Write(segment.Value(source))
	}

	_, _ = w.WriteString(RewriteImageSources(b.String(), r.normalize))
	return ast.WalkSkipChildren, nil
}
