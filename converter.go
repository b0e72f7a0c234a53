package mdexport

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ Rasterizer             = (*rodRasterizer)(nil)
	_ pageRenderer           = (*rodRenderer)(nil)
)

// Converter runs the export pipeline: read, render Markdown, aggregate
// stylesheets, assemble the document and export it.
// Create with NewConverter, use Convert, and Close when done.
type Converter struct {
	cfg        converterConfig
	loader     assets.AssetLoader
	assembler  *pipeline.Assembler
	rasterizer Rasterizer
}

// NewConverter loads assets and parses the document template. The browser
// is not started until a rasterized format is exported.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			logger:         slog.New(slog.DiscardHandler),
			timeout:        defaultTimeout,
			installBrowser: true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	loader, err := assets.New(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.loader = loader
	if r, ok := loader.(*assets.AssetResolver); ok && r.HasCustomLoader() {
		c.cfg.logger.Debug("using custom assets", "path", c.cfg.assetPath)
	}

	tmpl, err := loader.LoadTemplate(assets.TemplateDocument)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	c.assembler, err = pipeline.NewAssembler(tmpl)
	if err != nil {
		return nil, err
	}

	if c.rasterizer == nil {
		c.rasterizer = newRodRasterizer(c.cfg.timeout, c.cfg.installBrowser, c.cfg.logger)
	}
	return c, nil
}

// Render returns the assembled HTML document for req without exporting it.
func (c *Converter) Render(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	logger := c.cfg.logger

	source, err := readInput(req.InputPath)
	if err != nil {
		return "", err
	}

	rasterized := req.Format.Rasterized()
	md := pipeline.NewGoldmarkConverter(pipeline.MarkdownOptions{
		HardWraps:       req.Breaks,
		Emoji:           req.Emoji,
		ImageNormalizer: pipeline.NewImageNormalizer(req.InputPath, rasterized),
		RewriteRawHTML:  rasterized,
		HighlightStyle:  c.cfg.highlightStyle,
		Logger:          logger,
	})
	body, err := md.ToHTML(ctx, pipeline.PreprocessMarkdown(source))
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}
	logger.Debug("rendered markdown", "input", req.InputPath, "bytes", len(body))

	agg := &pipeline.StyleAggregator{
		Loader:         c.loader,
		Logger:         logger,
		BaseDir:        inputDir(req.InputPath),
		HighlightStyle: c.cfg.highlightStyle,
	}
	fragments, err := agg.Aggregate(ctx, req.Styles)
	if err != nil {
		return "", fmt.Errorf("aggregating styles: %w", err)
	}
	logger.Debug("aggregated styles", "fragments", len(fragments))

	doc, err := c.assembler.Assemble(pipeline.JoinStyles(fragments), body)
	if err != nil {
		return "", err
	}
	return doc, nil
}

// Convert renders req and writes the output file.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, req Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	doc, err := c.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	exporter := &Exporter{Rasterizer: c.rasterizer, Logger: c.cfg.logger}
	return exporter.Export(ctx, doc, req.OutputPath, req.Format, req.Debug)
}

// Close releases the rasterizer (headless Chrome).
func (c *Converter) Close() error {
	if c.rasterizer != nil {
		return c.rasterizer.Close()
	}
	return nil
}

func readInput(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}

// inputDir is the absolute directory of the input document, used to
// resolve relative stylesheet references.
func inputDir(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Dir(path)
	}
	return filepath.Dir(abs)
}
