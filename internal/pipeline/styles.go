package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/fileutil"
)

// FragmentKind tells how a stylesheet fragment is emitted.
type FragmentKind int

const (
	// FragmentInline is CSS text emitted inside <style>.
	FragmentInline FragmentKind = iota
	// FragmentLink is a remote stylesheet emitted as <link>.
	FragmentLink
)

// StyleFragment is one entry of the aggregated stylesheet.
type StyleFragment struct {
	Kind FragmentKind
	// Source names the origin: a built-in asset, a file path or a URL.
	Source string
	// Content is CSS for inline fragments and the href for links.
	Content string
}

// HTML renders the fragment as a <style> or <link> element.
func (f StyleFragment) HTML() string {
	if f.Kind == FragmentLink {
		return `<link rel="stylesheet" href="` + html.EscapeString(f.Content) + `" type="text/css">`
	}
	return "<style>\n" + sanitizeCSS(f.Content) + "\n</style>"
}

// JoinStyles concatenates fragments in order, one element per line.
func JoinStyles(fragments []StyleFragment) string {
	parts := make([]string, len(fragments))
	for i, f := range fragments {
		parts[i] = f.HTML()
	}
	return strings.Join(parts, "\n")
}

// StyleAggregator collects stylesheets in cascade order: the built-in
// markdown stylesheet, user references, the highlight theme and the
// built-in print stylesheet.
type StyleAggregator struct {
	Loader assets.AssetLoader
	Logger *slog.Logger

	// BaseDir is tried for relative references that do not exist as given,
	// usually the input document's directory.
	BaseDir string

	// HighlightStyle names the chroma theme. Empty means DefaultHighlightStyle.
	HighlightStyle string
}

// Aggregate resolves refs and returns the ordered fragments. Unusable user
// references are logged and skipped; a missing built-in stylesheet or an
// unreadable highlight theme is an error.
func (a *StyleAggregator) Aggregate(ctx context.Context, refs []string) ([]StyleFragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := a.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fragments := make([]StyleFragment, 0, len(refs)+3)

	base, err := a.builtin(assets.StyleMarkdown)
	if err != nil {
		return nil, err
	}
	fragments = append(fragments, base)

	for _, ref := range refs {
		if f, ok := a.userFragment(logger, ref); ok {
			fragments = append(fragments, f)
		}
	}

	style, ok := ResolveHighlightStyle(a.HighlightStyle)
	if !ok {
		logger.Warn("unknown highlight style, using default", "style", a.HighlightStyle, "default", DefaultHighlightStyle)
	}
	css, err := highlightCSS(style)
	if err != nil {
		return nil, fmt.Errorf("generating highlight theme %q: %w", style.Name, err)
	}
	fragments = append(fragments, StyleFragment{Kind: FragmentInline, Source: "highlight:" + style.Name, Content: css})

	printCSS, err := a.builtin(assets.StylePrint)
	if err != nil {
		return nil, err
	}
	return append(fragments, printCSS), nil
}

func (a *StyleAggregator) builtin(name string) (StyleFragment, error) {
	if a.Loader == nil {
		return StyleFragment{}, fmt.Errorf("%w: no asset loader for %q", assets.ErrStyleNotFound, name)
	}
	css, err := a.Loader.LoadStyle(name)
	if err != nil {
		return StyleFragment{}, fmt.Errorf("loading built-in stylesheet: %w", err)
	}
	return StyleFragment{Kind: FragmentInline, Source: "builtin:" + name, Content: css}, nil
}

// userFragment classifies ref: http(s) URLs become links, file: URIs and
// existing local files are inlined, anything else is skipped.
func (a *StyleAggregator) userFragment(logger *slog.Logger, ref string) (StyleFragment, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return StyleFragment{}, false
	}
	if fileutil.IsURL(ref) {
		return StyleFragment{Kind: FragmentLink, Source: ref, Content: ref}, true
	}

	path, found := a.locate(ref)
	if !found {
		logger.Warn("stylesheet not found, skipping", "ref", ref)
		return StyleFragment{}, false
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-selected stylesheet
	if err != nil {
		logger.Warn("stylesheet unreadable, skipping", "path", path, "error", err)
		return StyleFragment{}, false
	}
	logger.Debug("inlined stylesheet", "path", path, "bytes", len(data))
	return StyleFragment{Kind: FragmentInline, Source: path, Content: string(data)}, true
}

func (a *StyleAggregator) locate(ref string) (string, bool) {
	if p, ok := fileutil.FileURLToPath(ref); ok {
		return p, fileutil.FileExists(p)
	}
	if fileutil.FileExists(ref) {
		return ref, true
	}
	if a.BaseDir != "" && !filepath.IsAbs(ref) {
		candidate := filepath.Join(a.BaseDir, ref)
		if fileutil.FileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// sanitizeCSS escapes "</" so that CSS cannot close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
