package mdexport

import (
	"log/slog"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings applied by options.
type converterConfig struct {
	logger         *slog.Logger
	timeout        time.Duration
	assetPath      string
	highlightStyle string
	installBrowser bool
}

// defaultTimeout bounds the browser page load and capture.
const defaultTimeout = 30 * time.Second

// WithLogger sets the logger for warnings and debug output. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithTimeout sets the rasterizer timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdexport: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath overrides built-in stylesheets and the document template
// with files from dir. Missing files fall back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithHighlightStyle selects the chroma style for code blocks.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithRasterizer replaces the headless Chrome rasterizer. The Converter
// takes ownership and closes it in Close.
func WithRasterizer(r Rasterizer) Option {
	return func(c *Converter) {
		c.rasterizer = r
	}
}

// WithBrowserInstall controls whether a missing browser may be downloaded.
// Enabled by default.
func WithBrowserInstall(allow bool) Option {
	return func(c *Converter) {
		c.cfg.installBrowser = allow
	}
}
