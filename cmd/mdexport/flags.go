package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every command.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags select Markdown features.
type renderFlags struct {
	breaks         bool
	emoji          bool
	styles         []string
	highlightStyle string
}

// rendererFlags configure the browser.
type rendererFlags struct {
	timeout   string
	assetPath string
	noInstall bool
}

// exportFlags holds all flags for an export run.
type exportFlags struct {
	common   commonFlags
	input    string
	output   string
	format   string
	debug    bool
	render   renderFlags
	renderer rendererFlags
	help     bool
	// changed reports whether the named flag was given on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addRenderFlags adds Markdown and styling flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVarP(&f.breaks, "breaks", "b", false, "render single newlines as <br>")
	fs.BoolVarP(&f.emoji, "emoji", "e", false, "render :shortcode: emoji as images")
	fs.StringSliceVarP(&f.styles, "styles", "s", nil, "stylesheet path or URL (repeatable, comma separated)")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlighting style (default github)")
}

// addRendererFlags adds browser flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.timeout, "timeout", "", "browser render timeout (e.g. 45s)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding built-in styles and template")
	fs.BoolVar(&f.noInstall, "no-install", false, "never download a browser")
}

// parseExportFlags parses export flags and returns positional args.
func parseExportFlags(args []string, stderr io.Writer) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("mdexport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &exportFlags{}

	fs.StringVarP(&f.input, "input", "i", "", "input Markdown file")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: input with format extension)")
	fs.StringVarP(&f.format, "type", "t", "", "output type: html, pdf, png, jpeg (default pdf)")
	fs.BoolVarP(&f.debug, "debug", "d", false, "write <output>_debug.html before rasterizing")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addRendererFlags(fs, &f.renderer)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.changed = fs.Changed
	return f, fs.Args(), nil
}
