package mdexport

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Format is an output format.
type Format string

// Supported output formats.
const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatHTML, FormatPDF, FormatPNG, FormatJPEG}

// FormatNames returns Formats as strings.
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat parses s case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, s, strings.Join(FormatNames(), ", "))
}

// Rasterized reports whether the format goes through the browser.
func (f Format) Rasterized() bool {
	return f == FormatPDF || f == FormatPNG || f == FormatJPEG
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Request describes one export. It is built once and passed by value; the
// pipeline never modifies it.
type Request struct {
	InputPath  string
	OutputPath string
	Format     Format
	Breaks     bool // single newlines become <br>
	Emoji      bool
	Debug      bool // also write the pre-raster HTML beside the output
	Styles     []string
}

// NewRequest returns a Request owning a copy of styles.
func NewRequest(input, output string, format Format, styles []string) Request {
	return Request{
		InputPath:  input,
		OutputPath: output,
		Format:     format,
		Styles:     slices.Clone(styles),
	}
}

// Validate checks required fields. It does not touch the filesystem.
func (r Request) Validate() error {
	if strings.TrimSpace(r.InputPath) == "" {
		return ErrNoInput
	}
	if strings.TrimSpace(r.OutputPath) == "" {
		return ErrNoOutput
	}
	if !slices.Contains(Formats, r.Format) {
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, r.Format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// DefaultOutputPath replaces the extension of input with the one for f.
func DefaultOutputPath(input string, f Format) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + f.Extension()
}

// DebugPath returns <output dir>/<output stem>_debug.html.
func DebugPath(output string) string {
	dir, base := filepath.Split(output)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"_debug.html")
}

// Result lists the files written by an export.
type Result struct {
	OutputPath string
	DebugPath  string // empty unless a debug file was written
	Bytes      int
}
