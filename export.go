package mdexport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// outputPerm is used for every written file.
const outputPerm = 0o644

// Exporter writes an assembled document in the requested format.
type Exporter struct {
	Rasterizer Rasterizer
	Logger     *slog.Logger
}

// Export writes html to outputPath as format. Rasterized formats go through
// the Rasterizer; with debug the pre-raster HTML is also written to
// DebugPath(outputPath), before rasterization so it survives a browser
// failure. Writes are atomic: a failed export leaves no partial output.
func (e *Exporter) Export(ctx context.Context, html, outputPath string, format Format, debug bool) (*Result, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case format == FormatHTML:
		if err := writeOutput(outputPath, []byte(html)); err != nil {
			return nil, err
		}
		logger.Debug("wrote html", "path", outputPath)
		return &Result{OutputPath: outputPath, Bytes: len(html)}, nil

	case format.Rasterized():
		res := &Result{OutputPath: outputPath}
		if debug {
			res.DebugPath = DebugPath(outputPath)
			if err := writeOutput(res.DebugPath, []byte(html)); err != nil {
				return nil, err
			}
			logger.Debug("wrote debug html", "path", res.DebugPath)
		}
		if e.Rasterizer == nil {
			return nil, fmt.Errorf("%w: no rasterizer configured", ErrRasterize)
		}

		data, err := e.Rasterizer.Rasterize(ctx, html, format)
		if err != nil {
			return nil, fmt.Errorf("rasterizing to %s: %w", format, err)
		}
		if err := writeOutput(outputPath, data); err != nil {
			return nil, err
		}
		res.Bytes = len(data)
		logger.Debug("wrote output", "path", outputPath, "format", format, "bytes", len(data))
		return res, nil

	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, format, strings.Join(FormatNames(), ", "))
	}
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, outputPerm); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}
