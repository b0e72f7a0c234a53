package mdexport

import (
	"errors"

	"github.com/alnah/go-mdexport/internal/assets"
	"github.com/alnah/go-mdexport/internal/pipeline"
)

// Sentinel errors for request validation and input handling.
var (
	ErrNoInput           = errors.New("no input file specified")
	ErrNoOutput          = errors.New("no output file specified")
	ErrInputNotFound     = errors.New("input file not found")
	ErrReadInput         = errors.New("failed to read input file")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Asset errors. Re-exported so callers need not import internal packages.
var (
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrTemplateInvalid  = pipeline.ErrTemplateInvalid
	ErrTemplateRender   = pipeline.ErrTemplateRender
	ErrHTMLConversion   = pipeline.ErrHTMLConversion
)

// Rasterizer errors.
var (
	ErrBrowserNotFound = errors.New("no Chrome or Chromium browser available")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrRasterize       = errors.New("rasterization failed")
)

// ErrWriteOutput reports a failure writing the output or debug file.
var ErrWriteOutput = errors.New("failed to write output file")
