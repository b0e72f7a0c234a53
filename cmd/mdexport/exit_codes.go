package main

import (
	"errors"
	"os"

	mdexport "github.com/alnah/go-mdexport"
	"github.com/alnah/go-mdexport/internal/config"
)

// Exit codes for the mdexport CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, format or assets
	ExitIO      = 3 // Input missing or unreadable, output not writable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdexport.ErrBrowserNotFound) ||
		errors.Is(err, mdexport.ErrBrowserConnect) ||
		errors.Is(err, mdexport.ErrPageCreate) ||
		errors.Is(err, mdexport.ErrPageLoad) ||
		errors.Is(err, mdexport.ErrRasterize) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, mdexport.ErrNoInput) ||
		errors.Is(err, mdexport.ErrNoOutput) ||
		errors.Is(err, mdexport.ErrUnsupportedFormat) ||
		errors.Is(err, mdexport.ErrStyleNotFound) ||
		errors.Is(err, mdexport.ErrTemplateNotFound) ||
		errors.Is(err, mdexport.ErrTemplateInvalid) ||
		errors.Is(err, mdexport.ErrTemplateRender) ||
		errors.Is(err, mdexport.ErrInvalidAssetPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, errUsage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, mdexport.ErrInputNotFound) ||
		errors.Is(err, mdexport.ErrReadInput) ||
		errors.Is(err, mdexport.ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
