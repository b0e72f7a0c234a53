package mdexport

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// Environment variables read during browser resolution.
const (
	EnvBrowserBin = "ROD_BROWSER_BIN"
	EnvNoSandbox  = "ROD_NO_SANDBOX"
)

// BrowserOptions controls ResolveBrowser.
type BrowserOptions struct {
	// AllowInstall permits downloading a managed Chromium when none is found.
	AllowInstall bool
	Logger       *slog.Logger
}

// Swapped in tests.
var (
	lookPath        = launcher.LookPath
	downloadBrowser = func() (string, error) { return launcher.NewBrowser().Get() }
)

// ResolveBrowser returns the path of a Chrome or Chromium binary. It checks
// ROD_BROWSER_BIN, then the system install locations, then downloads one if
// allowed. Nothing is cached: every call resolves again.
func ResolveBrowser(opts BrowserOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if bin := os.Getenv(EnvBrowserBin); bin != "" {
		if !fileutil.FileExists(bin) {
			return "", fmt.Errorf("%w: %s=%q does not exist", ErrBrowserNotFound, EnvBrowserBin, bin)
		}
		return bin, nil
	}

	if bin, ok := lookPath(); ok {
		return bin, nil
	}

	if !opts.AllowInstall {
		return "", fmt.Errorf("%w: no system browser and install disabled", ErrBrowserNotFound)
	}

	logger.Info("no browser found, downloading Chromium")
	bin, err := downloadBrowser()
	if err != nil {
		return "", fmt.Errorf("%w: download failed: %v", ErrBrowserNotFound, err)
	}
	return bin, nil
}

// noSandbox reports whether Chrome must run without its sandbox, as
// required in most containers and CI runners.
func noSandbox() bool {
	return os.Getenv(EnvNoSandbox) == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv(EnvBrowserBin) != ""
}
