// Package hints produces actionable follow-ups for CLI error messages.
// Every hint renders as "\n  hint: <text>" so callers can append it directly.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdexport/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func inCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests rod environment variables after Chrome failed
// to start or accept a connection.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForBrowserNotFound explains how to provide Chrome when none was found.
// noInstall reports whether downloading was disabled for this run.
func ForBrowserNotFound(noInstall bool) string {
	hints := []string{"install Chrome or Chromium, or set ROD_BROWSER_BIN"}
	if noInstall {
		hints = append(hints, "drop --no-install to download a browser automatically")
	}
	hints = append(hints, "or export with --type html")
	return formatHints(hints)
}

// ForTimeout suggests a longer rasterizer timeout.
func ForTimeout() string {
	return format("for large documents or remote images, raise --timeout (e.g. --timeout 2m)")
}

// ForConfigNotFound names the flag and, when one was searched, a user config
// location to create.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdexport") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory is appended to write failures.
func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

// ForTemplateNotFound points at the asset directory that was searched.
func ForTemplateNotFound(assetPath string) string {
	if assetPath == "" {
		return ""
	}
	return format("add templates/document.html under " + assetPath + " or drop --asset-path")
}

// ForUnsupportedFormat lists accepted output types.
func ForUnsupportedFormat(formats []string) string {
	if len(formats) == 0 {
		return ""
	}
	return format("use --type " + strings.Join(formats, "|"))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
