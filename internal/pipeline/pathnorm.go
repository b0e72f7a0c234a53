package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// ImageNormalizer maps an image reference found in Markdown or raw HTML to
// the value written into the rendered src attribute.
type ImageNormalizer func(src string) string

// uriScheme matches an RFC 3986 scheme followed by ':'.
var uriScheme = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.\-]*):`)

// windowsDrive matches "C:" style prefixes, which are paths, not schemes.
var windowsDrive = regexp.MustCompile(`^[A-Za-z]:(/|$)`)

// NewImageNormalizer returns NormalizeImagePath bound to docPath for
// rasterized output, or CleanImagePath for html output.
func NewImageNormalizer(docPath string, rasterized bool) ImageNormalizer {
	if !rasterized {
		return CleanImagePath
	}
	baseDir := documentDir(docPath)
	return func(src string) string {
		return normalizeAgainst(src, baseDir)
	}
}

// CleanImagePath percent-decodes src and strips quote characters. It never
// adds a scheme: html output is viewed relative to its own location. A '%'
// left after decoding is written as %25 so the browser loads the same name.
func CleanImagePath(src string) string {
	return escapePercent(stripQuotes(percentDecode(src)))
}

// NormalizeImagePath turns src into a URI a headless browser can load from a
// temporary file:
//
//   - file:/// references are returned as is, file:// becomes file:///
//   - relative and absolute paths are resolved against the directory of
//     docPath and prefixed with the matching file: form
//   - any other scheme (http, https, data, ...) and protocol-relative
//     "//host/..." references return src unchanged
//
// Literal '%' becomes %25 and '#' becomes %23 so that neither is read as an
// escape or a fragment. UNC paths ("\\host\share") become file:////host/share.
// The result is stable: normalizing it again yields the same string.
func NormalizeImagePath(src, docPath string) string {
	return normalizeAgainst(src, documentDir(docPath))
}

func normalizeAgainst(src, baseDir string) string {
	if src == "" {
		return ""
	}

	decoded := stripQuotes(percentDecode(src))
	if strings.HasPrefix(decoded, "//") && !strings.HasPrefix(decoded, "///") {
		return src
	}
	ref := toSlash(decoded)

	scheme := ""
	if m := uriScheme.FindStringSubmatch(ref); m != nil && !windowsDrive.MatchString(ref) {
		scheme = strings.ToLower(m[1])
	}

	switch scheme {
	case "file":
		ref = escapeReserved(ref)
		lower := strings.ToLower(ref)
		if strings.HasPrefix(lower, "file:///") {
			return ref
		}
		if strings.HasPrefix(lower, "file://") {
			return "file:///" + ref[len("file://"):]
		}
		return ref
	case "":
		resolved := escapeReserved(toSlash(resolvePath(ref, baseDir)))
		if strings.HasPrefix(resolved, "/") {
			return "file://" + resolved
		}
		return "file:///" + resolved
	default:
		return src
	}
}

// resolvePath resolves a slash-separated reference against baseDir.
// UNC ("//host/share") and drive-letter paths are already absolute.
func resolvePath(ref, baseDir string) string {
	if strings.HasPrefix(ref, "/") || windowsDrive.MatchString(ref) {
		return cleanSlash(ref)
	}
	return cleanSlash(toSlash(baseDir) + "/" + ref)
}

// cleanSlash is path.Clean that keeps a leading "//".
func cleanSlash(p string) string {
	if strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "///") {
		return "/" + path.Clean(p)
	}
	return path.Clean(p)
}

func documentDir(docPath string) string {
	dir := filepath.Dir(docPath)
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// percentDecode keeps the input when it holds malformed escapes.
func percentDecode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func stripQuotes(s string) string {
	return strings.NewReplacer(`"`, "", `'`, "").Replace(s)
}

func toSlash(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}

// reservedEscaper runs in one pass, so "%23" from '#' is never re-escaped.
var reservedEscaper = strings.NewReplacer("%", "%25", "#", "%23")

func escapeReserved(s string) string {
	return reservedEscaper.Replace(s)
}

func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%25")
}
