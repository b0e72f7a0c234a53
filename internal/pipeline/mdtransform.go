package pipeline

import (
	"regexp"
	"strings"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

const utf8BOM = "\uFEFF"

// PreprocessMarkdown strips a leading UTF-8 byte order mark and converts
// line endings to \n before parsing.
func PreprocessMarkdown(content string) string {
	content = strings.TrimPrefix(content, utf8BOM)
	return crlfOrCR.ReplaceAllString(content, "\n")
}
