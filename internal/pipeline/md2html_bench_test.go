//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// BenchmarkGoldmarkToHTML measures rendering with and without the image hooks.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	ctx := context.Background()
	content := generateMixedMarkdown(50)

	variants := []struct {
		name string
		opts MarkdownOptions
	}{
		{"html", MarkdownOptions{ImageNormalizer: NewImageNormalizer("/docs/readme.md", false)}},
		{"rasterized", MarkdownOptions{ImageNormalizer: NewImageNormalizer("/docs/readme.md", true), RewriteRawHTML: true}},
		{"breaks_emoji", MarkdownOptions{HardWraps: true, Emoji: true}},
	}

	for _, v := range variants {
		converter := NewGoldmarkConverter(v.opts)
		b.Run(v.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRewriteImageSources measures tokenizer rewriting of raw HTML.
func BenchmarkRewriteImageSources(b *testing.B) {
	normalize := NewImageNormalizer("/docs/readme.md", true)
	fragment := strings.Repeat(`<div class="row"><img src="img/a.png" alt="a"><p>text</p></div>`+"\n", 100)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = RewriteImageSources(fragment, normalize)
	}
}

func generateMixedMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Document Title\n\n")
	sb.WriteString("Introduction with **bold**, *italic* and :smile:.\n\n")

	for i := 0; i < sections; i++ {
		sb.WriteString(fmt.Sprintf("## Section %d\n\n", i+1))
		sb.WriteString("A paragraph with [a link](https://example.com) and `code`.\n")
		sb.WriteString(fmt.Sprintf("![figure %d](img/figure-%d.png)\n\n", i, i))
		sb.WriteString("- [x] done\n- [ ] todo\n\n")

		if i%3 == 0 {
			sb.WriteString("```go\nfunc main() {\n    fmt.Println(\"Hello\")\n}\n```\n\n")
		}
		if i%4 == 0 {
			sb.WriteString(fmt.Sprintf("<p align=\"center\"><img src=\"img/raw-%d.png\"></p>\n\n", i))
		}
		if i%5 == 0 {
			sb.WriteString("| A | B |\n|---|---|\n| 1 | 2 |\n\n")
		}
	}
	return sb.String()
}
