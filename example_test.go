package mdexport_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mdexport "github.com/alnah/go-mdexport"
)

// Example renders a Markdown file to a complete HTML document.
// HTML output does not need a browser.
func Example() {
	dir, err := os.MkdirTemp("", "mdexport-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "hello.md")
	if err := os.WriteFile(input, []byte("# Hello World\n\nThis is a test."), 0o600); err != nil {
		fmt.Println("error:", err)
		return
	}

	conv, err := mdexport.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	output := mdexport.DefaultOutputPath(input, mdexport.FormatHTML)
	res, err := conv.Convert(context.Background(), mdexport.NewRequest(input, output, mdexport.FormatHTML, nil))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	data, _ := os.ReadFile(res.OutputPath)
	if strings.Contains(string(data), `<h1 id="hello-world">`) {
		fmt.Println("HTML generated successfully")
	}
	// Output: HTML generated successfully
}

// ExampleConverter_Render assembles the document without writing it.
func ExampleConverter_Render() {
	dir, err := os.MkdirTemp("", "mdexport-example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "tasks.md")
	_ = os.WriteFile(input, []byte("- [x] write\n- [ ] ship :rocket:\n"), 0o600)

	conv, err := mdexport.NewConverter(mdexport.WithHighlightStyle("dracula"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	req := mdexport.NewRequest(input, filepath.Join(dir, "tasks.pdf"), mdexport.FormatPDF, nil)
	req.Emoji = true
	doc, err := conv.Render(context.Background(), req)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Count(doc, `disabled=""`), strings.Contains(doc, `class="emoji"`))
	// Output: 2 true
}

// ExampleParseFormat shows the error for an unsupported format.
func ExampleParseFormat() {
	_, err := mdexport.ParseFormat("docx")
	fmt.Println(err)
	// Output: unsupported output format: "docx" (supported: html, pdf, png, jpeg)
}
