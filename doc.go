// Package mdexport converts a Markdown document to HTML, PDF, PNG or JPEG.
//
// # Quick Start
//
//	conv, err := mdexport.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	req := mdexport.NewRequest("README.md", "README.pdf", mdexport.FormatPDF, nil)
//	res, err := conv.Convert(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.OutputPath)
//
// # Conversion Pipeline
//
//  1. Markdown to HTML via goldmark (GFM, footnotes, emoji, chroma highlighting)
//  2. Image references normalized: absolute file: URIs for rasterized formats,
//     cleaned relative paths for HTML
//  3. Stylesheets aggregated: built-in markdown, user references, highlight
//     theme, built-in print
//  4. Document assembled from the HTML template
//  5. Export: HTML written directly, other formats rendered by headless Chrome
//
// Use Render to stop after step 4 and get the document as a string.
//
// # Configuration
//
//	conv, err := mdexport.NewConverter(
//	    mdexport.WithTimeout(45 * time.Second),
//	    mdexport.WithHighlightStyle("monokai"),
//	    mdexport.WithAssetPath("/path/to/assets"),
//	    mdexport.WithLogger(slog.Default()),
//	)
//
// Asset directory structure (each file optional, embedded fallback):
//
//	assets/
//	├── styles/
//	│   ├── markdown.css
//	│   └── print.css
//	└── templates/
//	    └── document.html
//
// The template receives {{.Style}} and {{.Content}}; any other key fails.
//
// # Browser Requirements
//
// Rasterized formats need Chrome or Chromium. ResolveBrowser checks
// ROD_BROWSER_BIN, then system locations, then downloads a managed Chromium
// unless WithBrowserInstall(false) is set. Set ROD_NO_SANDBOX=1 in containers.
package mdexport
