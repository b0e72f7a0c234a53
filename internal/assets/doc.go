// Package assets provides the stylesheets and HTML template that frame an
// exported document.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed copies of markdown.css, print.css, document.html
//	    ├── FilesystemLoader  - the same layout read from a user directory
//	    └── AssetResolver     - FilesystemLoader first, EmbeddedLoader on not-found
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── markdown.css     # base typography, first in the cascade
//	│   └── print.css        # print rules, last in the cascade
//	└── templates/
//	    └── document.html    # text/template with {{.Style}} and {{.Content}}
//
// Asset names are plain identifiers. FilesystemLoader resolves symlinks and
// refuses paths that leave basePath.
package assets
