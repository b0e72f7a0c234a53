package assets

// Built-in asset names. The markdown and print stylesheets frame every
// document; the document template wraps the rendered body.
const (
	StyleMarkdown    = "markdown"
	StylePrint       = "print"
	TemplateDocument = "document"
)

// New returns the loader used by the converter: embedded assets only when
// basePath is empty, otherwise basePath first with embedded fallback.
func New(basePath string) (AssetLoader, error) {
	if basePath == "" {
		return NewEmbeddedLoader(), nil
	}
	return NewAssetResolver(basePath)
}
