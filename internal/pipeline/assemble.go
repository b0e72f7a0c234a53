package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Sentinel errors for document assembly.
var (
	ErrTemplateInvalid = errors.New("document template invalid")
	ErrTemplateRender  = errors.New("document template rendering failed")
)

// Assembler fills the document template. The template sees exactly two
// values, {{.Style}} and {{.Content}}; any other key fails execution.
type Assembler struct {
	tmpl *template.Template
}

// NewAssembler parses tmpl. text/template is used, not html/template: both
// values are trusted HTML produced by this package.
func NewAssembler(tmpl string) (*Assembler, error) {
	t, err := template.New("document").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	return &Assembler{tmpl: t}, nil
}

// Assemble returns the complete HTML document.
func (a *Assembler) Assemble(style, content string) (string, error) {
	data := map[string]string{
		"Style":   style,
		"Content": content,
	}
	var b strings.Builder
	if err := a.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return b.String(), nil
}
