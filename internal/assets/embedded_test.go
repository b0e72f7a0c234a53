package assets

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in assets
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name     string
		contains string
	}{
		{name: StyleMarkdown, contains: "body {"},
		{name: StylePrint, contains: "@media print"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.name, err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("LoadStyle(%q) missing %q", tt.name, tt.contains)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	got, err := NewEmbeddedLoader().LoadTemplate(TemplateDocument)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	for _, want := range []string{"{{.Style}}", "{{.Content}}", "charset=utf-8"} {
		if !strings.Contains(got, want) {
			t.Errorf("document template missing %q", want)
		}
	}
}

func TestEmbeddedLoader_Errors(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name    string
		load    func() (string, error)
		wantErr error
	}{
		{
			name:    "unknown style",
			load:    func() (string, error) { return loader.LoadStyle("solarized") },
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "unknown template",
			load:    func() (string, error) { return loader.LoadTemplate("letter") },
			wantErr: ErrTemplateNotFound,
		},
		{
			name:    "style with extension",
			load:    func() (string, error) { return loader.LoadStyle("markdown.css") },
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "template traversal",
			load:    func() (string, error) { return loader.LoadTemplate("../document") },
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateAssetName - Name validation
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "markdown"},
		{name: "hyphen", input: "dark-print"},
		{name: "underscore", input: "my_style"},
		{name: "empty", input: "", wantErr: true},
		{name: "dot", input: "a.b", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "backslash", input: "a\\b", wantErr: true},
		{name: "parent", input: "..", wantErr: true},
		{name: "null byte", input: "a\x00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ValidateAssetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("error = %v, want ErrInvalidAssetName", err)
			}
		})
	}
}
