package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdexport/internal/assets"
)

func TestAssembler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tmpl      string
		wantErr   error
		parseFail bool
		want      string
	}{
		{
			name: "fills style and content",
			tmpl: "<head>{{.Style}}</head><body>{{.Content}}</body>",
			want: "<head><style>\np{}\n</style></head><body><h1>T</h1></body>",
		},
		{
			name: "content is not escaped",
			tmpl: "{{.Content}}",
			want: "<h1>T</h1>",
		},
		{
			name:    "unknown variable",
			tmpl:    "{{.Title}}{{.Content}}",
			wantErr: ErrTemplateRender,
		},
		{
			name:      "syntax error",
			tmpl:      "{{.Content",
			wantErr:   ErrTemplateInvalid,
			parseFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := NewAssembler(tt.tmpl)
			if tt.parseFail {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewAssembler() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewAssembler() error = %v", err)
			}

			got, err := a.Assemble("<style>\np{}\n</style>", "<h1>T</h1>")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Assemble() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Assemble() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssembler_EmbeddedTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := assets.NewEmbeddedLoader().LoadTemplate(assets.TemplateDocument)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	a, err := NewAssembler(tmpl)
	if err != nil {
		t.Fatalf("NewAssembler() error = %v", err)
	}
	got, err := a.Assemble("<style>body{}</style>", "<p>hello</p>")
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	head := strings.Index(got, "<style>body{}</style>")
	body := strings.Index(got, "<p>hello</p>")
	if head < 0 || body < 0 || head > body {
		t.Errorf("style must precede content:\n%s", got)
	}
	if !strings.Contains(strings.ToLower(got), `charset="utf-8"`) {
		t.Errorf("missing utf-8 charset:\n%s", got)
	}
}
