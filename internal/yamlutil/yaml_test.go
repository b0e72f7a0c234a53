package yamlutil_test

// Notes:
// - Encode error branch: goccy/go-yaml only fails on unmarshalable values
//   (channels, funcs) that never reach this package.
// - TestInputSizeLimit mutates MaxInputSize and does not run in parallel.

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdexport/internal/yamlutil"
)

type exportSection struct {
	Type   string   `yaml:"type"`
	Breaks bool     `yaml:"breaks"`
	Styles []string `yaml:"styles"`
}

// ---------------------------------------------------------------------------
// TestDecode - Strict decoding
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    exportSection
		wantErr error
		wantMsg string
	}{
		{
			name: "all fields",
			data: "type: png\nbreaks: true\nstyles:\n  - a.css\n  - https://cdn.example.com/b.css\n",
			want: exportSection{Type: "png", Breaks: true, Styles: []string{"a.css", "https://cdn.example.com/b.css"}},
		},
		{
			name: "partial document keeps zero values",
			data: "type: html\n",
			want: exportSection{Type: "html"},
		},
		{
			name:    "unknown key rejected",
			data:    "type: pdf\ncolour: red\n",
			wantMsg: "yamlutil:",
		},
		{
			name:    "syntax error",
			data:    "styles: [unclosed",
			wantMsg: "yamlutil:",
		},
		{
			name:    "empty",
			data:    "",
			wantErr: yamlutil.ErrNilData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got exportSection
			err := yamlutil.Decode([]byte(tt.data), &got)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantMsg != "" {
				if err == nil || !strings.HasPrefix(err.Error(), tt.wantMsg) {
					t.Fatalf("Decode() error = %v, want prefix %q", err, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_NilDestination(t *testing.T) {
	t.Parallel()

	err := yamlutil.Decode([]byte("type: pdf"), nil)
	if !errors.Is(err, yamlutil.ErrNilDestination) {
		t.Errorf("Decode() error = %v, want %v", err, yamlutil.ErrNilDestination)
	}
}

// ---------------------------------------------------------------------------
// TestEncode - Block-style output
// ---------------------------------------------------------------------------

func TestEncode(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Encode(exportSection{Type: "jpeg", Styles: []string{"print.css"}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	s := string(out)
	for _, want := range []string{"type: jpeg", "breaks: false", "- print.css"} {
		if !strings.Contains(s, want) {
			t.Errorf("Encode() output missing %q:\n%s", want, s)
		}
	}

	var back exportSection
	if err := yamlutil.Decode(out, &back); err != nil {
		t.Fatalf("Decode(Encode()) error = %v", err)
	}
	if back.Type != "jpeg" {
		t.Errorf("Type = %q, want %q", back.Type, "jpeg")
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	data := []byte("type: pdf\n" + strings.Repeat("# padding\n", 10))

	var got exportSection
	err := yamlutil.Decode(data, &got)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("Decode() error = %v, want %v", err, yamlutil.ErrInputTooLarge)
	}
	if !strings.Contains(err.Error(), "max 50") {
		t.Errorf("error should mention limit, got: %s", err)
	}
}
