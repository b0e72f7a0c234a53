package assets

// Notes:
// - ErrAssetRead (permission denied on an existing file) is not exercised:
//   the tests may run as root, where file modes do not deny reads.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeAsset creates {base}/{dir}/{file} with content.
func writeAsset(t *testing.T, base, dir, file, content string) {
	t.Helper()
	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", full, err)
	}
	if err := os.WriteFile(filepath.Join(full, file), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", file, err)
	}
}

// ---------------------------------------------------------------------------
// TestNewFilesystemLoader - Base path validation
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid directory", path: tmpDir},
		{name: "empty path", path: "", wantErr: true},
		{name: "nonexistent", path: filepath.Join(tmpDir, "missing"), wantErr: true},
		{name: "regular file", path: filePath, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFilesystemLoader(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBasePath) {
					t.Errorf("NewFilesystemLoader(%q) error = %v, want ErrInvalidBasePath", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFilesystemLoader(%q) error = %v", tt.path, err)
			}
			if !filepath.IsAbs(loader.BasePath()) {
				t.Errorf("BasePath() = %q, want absolute", loader.BasePath())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader_Load - Styles and templates from disk
// ---------------------------------------------------------------------------

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeAsset(t, base, "styles", "markdown.css", "body { color: navy; }")
	writeAsset(t, base, "templates", "document.html", "<html>{{.Style}}{{.Content}}</html>")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	t.Run("style", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadStyle(StyleMarkdown)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "body { color: navy; }" {
			t.Errorf("LoadStyle() = %q", got)
		}
	})

	t.Run("template", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadTemplate(TemplateDocument)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(got, "{{.Content}}") {
			t.Errorf("LoadTemplate() = %q", got)
		}
	})

	t.Run("missing style", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle(StylePrint)
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("letter")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadStyle("../markdown")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	outside := t.TempDir()
	writeAsset(t, outside, ".", "secret.css", "leak")

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(base, "styles", "evil.css")); err != nil {
		t.Fatalf("Symlink() error = %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}

	_, err = loader.LoadStyle("evil")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() error = %v, want ErrPathTraversal", err)
	}
}
