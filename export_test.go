package mdexport

// Notes:
// - fakeRasterizer stands in for headless Chrome; browser tests live in
//   rasterize_integration_test.go behind the integration tag.
// - Atomicity is checked by asserting no output file exists after a failure.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// Fake Rasterizer
// ---------------------------------------------------------------------------

type fakeRasterizer struct {
	mu      sync.Mutex
	out     []byte
	err     error
	calls   int
	formats []Format
	html    string
	closed  bool
}

func (f *fakeRasterizer) Rasterize(_ context.Context, html string, format Format) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.formats = append(f.formats, format)
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func (f *fakeRasterizer) Close() error {
	f.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// TestExporter_Export - Format dispatch and file writes
// ---------------------------------------------------------------------------

func TestExporter_Export_HTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "doc.html")
	raster := &fakeRasterizer{}
	e := &Exporter{Rasterizer: raster}

	res, err := e.Export(context.Background(), "<html>x</html>", out, FormatHTML, true)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<html>x</html>" {
		t.Errorf("output = %q", got)
	}
	if raster.calls != 0 {
		t.Errorf("rasterizer called %d times for html", raster.calls)
	}
	if res.DebugPath != "" {
		t.Errorf("html export wrote debug file %q", res.DebugPath)
	}
}

func TestExporter_Export_Rasterized(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatPDF, FormatPNG, FormatJPEG} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			out := filepath.Join(dir, "doc"+format.Extension())
			raster := &fakeRasterizer{out: []byte("BYTES-" + string(format))}
			e := &Exporter{Rasterizer: raster}

			res, err := e.Export(context.Background(), "<html>doc</html>", out, format, false)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			got, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "BYTES-"+string(format) {
				t.Errorf("output = %q", got)
			}
			if diff := cmp.Diff([]Format{format}, raster.formats); diff != "" {
				t.Errorf("rasterizer formats (-want +got):\n%s", diff)
			}
			if raster.html != "<html>doc</html>" {
				t.Errorf("rasterizer html = %q", raster.html)
			}
			if res.Bytes != len(got) || res.DebugPath != "" {
				t.Errorf("result = %+v", res)
			}
			if fileExists(DebugPath(out)) {
				t.Error("debug file written without debug flag")
			}
		})
	}
}

func TestExporter_Export_Debug(t *testing.T) {
	t.Parallel()

	t.Run("writes pre-raster html", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := filepath.Join(dir, "report.pdf")
		e := &Exporter{Rasterizer: &fakeRasterizer{out: []byte("%PDF")}}

		res, err := e.Export(context.Background(), "<html>pre</html>", out, FormatPDF, true)
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		wantDebug := filepath.Join(dir, "report_debug.html")
		if res.DebugPath != wantDebug {
			t.Errorf("DebugPath = %q, want %q", res.DebugPath, wantDebug)
		}
		got, err := os.ReadFile(wantDebug)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "<html>pre</html>" {
			t.Errorf("debug file = %q", got)
		}
		if diff := cmp.Diff([]string{"report.pdf", "report_debug.html"}, dirEntries(t, dir)); diff != "" {
			t.Errorf("files written mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("debug file survives rasterizer failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		out := filepath.Join(dir, "report.png")
		e := &Exporter{Rasterizer: &fakeRasterizer{err: ErrPageLoad}}

		_, err := e.Export(context.Background(), "<html>pre</html>", out, FormatPNG, true)
		if !errors.Is(err, ErrPageLoad) {
			t.Fatalf("Export() error = %v, want ErrPageLoad", err)
		}
		if !fileExists(filepath.Join(dir, "report_debug.html")) {
			t.Error("debug file missing after failure")
		}
		if fileExists(out) {
			t.Error("partial output written after failure")
		}
	})
}

func TestExporter_Export_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		e       *Exporter
		format  Format
		out     func(dir string) string
		wantErr error
	}{
		{
			name:    "unsupported format",
			e:       &Exporter{Rasterizer: &fakeRasterizer{}},
			format:  "gif",
			out:     func(dir string) string { return filepath.Join(dir, "doc.gif") },
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "no rasterizer",
			e:       &Exporter{},
			format:  FormatPDF,
			out:     func(dir string) string { return filepath.Join(dir, "doc.pdf") },
			wantErr: ErrRasterize,
		},
		{
			name:    "missing output directory",
			e:       &Exporter{},
			format:  FormatHTML,
			out:     func(dir string) string { return filepath.Join(dir, "nope", "doc.html") },
			wantErr: ErrWriteOutput,
		},
		{
			name:    "rasterizer error",
			e:       &Exporter{Rasterizer: &fakeRasterizer{err: ErrBrowserConnect}},
			format:  FormatJPEG,
			out:     func(dir string) string { return filepath.Join(dir, "doc.jpeg") },
			wantErr: ErrBrowserConnect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			out := tt.out(dir)
			_, err := tt.e.Export(context.Background(), "<html></html>", out, tt.format, false)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Export() error = %v, want %v", err, tt.wantErr)
			}
			if fileExists(out) {
				t.Errorf("file written despite error: %s", out)
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("directory not empty after failure: %v", entries)
			}
		})
	}
}

func TestExporter_Export_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "doc.html")
	_, err := (&Exporter{}).Export(ctx, "<html></html>", out, FormatHTML, false)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Export() error = %v, want context.Canceled", err)
	}
}

// dirEntries lists file names in dir, sorted.
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
