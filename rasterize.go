package mdexport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/process"
)

// Rasterizer turns a complete HTML document into PDF, PNG or JPEG bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string, format Format) ([]byte, error)
	Close() error
}

// pageRenderer renders a local HTML file, enabling tests without a browser.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, format Format) ([]byte, error)
	Close() error
}

// A4 portrait, zero margins.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0
)

// Viewport for screenshots: A4 at 96 CSS px per inch.
const (
	viewportWidth  = 794
	viewportHeight = 1123
	jpegQuality    = 90
)

// rodRasterizer writes the document to a temp file and renders it with
// headless Chrome.
type rodRasterizer struct {
	renderer pageRenderer
}

func newRodRasterizer(timeout time.Duration, install bool, logger *slog.Logger) *rodRasterizer {
	return &rodRasterizer{renderer: newRodRenderer(timeout, install, logger)}
}

// Rasterize renders html as format.
func (r *rodRasterizer) Rasterize(ctx context.Context, html string, format Format) ([]byte, error) {
	if !format.Rasterized() {
		return nil, fmt.Errorf("%w: %q cannot be rasterized", ErrUnsupportedFormat, format)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	defer cleanup()

	return r.renderer.RenderFromFile(ctx, tmpPath, format)
}

// Close releases browser resources.
func (r *rodRasterizer) Close() error {
	if r.renderer != nil {
		return r.renderer.Close()
	}
	return nil
}

// rodRenderer implements pageRenderer using go-rod. The browser is launched
// lazily on first use and reused until Close.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	install  bool
	logger   *slog.Logger
}

func newRodRenderer(timeout time.Duration, install bool, logger *slog.Logger) *rodRenderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &rodRenderer{timeout: timeout, install: install, logger: logger}
}

// ensureBrowser resolves a binary and connects to it.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	bin, err := ResolveBrowser(BrowserOptions{AllowInstall: r.install, Logger: r.logger})
	if err != nil {
		return err
	}
	r.logger.Debug("launching browser", "bin", bin)

	l := launcher.New().Bin(bin).Headless(true)
	if noSandbox() {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	r.launcher = l
	return nil
}

// Close closes the browser and kills its process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and captures it.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, format Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// The render timeout is the rasterizer's own; a nearer context deadline
	// still wins.
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	p := page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}
	if err := p.Navigate(fileutil.PathToFileURL(filePath)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch format {
	case FormatPDF:
		return printPDF(p)
	case FormatPNG, FormatJPEG:
		data, err := p.Screenshot(true, screenshotOptions(format))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRasterize, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q cannot be rasterized", ErrUnsupportedFormat, format)
	}
}

func printPDF(p *rod.Page) ([]byte, error) {
	reader, err := p.PDF(pdfOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRasterize, err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRasterize, err)
	}
	return data, nil
}

// pdfOptions describes an A4 portrait page with zero margins.
func pdfOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

func screenshotOptions(format Format) *proto.PageCaptureScreenshot {
	if format == FormatJPEG {
		return &proto.PageCaptureScreenshot{
			Format:  proto.PageCaptureScreenshotFormatJpeg,
			Quality: intPtr(jpegQuality),
		}
	}
	return &proto.PageCaptureScreenshot{Format: proto.PageCaptureScreenshotFormatPng}
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}
