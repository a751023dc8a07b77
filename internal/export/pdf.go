package export

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const pdfTimeout = 30 * time.Second

var chromeBins = []string{"chromium-browser", "chromium", "google-chrome", "google-chrome-stable"}

func findChrome() (string, error) {
	for _, name := range chromeBins {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: chromium not installed", ErrPDFDependencyMissing)
}

// exportPDF renders HTML to PDF using headless Chrome.
func exportPDF(ctx context.Context, html string, base string) (*Result, error) {
	bin, err := findChrome()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()

	controlURL, err := launcher.New().
		Bin(bin).
		Headless(true).
		NoSandbox(true).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	defer browser.Close()

	dataURL := "data:text/html;charset=utf-8," + percentEncodeForDataURL(html)
	page, err := browser.Page(proto.TargetCreateTarget{URL: dataURL})
	if err != nil {
		return nil, fmt.Errorf("open report page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for report page: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PaperWidth:        f64(8.27), // A4
		PaperHeight:       f64(11.69),
		MarginTop:         f64(0.75),
		MarginBottom:      f64(0.75),
		MarginLeft:        f64(0.75),
		MarginRight:       f64(0.75),
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("chrome pdf generation failed: %w", err)
	}
	pdfData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}

	return &Result{
		Data:     pdfData,
		Filename: base + ".pdf",
		MimeType: "application/pdf",
	}, nil
}

func f64(v float64) *float64 { return &v }

// percentEncodeForDataURL encodes HTML for embedding in a data URL. Unlike
// url.QueryEscape it encodes spaces as %20, which data URLs require.
func percentEncodeForDataURL(s string) string {
	var result strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_', r == '.', r == '~':
			result.WriteRune(r)
		case r == ' ':
			result.WriteString("%20")
		default:
			for _, b := range []byte(string(r)) {
				fmt.Fprintf(&result, "%%%02X", b)
			}
		}
	}
	return result.String()
}
