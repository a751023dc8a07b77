// Package export renders an analysis report as Markdown, HTML, DOCX or PDF.
package export

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

// Format is the export output format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatDOCX     Format = "docx"
	FormatPDF      Format = "pdf"
)

// ParseFormat maps a user-supplied format string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatHTML, FormatDOCX, FormatPDF:
		return Format(s), nil
	case "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Request contains parameters for one export operation.
type Request struct {
	Data   canvas.CanvasData
	Result canvas.AnalysisResult
	Format Format
	// IncludeInput prepends the canvas answers to the report body.
	IncludeInput bool
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrUnsupportedFormat indicates an unknown export format was requested.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrDOCXDependencyMissing indicates DOCX export runtime dependencies are unavailable.
	ErrDOCXDependencyMissing = errors.New("export docx dependency missing")
	// ErrPDFDependencyMissing indicates PDF export runtime dependencies are unavailable.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
)

// Exporter turns analysis results into downloadable documents.
type Exporter struct {
	log *zap.Logger
}

func NewExporter(log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{log: log}
}

// Export generates an export in the requested format.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	base := "BMC_Report"
	if req.IncludeInput {
		base = "BMC_Full_Report"
	}

	switch req.Format {
	case FormatMarkdown:
		md := RenderMarkdown(req.Data, req.Result, req.IncludeInput)
		return &Result{Data: []byte(md), Filename: base + ".md", MimeType: "text/markdown"}, nil
	case FormatHTML:
		html, err := RenderHTML(req.Data, req.Result, req.IncludeInput)
		if err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		return &Result{Data: []byte(html), Filename: base + ".html", MimeType: "text/html"}, nil
	case FormatDOCX:
		html, err := RenderHTML(req.Data, req.Result, req.IncludeInput)
		if err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		e.log.Debug("exporting docx via pandoc")
		return exportDOCX(ctx, html, base)
	case FormatPDF:
		html, err := RenderHTML(req.Data, req.Result, req.IncludeInput)
		if err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		e.log.Debug("exporting pdf via headless chrome")
		return exportPDF(ctx, html, base)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}
}
