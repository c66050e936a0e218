// Package export prints rendered documents to PDF with headless Chrome.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/folio-builder/internal/rendering"
	"github.com/jonathan/folio-builder/internal/types"
)

// DefaultTimeout bounds one print job, browser start-up included.
const DefaultTimeout = 60 * time.Second

// A4 paper size in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

// HTMLPrinter turns an HTML page into PDF bytes.
type HTMLPrinter interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// PDFRenderer prints HTML through a fresh headless Chrome per call.
type PDFRenderer struct {
	// ChromePath overrides the browser binary; empty uses chromedp's lookup.
	ChromePath string
	Timeout    time.Duration
	Verbose    bool
}

// NewPDFRenderer returns a renderer using chromePath, which may be empty.
func NewPDFRenderer(chromePath string) *PDFRenderer {
	return &PDFRenderer{ChromePath: chromePath, Timeout: DefaultTimeout}
}

// RenderHTMLToPDF loads html from a temporary file and prints it on A4 with
// backgrounds.
func (r *PDFRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "folio-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	if r.Verbose {
		log.Printf("[export] Printing %d bytes of HTML", len(html))
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print PDF: %w", err)
	}

	if r.Verbose {
		log.Printf("[export] Printed %d bytes of PDF", len(pdf))
	}
	return pdf, nil
}

// Document renders doc with its own template and prints it.
func Document(ctx context.Context, printer HTMLPrinter, renderer *rendering.Renderer, doc *types.Document, prefersDark bool) ([]byte, error) {
	html, err := renderer.RenderString(doc, prefersDark)
	if err != nil {
		return nil, err
	}
	return printer.RenderHTMLToPDF(ctx, html)
}
