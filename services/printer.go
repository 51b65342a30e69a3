package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Paper sizes are in inches, as Page.printToPDF expects.
type Paper struct {
	Width  float64
	Height float64
}

var (
	PaperA4        = Paper{Width: 8.27, Height: 11.69}
	PaperThermal80 = Paper{Width: 3.15, Height: 11.69}
)

type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string, paper Paper) ([]byte, error)
}

// ChromePrinter prints HTML to PDF through a headless Chrome started per call.
type ChromePrinter struct {
	ExecPath string
	Timeout  time.Duration
}

func NewChromePrinter(execPath string) *ChromePrinter {
	return &ChromePrinter{ExecPath: execPath, Timeout: 30 * time.Second}
}

func (p *ChromePrinter) PrintPDF(ctx context.Context, html string, paper Paper) ([]byte, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, p.Timeout)
	defer cancelTimeout()

	// an empty Run starts the browser
	if err := chromedp.Run(browserCtx); err != nil {
		log.Printf("printer: cannot start browser: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPrintSurfaceUnavailable, err)
	}

	var pdfBuffer []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paper.Width).
				WithPaperHeight(paper.Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdfBuffer, nil
}
