package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"time"

	"attarkart/repository"
	"attarkart/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PriceListService renders the current catalog as a printable price sheet.
type PriceListService struct {
	catalogRepo repository.CatalogRepositoryInterface
}

// NewPriceListService creates a new PriceListService
func NewPriceListService(catalogRepo repository.CatalogRepositoryInterface) *PriceListService {
	return &PriceListService{
		catalogRepo: catalogRepo,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

type priceListRow struct {
	SKU          string
	Category     string
	SizeMl       int
	ListPrice    string
	SellingPrice string
	Discounted   bool
}

type priceListData struct {
	GeneratedAt string
	Rows        []priceListRow
}

var priceListTemplate = template.Must(template.New("pricelist").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: sans-serif; width: 210mm; margin: 0; padding: 10mm; }
  h1 { font-size: 18px; }
  .meta { color: #666; font-size: 11px; margin-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th, td { border: 1px solid #ccc; padding: 4px 6px; text-align: left; }
  th { background: #f4f4f4; }
  td.price { text-align: right; }
  .strike { text-decoration: line-through; color: #999; margin-right: 6px; }
</style>
</head>
<body>
<h1>Price List</h1>
<div class="meta">Generated {{.GeneratedAt}}</div>
<table>
<tr><th>SKU</th><th>Category</th><th>Size (ml)</th><th>Price</th></tr>
{{range .Rows}}<tr>
<td>{{.SKU}}</td><td>{{.Category}}</td><td>{{.SizeMl}}</td>
<td class="price">{{if .Discounted}}<span class="strike">{{.ListPrice}}</span>{{end}}{{.SellingPrice}}</td>
</tr>
{{end}}</table>
</body>
</html>`))

// RenderHTML builds the price-sheet HTML for every active variant, using the
// same selling-price math the pricing engine applies.
func (s *PriceListService) RenderHTML(ctx context.Context, now time.Time) (string, error) {
	variants, err := s.catalogRepo.ListActive(ctx)
	if err != nil {
		return "", err
	}

	data := priceListData{
		GeneratedAt: now.Format("2 Jan 2006 15:04"),
		Rows:        make([]priceListRow, 0, len(variants)),
	}
	for i := range variants {
		v := &variants[i]
		data.Rows = append(data.Rows, priceListRow{
			SKU:          v.SKU,
			Category:     v.Category,
			SizeMl:       v.SizeMl,
			ListPrice:    utils.FormatINR(v.ListPrice),
			SellingPrice: utils.FormatINR(v.SellingPrice()),
			Discounted:   v.DiscountPercent > 0,
		})
	}

	var buf bytes.Buffer
	if err := priceListTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render price list template: %w", err)
	}
	return buf.String(), nil
}

// newBrowserContext configures a chromedp browser context, using the detected
// Chrome path when available.
func newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	return chromedpCtx, chromedpCancel, allocCancel
}

// dataURL embeds the rendered HTML so Chrome needs no render endpoint.
func dataURL(html string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
}

// GeneratePDF renders the price sheet and prints it to PDF via chromedp.
func (s *PriceListService) GeneratePDF(ctx context.Context, variantsHTML string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromedpCtx, chromedpCancel, allocCancel := newBrowserContext(ctx)
	defer chromedpCancel()
	defer allocCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // 210mm x 297mm at 96 DPI
		chromedp.Navigate(dataURL(variantsHTML)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// GeneratePNG renders the price sheet and screenshots it via chromedp.
func (s *PriceListService) GeneratePNG(ctx context.Context, variantsHTML string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromedpCtx, chromedpCancel, allocCancel := newBrowserContext(ctx)
	defer chromedpCancel()
	defer allocCancel()

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(dataURL(variantsHTML)),
		chromedp.WaitReady("body"),
		chromedp.FullScreenshot(&buf, 90),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return buf, nil
}
