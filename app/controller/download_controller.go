package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"attarkart/service"
)

// DownloadController handles price-list export downloads
type DownloadController struct {
	priceListService *service.PriceListService
}

// NewDownloadController creates a new DownloadController
func NewDownloadController(priceListService *service.PriceListService) *DownloadController {
	return &DownloadController{
		priceListService: priceListService,
	}
}

// validFormats is a map of valid format values
var validFormats = map[string]bool{
	"html": true,
	"pdf":  true,
	"png":  true,
}

// DownloadPriceList handles GET /admin/price-list/download?format=pdf|png|html
func (c *DownloadController) DownloadPriceList(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DownloadPriceList: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "pdf"
	}
	if !validFormats[format] {
		http.Error(w, "Invalid format. Valid formats: html, pdf, png", http.StatusBadRequest)
		return
	}

	html, err := c.priceListService.RenderHTML(r.Context(), time.Now())
	if err != nil {
		log.Printf("❌ DownloadPriceList: Error rendering price list: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render price list: %v", err), http.StatusInternalServerError)
		return
	}

	switch format {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
	case "pdf":
		pdf, err := c.priceListService.GeneratePDF(r.Context(), html)
		if err != nil {
			log.Printf("❌ DownloadPriceList: Error generating PDF: %v", err)
			http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="price-list.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	case "png":
		png, err := c.priceListService.GeneratePNG(r.Context(), html)
		if err != nil {
			log.Printf("❌ DownloadPriceList: Error generating PNG: %v", err)
			http.Error(w, "Failed to generate PNG", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="price-list.png"`)
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}

	log.Printf("✅ DownloadPriceList: Served price list as %s", format)
}
