package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"attarkart/repository"
	"attarkart/service"
)

// ProductImageController serves optimized product images and triggers the
// Drive image sync
type ProductImageController struct {
	catalogRepo  repository.CatalogRepositoryInterface
	syncService  service.SyncServiceInterface
	driveService service.DriveServiceInterface
}

// NewProductImageController creates a new ProductImageController
func NewProductImageController(
	catalogRepo repository.CatalogRepositoryInterface,
	syncService service.SyncServiceInterface,
	driveService service.DriveServiceInterface,
) *ProductImageController {
	return &ProductImageController{
		catalogRepo:  catalogRepo,
		syncService:  syncService,
		driveService: driveService,
	}
}

// GetOptimizedImage handles GET /products/image?variant_id=123&size=thumb|medium
// Serves a resized JPEG of the variant's product image, caching on disk.
func (c *ProductImageController) GetOptimizedImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.driveService == nil {
		http.Error(w, "Image service not configured", http.StatusServiceUnavailable)
		return
	}

	variantID, err := strconv.ParseInt(r.URL.Query().Get("variant_id"), 10, 64)
	if err != nil || variantID <= 0 {
		http.Error(w, "variant_id must be a positive integer", http.StatusBadRequest)
		return
	}
	size := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("size")))
	if size == "" {
		size = "medium"
	}
	if size != "thumb" && size != "medium" {
		http.Error(w, "size must be thumb or medium", http.StatusBadRequest)
		return
	}

	// Serve from cache when available
	cachePath := service.GetCachePath(variantID, size)
	if service.CacheExists(cachePath) {
		data, err := service.ReadFromCache(cachePath)
		if err == nil {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Cache-Control", "public, max-age=86400")
			w.Write(data)
			return
		}
		log.Printf("⚠️  GetOptimizedImage: Cache read failed for %s: %v", cachePath, err)
	}

	variants, err := c.catalogRepo.VariantsByIDs(r.Context(), []int64{variantID})
	if err != nil {
		log.Printf("❌ GetOptimizedImage: Error fetching variant %d: %v", variantID, err)
		http.Error(w, "Failed to fetch variant", http.StatusInternalServerError)
		return
	}
	variant, ok := variants[variantID]
	if !ok || variant.ImageURL == "" {
		http.Error(w, "No image for this variant", http.StatusNotFound)
		return
	}

	fileID := driveFileIDFromURL(variant.ImageURL)
	if fileID == "" {
		log.Printf("❌ GetOptimizedImage: Cannot extract drive file id from %s", variant.ImageURL)
		http.Error(w, "No image for this variant", http.StatusNotFound)
		return
	}

	raw, err := c.driveService.DownloadImage(fileID)
	if err != nil {
		log.Printf("❌ GetOptimizedImage: Error downloading image %s: %v", fileID, err)
		http.Error(w, "Failed to fetch image", http.StatusBadGateway)
		return
	}

	optimized, err := service.OptimizeImage(raw, size)
	if err != nil {
		log.Printf("❌ GetOptimizedImage: Error optimizing image %s: %v", fileID, err)
		http.Error(w, "Failed to optimize image", http.StatusInternalServerError)
		return
	}

	if err := service.SaveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  GetOptimizedImage: Failed to cache image: %v", err)
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(optimized)
}

// SyncImages handles POST /admin/products/images/sync?folderId=...
func (c *ProductImageController) SyncImages(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SyncImages: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.syncService == nil {
		http.Error(w, "Image sync not configured", http.StatusServiceUnavailable)
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		http.Error(w, "folderId parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := c.syncService.SyncProductImages(r.Context(), folderID)
	if err != nil {
		log.Printf("❌ SyncImages: Sync failed: %v", err)
		http.Error(w, fmt.Sprintf("Failed to sync images: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("❌ SyncImages: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// driveFileIDFromURL extracts the file id from a drive.google.com/uc?id= URL.
func driveFileIDFromURL(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("id")
}
