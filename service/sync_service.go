package service

import (
	"context"
	"fmt"
	"log"

	"attarkart/models"
	"attarkart/repository"
)

// SyncService synchronizes product images from Google Drive onto variants.
// Filenames carry the SKU; variants are matched by it.
// Implements SyncServiceInterface
type SyncService struct {
	driveService DriveServiceInterface
	catalogRepo  repository.CatalogRepositoryInterface
}

// NewSyncService creates a new SyncService
func NewSyncService(driveService DriveServiceInterface, catalogRepo repository.CatalogRepositoryInterface) *SyncService {
	return &SyncService{
		driveService: driveService,
		catalogRepo:  catalogRepo,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncProductImages lists the Drive folder and writes each image's URL onto
// the variant whose SKU its filename names. Images with no matching variant
// are skipped and counted, never fatal.
func (s *SyncService) SyncProductImages(ctx context.Context, folderID string) (*models.ImageSyncResponse, error) {
	log.Printf("🔄 Starting product image sync for folder: %s", folderID)

	images, err := s.driveService.ListProductImages(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product images from Drive: %w", err)
	}

	log.Printf("📦 Processing %d product images from Google Drive", len(images))
	resp := &models.ImageSyncResponse{Total: len(images)}

	for _, image := range images {
		matched, err := s.catalogRepo.UpdateImageURLBySKU(ctx, image.SKU, image.ImageURL)
		if err != nil {
			log.Printf("❌ Error updating image for sku %s: %v", image.SKU, err)
			resp.Skipped++
			continue
		}
		if !matched {
			log.Printf("⏭️  Skipping %s (no variant with sku %s)", image.FileName, image.SKU)
			resp.Skipped++
			continue
		}
		log.Printf("✅ Linked %s to variant sku %s", image.FileName, image.SKU)
		resp.Updated++
	}

	log.Printf("🎉 Image sync completed: %d updated, %d skipped, %d total", resp.Updated, resp.Skipped, resp.Total)
	return resp, nil
}
