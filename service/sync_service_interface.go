package service

import (
	"context"

	"attarkart/models"
)

// SyncServiceInterface defines the contract for product-image synchronization
type SyncServiceInterface interface {
	SyncProductImages(ctx context.Context, folderID string) (*models.ImageSyncResponse, error)
}
