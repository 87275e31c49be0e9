package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// SmartDeleteResult distinguishes "image fully cleaned up" from "DB row
// removed, storage already empty".
type SmartDeleteResult struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	DeletedFromStorage bool   `json:"deleted_from_storage"`
}

// VariantImageService covers the read/update/delete surface of variant
// images. Creation goes through IngestService.
type VariantImageService interface {
	ListByVariant(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error)
	Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error)
	// Delete removes the row only.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteWithFileCleanup removes the row, then best-effort deletes the
	// backing object; object deletion failure is logged, never surfaced.
	DeleteWithFileCleanup(ctx context.Context, id uuid.UUID) error
	// SmartDelete attempts object deletion first, always deletes the row,
	// and reports whether the storage object was actually removed.
	SmartDelete(ctx context.Context, id uuid.UUID) (*SmartDeleteResult, error)
}

type variantImageService struct {
	images  repositories.VariantImageRepository
	storage StorageService
	logger  zerolog.Logger
}

func NewVariantImageService(images repositories.VariantImageRepository, storage StorageService, logger zerolog.Logger) VariantImageService {
	return &variantImageService{images: images, storage: storage, logger: logger}
}

func (s *variantImageService) ListByVariant(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error) {
	return s.images.GetByVariantID(ctx, variantID)
}

// Update applies only the provided fields. A new URL is checked for shape
// but deliberately not verified to point at a reachable object: admins are
// trusted to set arbitrary URLs.
func (s *variantImageService) Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error) {
	if update.URL == nil && update.Position == nil {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrInvalidInput)
	}
	if update.URL != nil {
		parsed, err := url.Parse(*update.URL)
		if err != nil || !parsed.IsAbs() {
			return nil, fmt.Errorf("%w: url is not a well-formed absolute URL", common.ErrInvalidInput)
		}
	}
	if update.Position != nil && *update.Position < 0 {
		return nil, fmt.Errorf("%w: position must be non-negative", common.ErrInvalidInput)
	}

	image, err := s.images.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("%w: variant image %s", common.ErrNotFound, id)
	}
	return image, nil
}

func (s *variantImageService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.images.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: variant image %s", common.ErrNotFound, id)
	}
	return nil
}

func (s *variantImageService) DeleteWithFileCleanup(ctx context.Context, id uuid.UUID) error {
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: variant image %s", common.ErrNotFound, id)
		}
		return err
	}

	if _, err := s.images.Delete(ctx, id); err != nil {
		return err
	}

	key := s.storage.KeyFromURL(image.URL)
	if key == "" {
		s.logger.Warn().Str("url", image.URL).Msg("cleanup skipped: could not extract storage key from URL")
		return nil
	}
	if !s.storage.Delete(ctx, key) {
		s.logger.Warn().Str("key", key).Msg("cleanup: storage object deletion failed")
	}
	return nil
}

func (s *variantImageService) SmartDelete(ctx context.Context, id uuid.UUID) (*SmartDeleteResult, error) {
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: variant image %s", common.ErrNotFound, id)
		}
		return nil, err
	}

	// Storage first: a successful delete proves the object existed. The
	// row goes afterward regardless of the storage outcome.
	deletedFromStorage := false
	if key := s.storage.KeyFromURL(image.URL); key != "" {
		deletedFromStorage = s.storage.Delete(ctx, key)
	}

	if _, err := s.images.Delete(ctx, id); err != nil {
		return nil, err
	}

	message := "variant image deleted"
	if !deletedFromStorage {
		message = "variant image record deleted; storage object was not removed"
	}
	return &SmartDeleteResult{
		Success:            true,
		Message:            message,
		DeletedFromStorage: deletedFromStorage,
	}, nil
}
