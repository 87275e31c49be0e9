package services

import (
	"context"
	"fmt"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// VariantImageInput pairs an image source with its requested position in the
// combined product creation flow.
type VariantImageInput struct {
	Source   ImageSource
	Position int
}

// FullVariant is one variant of a combined creation request together with
// its images.
type FullVariant struct {
	Variant *models.ProductVariant
	Images  []VariantImageInput
}

// ProductService assembles product detail views and runs the combined
// product/variant/image creation flow.
type ProductService interface {
	GetDetail(ctx context.Context, id uuid.UUID) (*models.ProductDetail, error)
	GetDetailBySlug(ctx context.Context, slug string) (*models.ProductDetail, error)
	CreateFull(ctx context.Context, product *models.Product, variants []FullVariant) (*models.ProductDetail, error)
}

type productService struct {
	products repositories.ProductRepository
	variants repositories.ProductVariantRepository
	images   repositories.VariantImageRepository
	ingest   IngestService
	logger   zerolog.Logger
}

func NewProductService(
	products repositories.ProductRepository,
	variants repositories.ProductVariantRepository,
	images repositories.VariantImageRepository,
	ingest IngestService,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		products: products,
		variants: variants,
		images:   images,
		ingest:   ingest,
		logger:   logger,
	}
}

func (s *productService) GetDetail(ctx context.Context, id uuid.UUID) (*models.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", common.ErrNotFound, id)
	}
	return s.assembleDetail(ctx, product)
}

func (s *productService) GetDetailBySlug(ctx context.Context, slug string) (*models.ProductDetail, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("%w: product %q", common.ErrNotFound, slug)
	}
	return s.assembleDetail(ctx, product)
}

func (s *productService) assembleDetail(ctx context.Context, product *models.Product) (*models.ProductDetail, error) {
	variants, err := s.variants.ListByProductID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	detail := &models.ProductDetail{Product: *product, Variants: make([]*models.VariantDetail, 0, len(variants))}
	for _, v := range variants {
		images, err := s.images.GetByVariantID(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		if images == nil {
			images = []*models.VariantImage{}
		}
		detail.Variants = append(detail.Variants, &models.VariantDetail{ProductVariant: *v, Images: images})
	}
	return detail, nil
}

// CreateFull creates a product, its variants and their images in one pass.
// Product and variant creation failures abort the request. Image ingestion
// failures are logged and skipped: a created variant may end up with fewer
// images than requested, and the response does not enumerate which failed.
func (s *productService) CreateFull(ctx context.Context, product *models.Product, variants []FullVariant) (*models.ProductDetail, error) {
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	detail := &models.ProductDetail{Product: *product, Variants: make([]*models.VariantDetail, 0, len(variants))}
	for _, fv := range variants {
		fv.Variant.ProductID = product.ID
		if err := s.variants.Create(ctx, fv.Variant); err != nil {
			return nil, fmt.Errorf("create variant %q: %w", fv.Variant.Name, err)
		}

		vd := &models.VariantDetail{ProductVariant: *fv.Variant, Images: []*models.VariantImage{}}
		for i, in := range fv.Images {
			position := in.Position
			if position <= 0 {
				position = i + 1
			}
			ingested, err := s.ingest.IngestOne(ctx, fv.Variant.ID, in.Source, position)
			if err != nil {
				s.logger.Warn().Err(err).
					Str("variant", fv.Variant.Name).
					Int("image_index", i).
					Msg("image ingestion failed during combined product creation, continuing")
				continue
			}
			vd.Images = append(vd.Images, ingested.VariantImage)
		}
		detail.Variants = append(detail.Variants, vd)
	}
	return detail, nil
}
