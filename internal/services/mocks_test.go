package services

import (
	"context"

	"beanmart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and collaborators shared by the service test suites.

type MockProductVariantRepository struct {
	mock.Mock
}

func (m *MockProductVariantRepository) Create(ctx context.Context, variant *models.ProductVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockProductVariantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *MockProductVariantRepository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProductVariant), args.Error(1)
}

func (m *MockProductVariantRepository) Update(ctx context.Context, variant *models.ProductVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockProductVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) IngestOne(ctx context.Context, variantID uuid.UUID, source ImageSource, position int) (*IngestedImage, error) {
	args := m.Called(ctx, variantID, source, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IngestedImage), args.Error(1)
}

func (m *MockIngestService) IngestBatch(ctx context.Context, variantID uuid.UUID, in BatchInput) ([]*IngestedImage, error) {
	args := m.Called(ctx, variantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*IngestedImage), args.Error(1)
}

type MockVariantImageRepository struct {
	mock.Mock
}

func (m *MockVariantImageRepository) Create(ctx context.Context, image *models.VariantImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockVariantImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageRepository) GetByVariantID(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageRepository) Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantImage), args.Error(1)
}

func (m *MockVariantImageRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, data []byte, filename, contentType string) (*UploadResult, error) {
	args := m.Called(ctx, data, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadResult), args.Error(1)
}

func (m *MockStorageService) Delete(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

func (m *MockStorageService) KeyFromURL(url string) string {
	args := m.Called(url)
	return args.String(0)
}

func (m *MockStorageService) UniqueFilename(originalName string) string {
	args := m.Called(originalName)
	return args.String(0)
}

type MockImageProcessor struct {
	mock.Mock
}

func (m *MockImageProcessor) Process(data []byte, opts ProcessOptions) (*ProcessedImage, error) {
	args := m.Called(data, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProcessedImage), args.Error(1)
}

// passthroughProcessor returns its input unchanged, for tests that do not
// care about the transform step.
type passthroughProcessor struct{}

func (passthroughProcessor) Process(data []byte, opts ProcessOptions) (*ProcessedImage, error) {
	return &ProcessedImage{Data: data, WasResized: false}, nil
}
