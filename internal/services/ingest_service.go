package services

import (
	"context"
	"fmt"
	"strings"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxImageBytes is the inclusive upload size cap.
const MaxImageBytes = 50 * 1024 * 1024

// IngestedImage is the persisted row plus the storage key it was uploaded
// under.
type IngestedImage struct {
	*models.VariantImage
	StorageKey string `json:"storage_key,omitempty"`
}

// BatchInput carries the three parallel batch sources. Candidates are
// assembled in order: files, then URLs, then data URIs.
type BatchInput struct {
	Files        []SourceFile
	URLs         []string
	ImageData    []string
	Positions    []int
	BasePosition int
}

// IngestService runs the ingestion pipeline: resolve source, validate,
// transform, store, persist. It is a plain service callable with typed
// arguments; the HTTP handlers are thin adapters over it.
type IngestService interface {
	IngestOne(ctx context.Context, variantID uuid.UUID, source ImageSource, position int) (*IngestedImage, error)
	IngestBatch(ctx context.Context, variantID uuid.UUID, in BatchInput) ([]*IngestedImage, error)
}

type ingestService struct {
	variants  repositories.ProductVariantRepository
	images    repositories.VariantImageRepository
	resolver  *SourceResolver
	processor ImageProcessor
	storage   StorageService
	logger    zerolog.Logger
}

func NewIngestService(
	variants repositories.ProductVariantRepository,
	images repositories.VariantImageRepository,
	resolver *SourceResolver,
	processor ImageProcessor,
	storage StorageService,
	logger zerolog.Logger,
) IngestService {
	return &ingestService{
		variants:  variants,
		images:    images,
		resolver:  resolver,
		processor: processor,
		storage:   storage,
		logger:    logger,
	}
}

// IngestOne runs the full pipeline for a single image. Any hard error fails
// the request; only the transform step is allowed to fall back.
func (s *ingestService) IngestOne(ctx context.Context, variantID uuid.UUID, source ImageSource, position int) (*IngestedImage, error) {
	if _, err := s.variants.GetByID(ctx, variantID); err != nil {
		return nil, fmt.Errorf("%w: variant %s", common.ErrNotFound, variantID)
	}

	resolved, err := s.resolver.Resolve(ctx, source)
	if err != nil {
		return nil, err
	}

	if err := validateImagePayload(resolved); err != nil {
		return nil, err
	}

	return s.storeAndPersist(ctx, variantID, resolved, position)
}

// batchCandidate is a resolved batch entry carrying the index it held in the
// combined input list, which names it in validation errors and drives its
// default position.
type batchCandidate struct {
	index    int
	resolved *ResolvedSource
}

// IngestBatch assembles candidates from all three sources before validating
// any of them. Resolution failures (unreachable URL, malformed data URI)
// skip the candidate and continue; type/size validation failures abort the
// whole batch naming the offending index. The asymmetry is deliberate: a
// failed download means the internet was unreliable, a bad payload means the
// client sent garbage.
func (s *ingestService) IngestBatch(ctx context.Context, variantID uuid.UUID, in BatchInput) ([]*IngestedImage, error) {
	if _, err := s.variants.GetByID(ctx, variantID); err != nil {
		return nil, fmt.Errorf("%w: variant %s", common.ErrNotFound, variantID)
	}

	sources := make([]ImageSource, 0, len(in.Files)+len(in.URLs)+len(in.ImageData))
	for _, f := range in.Files {
		sources = append(sources, f)
	}
	for _, u := range in.URLs {
		sources = append(sources, SourceURL{URL: u})
	}
	for _, d := range in.ImageData {
		sources = append(sources, SourceBase64{Data: d})
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no files, urls or image data provided", common.ErrInvalidInput)
	}

	var candidates []batchCandidate
	for i, src := range sources {
		resolved, err := s.resolver.Resolve(ctx, src)
		if err != nil {
			s.logger.Warn().Err(err).Int("index", i).Str("kind", src.sourceKind()).
				Msg("batch candidate skipped: resolution failed")
			continue
		}
		candidates = append(candidates, batchCandidate{index: i, resolved: resolved})
	}

	for _, cand := range candidates {
		if err := validateImagePayload(cand.resolved); err != nil {
			return nil, fmt.Errorf("%w (item %d)", err, cand.index)
		}
	}

	results := make([]*IngestedImage, 0, len(candidates))
	for _, cand := range candidates {
		position := in.BasePosition + cand.index
		if cand.index < len(in.Positions) {
			position = in.Positions[cand.index]
		}
		img, err := s.storeAndPersist(ctx, variantID, cand.resolved, position)
		if err != nil {
			return nil, err
		}
		results = append(results, img)
	}
	return results, nil
}

// storeAndPersist is the shared tail of the pipeline: transform with
// fallback, upload, insert the row.
func (s *ingestService) storeAndPersist(ctx context.Context, variantID uuid.UUID, resolved *ResolvedSource, position int) (*IngestedImage, error) {
	data := resolved.Data
	contentType := resolved.ContentType

	processed, err := s.processor.Process(data, DefaultProcessOptions())
	if err != nil {
		// Transform failures never fail ingestion; the original buffer
		// is stored as-is.
		s.logger.Warn().Err(err).Str("filename", resolved.Filename).
			Msg("image processing failed, storing original")
	} else {
		data = processed.Data
		if processed.WasResized {
			contentType = ResizedContentType
			s.logger.Debug().
				Int("original_width", processed.OriginalWidth).
				Int("original_height", processed.OriginalHeight).
				Int("width", processed.Width).
				Int("height", processed.Height).
				Msg("image resized")
		}
	}

	result, err := s.storage.Upload(ctx, data, resolved.Filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if position <= 0 {
		position = 1
	}
	image := &models.VariantImage{
		VariantID: variantID,
		URL:       result.URL,
		Position:  position,
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("persist variant image: %w", err)
	}

	return &IngestedImage{VariantImage: image, StorageKey: result.Key}, nil
}

// validateImagePayload gates content type and size. The size cap is
// inclusive: a payload of exactly MaxImageBytes passes.
func validateImagePayload(resolved *ResolvedSource) error {
	if !strings.HasPrefix(resolved.ContentType, "image/") {
		return fmt.Errorf("%w: content type %q is not an image", common.ErrInvalidInput, resolved.ContentType)
	}
	if len(resolved.Data) > MaxImageBytes {
		return fmt.Errorf("%w: image exceeds the %d MiB limit", common.ErrInvalidInput, MaxImageBytes/(1024*1024))
	}
	return nil
}
