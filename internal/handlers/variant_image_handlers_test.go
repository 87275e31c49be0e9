package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type mockVariantRepo struct {
	mock.Mock
}

func (m *mockVariantRepo) Create(ctx context.Context, variant *models.ProductVariant) error {
	return m.Called(ctx, variant).Error(0)
}

func (m *mockVariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *mockVariantRepo) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProductVariant), args.Error(1)
}

func (m *mockVariantRepo) Update(ctx context.Context, variant *models.ProductVariant) error {
	return m.Called(ctx, variant).Error(0)
}

func (m *mockVariantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockImageRepo struct {
	mock.Mock
}

func (m *mockImageRepo) Create(ctx context.Context, img *models.VariantImage) error {
	return m.Called(ctx, img).Error(0)
}

func (m *mockImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantImage), args.Error(1)
}

func (m *mockImageRepo) GetByVariantID(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VariantImage), args.Error(1)
}

func (m *mockImageRepo) Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantImage), args.Error(1)
}

func (m *mockImageRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// capturingStorage records uploaded payloads so tests can inspect what would
// have landed in the bucket.
type capturingStorage struct {
	uploads [][]byte
}

func (s *capturingStorage) Upload(ctx context.Context, data []byte, filename, contentType string) (*services.UploadResult, error) {
	s.uploads = append(s.uploads, data)
	key := "product-images/" + services.UniqueObjectFilename(filename)
	return &services.UploadResult{
		URL: "https://cdn.example.com/beanmart/" + key,
		Key: key,
	}, nil
}

func (s *capturingStorage) Delete(ctx context.Context, key string) bool { return true }

func (s *capturingStorage) KeyFromURL(url string) string {
	return services.ExtractObjectKey(url, "https://cdn.example.com", "beanmart")
}

func (s *capturingStorage) UniqueFilename(originalName string) string {
	return services.UniqueObjectFilename(originalName)
}

type VariantImageHandlersTestSuite struct {
	suite.Suite
	echo      *echo.Echo
	variants  *mockVariantRepo
	images    *mockImageRepo
	storage   *capturingStorage
	handlers  *VariantImageHandlers
	variantID uuid.UUID
}

func (suite *VariantImageHandlersTestSuite) SetupTest() {
	suite.echo = echo.New()
	suite.variants = &mockVariantRepo{}
	suite.images = &mockImageRepo{}
	suite.storage = &capturingStorage{}
	suite.variantID = uuid.New()

	fetcher := &services.RemoteFetcher{Timeout: 100 * time.Millisecond, Backoff: time.Millisecond, Attempts: 3}
	ingest := services.NewIngestService(
		suite.variants,
		suite.images,
		services.NewSourceResolver(fetcher),
		services.NewImageProcessor(),
		suite.storage,
		zerolog.Nop(),
	)
	imageService := services.NewVariantImageService(suite.images, suite.storage, zerolog.Nop())
	suite.handlers = NewVariantImageHandlers(ingest, imageService)
}

func TestVariantImageHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(VariantImageHandlersTestSuite))
}

func (suite *VariantImageHandlersTestSuite) postJSON(path string, body any, handler echo.HandlerFunc) (*httptest.ResponseRecorder, common.APIResponse) {
	payload, err := json.Marshal(body)
	require.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	require.NoError(suite.T(), handler(c))

	var envelope common.APIResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func (suite *VariantImageHandlersTestSuite) expectVariantExists() {
	suite.variants.On("GetByID", mock.Anything, suite.variantID).
		Return(&models.ProductVariant{ID: suite.variantID}, nil)
}

func jpegDataURI(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}))
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func (suite *VariantImageHandlersTestSuite) TestUpload_OversizedBase64IsResized() {
	suite.expectVariantExists()
	suite.images.On("Create", mock.Anything, mock.AnythingOfType("*models.VariantImage")).Return(nil)

	rec, envelope := suite.postJSON("/v1/variant-images", map[string]any{
		"variant_id": suite.variantID.String(),
		"imageData":  jpegDataURI(suite.T(), 1200, 900),
	}, suite.handlers.Upload)

	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.True(suite.T(), envelope.Success)
	assert.Equal(suite.T(), "variant image uploaded successfully", envelope.Message)

	require.Len(suite.T(), suite.storage.uploads, 1)
	decoded, format, err := image.Decode(bytes.NewReader(suite.storage.uploads[0]))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "jpeg", format)
	assert.LessOrEqual(suite.T(), decoded.Bounds().Dx(), 700)
	assert.LessOrEqual(suite.T(), decoded.Bounds().Dy(), 700)
}

func (suite *VariantImageHandlersTestSuite) TestUpload_CamelCaseVariantIDAccepted() {
	suite.expectVariantExists()
	suite.images.On("Create", mock.Anything, mock.AnythingOfType("*models.VariantImage")).Return(nil)

	rec, envelope := suite.postJSON("/v1/variant-images", map[string]any{
		"variantId": suite.variantID.String(),
		"imageData": jpegDataURI(suite.T(), 100, 100),
	}, suite.handlers.Upload)

	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.True(suite.T(), envelope.Success)
}

func (suite *VariantImageHandlersTestSuite) TestUpload_URL404BecomesBadRequest() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	suite.expectVariantExists()

	rec, envelope := suite.postJSON("/v1/variant-images", map[string]any{
		"variant_id": suite.variantID.String(),
		"url":        server.URL + "/missing.png",
	}, suite.handlers.Upload)

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.False(suite.T(), envelope.Success)
	assert.Equal(suite.T(), "image not found at URL", envelope.Message)
	suite.images.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	assert.Empty(suite.T(), suite.storage.uploads)
}

func (suite *VariantImageHandlersTestSuite) TestUpload_NoSourceProvided() {
	suite.expectVariantExists()

	rec, envelope := suite.postJSON("/v1/variant-images", map[string]any{
		"variant_id": suite.variantID.String(),
	}, suite.handlers.Upload)

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.False(suite.T(), envelope.Success)
	assert.Contains(suite.T(), envelope.Message, "provide a file, url or imageData")
}

func (suite *VariantImageHandlersTestSuite) TestUpload_InvalidVariantID() {
	rec, envelope := suite.postJSON("/v1/variant-images", map[string]any{
		"variant_id": "not-a-uuid",
		"imageData":  "data:image/png;base64,QUJD",
	}, suite.handlers.Upload)

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.False(suite.T(), envelope.Success)
}

func (suite *VariantImageHandlersTestSuite) TestUpload_MultipartFileWins() {
	suite.expectVariantExists()
	suite.images.On("Create", mock.Anything, mock.AnythingOfType("*models.VariantImage")).Return(nil)

	// A tiny valid PNG header is enough: content type comes from the part
	// header so decoding is attempted but allowed to fall back.
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(suite.T(), writer.WriteField("variant_id", suite.variantID.String()))
	require.NoError(suite.T(), writer.WriteField("url", "http://127.0.0.1:1/unreachable.png"))
	part, err := writer.CreateFormFile("image", "beans.png")
	require.NoError(suite.T(), err)
	_, err = part.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/variant-images", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	require.NoError(suite.T(), suite.handlers.Upload(c))

	// The attached file wins over the unreachable URL, so the upload
	// succeeds without any network fetch.
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	require.Len(suite.T(), suite.storage.uploads, 1)
}

func (suite *VariantImageHandlersTestSuite) TestUploadBatch_TooManyFiles() {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(suite.T(), writer.WriteField("variant_id", suite.variantID.String()))
	for i := 0; i < maxBatchFiles+1; i++ {
		part, err := writer.CreateFormFile("images", "img.png")
		require.NoError(suite.T(), err)
		_, err = part.Write([]byte{0x89, 'P', 'N', 'G'})
		require.NoError(suite.T(), err)
	}
	require.NoError(suite.T(), writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/variant-images/batch", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	require.NoError(suite.T(), suite.handlers.UploadBatch(c))

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	var envelope common.APIResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(suite.T(), envelope.Message, "too many files")
	assert.Empty(suite.T(), suite.storage.uploads)
}

func (suite *VariantImageHandlersTestSuite) TestUploadBatch_JSONDataURIs() {
	suite.expectVariantExists()
	suite.images.On("Create", mock.Anything, mock.AnythingOfType("*models.VariantImage")).Return(nil).Twice()

	rec, envelope := suite.postJSON("/v1/variant-images/batch", map[string]any{
		"variant_id": suite.variantID.String(),
		"imageDataArray": []string{
			jpegDataURI(suite.T(), 50, 50),
			jpegDataURI(suite.T(), 60, 60),
		},
	}, suite.handlers.UploadBatch)

	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.True(suite.T(), envelope.Success)
	assert.Equal(suite.T(), "2 variant images uploaded successfully", envelope.Message)
	assert.Len(suite.T(), suite.storage.uploads, 2)
}

func (suite *VariantImageHandlersTestSuite) TestDelete_CleanupQueryParam() {
	imageID := uuid.New()
	stored := &models.VariantImage{
		ID:  imageID,
		URL: "https://cdn.example.com/beanmart/product-images/x.png",
	}
	suite.images.On("GetByID", mock.Anything, imageID).Return(stored, nil)
	suite.images.On("Delete", mock.Anything, imageID).Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/variant-images/"+imageID.String()+"?cleanup=true", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(imageID.String())

	require.NoError(suite.T(), suite.handlers.Delete(c))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.images.AssertExpectations(suite.T())
}

func (suite *VariantImageHandlersTestSuite) TestSmartDelete_ReportsStorageOutcome() {
	imageID := uuid.New()
	stored := &models.VariantImage{
		ID:  imageID,
		URL: "https://elsewhere.example.com/not-ours.png",
	}
	suite.images.On("GetByID", mock.Anything, imageID).Return(stored, nil)
	suite.images.On("Delete", mock.Anything, imageID).Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/variant-images/"+imageID.String()+"/smart", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(imageID.String())

	require.NoError(suite.T(), suite.handlers.SmartDelete(c))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			DeletedFromStorage bool `json:"deleted_from_storage"`
		} `json:"data"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(suite.T(), envelope.Success)
	assert.False(suite.T(), envelope.Data.DeletedFromStorage, "a foreign URL yields no storage key, so no object delete")
}

func (suite *VariantImageHandlersTestSuite) TestListByVariant_EmptyIsArray() {
	suite.images.On("GetByVariantID", mock.Anything, suite.variantID).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/variants/"+suite.variantID.String()+"/images", nil)
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(suite.variantID.String())

	require.NoError(suite.T(), suite.handlers.ListByVariant(c))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.True(suite.T(), strings.Contains(rec.Body.String(), `"data":[]`), "empty list serializes as [], not null")
}
