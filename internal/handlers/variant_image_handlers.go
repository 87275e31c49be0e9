package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// maxBatchFiles caps the number of attached files in one batch request,
// enforced before any candidate is resolved.
const maxBatchFiles = 10

// VariantImageHandlers adapts HTTP requests onto the ingestion pipeline and
// the variant image service. All business logic lives in the services.
type VariantImageHandlers struct {
	ingest services.IngestService
	images services.VariantImageService
}

func NewVariantImageHandlers(ingest services.IngestService, images services.VariantImageService) *VariantImageHandlers {
	return &VariantImageHandlers{ingest: ingest, images: images}
}

// uploadImageRequest is the JSON body of a single upload. Multipart requests
// carry the same fields as form values plus the attached file.
type uploadImageRequest struct {
	VariantID  string `json:"variant_id" form:"variant_id"`
	VariantID2 string `json:"variantId" form:"variantId"`
	Position   int    `json:"position" form:"position"`
	URL        string `json:"url" form:"url"`
	ImageURL   string `json:"imageUrl" form:"imageUrl"`
	ImageData  string `json:"imageData" form:"imageData"`
}

func (r *uploadImageRequest) variantID() string {
	if r.VariantID != "" {
		return r.VariantID
	}
	return r.VariantID2
}

// Upload handles POST /variant-images. The source is picked with precedence
// attached file > url > base64 data URI.
func (h *VariantImageHandlers) Upload(c echo.Context) error {
	var req uploadImageRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}

	variantID, err := common.ValidateUUID(req.variantID(), "variant_id")
	if err != nil {
		return respondError(c, err)
	}

	source, err := h.buildSource(c, &req)
	if err != nil {
		return respondError(c, err)
	}

	position := req.Position
	if position <= 0 {
		position = 1
	}

	image, err := h.ingest.IngestOne(c.Request().Context(), variantID, source, position)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, image, "variant image uploaded successfully")
}

// batchUploadRequest is the JSON body of a batch upload; multipart requests
// supply the arrays as repeated form values plus attached files.
type batchUploadRequest struct {
	VariantID      string   `json:"variant_id" form:"variant_id"`
	VariantID2     string   `json:"variantId" form:"variantId"`
	URLs           []string `json:"urls"`
	ImageDataArray []string `json:"imageDataArray"`
	Positions      []int    `json:"positions"`
	BasePosition   int      `json:"base_position" form:"base_position"`
}

func (r *batchUploadRequest) variantID() string {
	if r.VariantID != "" {
		return r.VariantID
	}
	return r.VariantID2
}

// UploadBatch handles POST /variant-images/batch.
func (h *VariantImageHandlers) UploadBatch(c echo.Context) error {
	var req batchUploadRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}

	variantID, err := common.ValidateUUID(req.variantID(), "variant_id")
	if err != nil {
		return respondError(c, err)
	}

	in := services.BatchInput{
		URLs:         req.URLs,
		ImageData:    req.ImageDataArray,
		Positions:    req.Positions,
		BasePosition: req.BasePosition,
	}
	if in.BasePosition <= 0 {
		in.BasePosition = 1
	}

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err == nil && form != nil {
			files := form.File["images"]
			if len(files) > maxBatchFiles {
				return common.SendFailure(c, http.StatusBadRequest,
					fmt.Sprintf("too many files: at most %d per request", maxBatchFiles), "")
			}
			for _, fh := range files {
				sf, err := readFileHeader(fh)
				if err != nil {
					return respondError(c, err)
				}
				in.Files = append(in.Files, *sf)
			}
			in.URLs = append(in.URLs, form.Value["urls"]...)
			in.ImageData = append(in.ImageData, form.Value["imageDataArray"]...)
			for _, p := range form.Value["positions"] {
				if n, err := strconv.Atoi(p); err == nil {
					in.Positions = append(in.Positions, n)
				}
			}
		}
	}

	results, err := h.ingest.IngestBatch(c.Request().Context(), variantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, results,
		fmt.Sprintf("%d variant images uploaded successfully", len(results)))
}

// ListByVariant handles GET /variants/:id/images.
func (h *VariantImageHandlers) ListByVariant(c echo.Context) error {
	variantID, err := common.ValidateUUID(c.Param("id"), "variant id")
	if err != nil {
		return respondError(c, err)
	}

	images, err := h.images.ListByVariant(c.Request().Context(), variantID)
	if err != nil {
		return respondError(c, err)
	}
	if images == nil {
		images = []*models.VariantImage{}
	}
	return common.SendSuccess(c, http.StatusOK, images, "variant images retrieved")
}

// Update handles PUT /variant-images/:id. Only provided fields are applied.
func (h *VariantImageHandlers) Update(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "image id")
	if err != nil {
		return respondError(c, err)
	}

	var update models.VariantImageUpdate
	if err := c.Bind(&update); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}

	image, err := h.images.Update(c.Request().Context(), id, &update)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, image, "variant image updated")
}

// Delete handles DELETE /variant-images/:id. With ?cleanup=true the backing
// storage object is removed best-effort as well.
func (h *VariantImageHandlers) Delete(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "image id")
	if err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	if c.QueryParam("cleanup") == "true" {
		err = h.images.DeleteWithFileCleanup(ctx, id)
	} else {
		err = h.images.Delete(ctx, id)
	}
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, nil, "variant image deleted")
}

// SmartDelete handles DELETE /variant-images/:id/smart and reports whether
// the storage object was actually removed.
func (h *VariantImageHandlers) SmartDelete(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "image id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.images.SmartDelete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, result, result.Message)
}

// buildSource constructs the tagged source union with precedence
// file > url > base64.
func (h *VariantImageHandlers) buildSource(c echo.Context, req *uploadImageRequest) (services.ImageSource, error) {
	if isMultipart(c) {
		if fh, err := c.FormFile("image"); err == nil && fh != nil {
			sf, err := readFileHeader(fh)
			if err != nil {
				return nil, err
			}
			return *sf, nil
		}
	}
	if req.URL != "" {
		return services.SourceURL{URL: req.URL}, nil
	}
	if req.ImageURL != "" {
		return services.SourceURL{URL: req.ImageURL}, nil
	}
	if req.ImageData != "" {
		return services.SourceBase64{Data: req.ImageData}, nil
	}
	return nil, fmt.Errorf("%w: provide a file, url or imageData", common.ErrInvalidInput)
}

func isMultipart(c echo.Context) bool {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(contentType, echo.MIMEMultipartForm)
}

func readFileHeader(fh *multipart.FileHeader) (*services.SourceFile, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: could not read uploaded file", common.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read uploaded file", common.ErrInvalidInput)
	}
	return &services.SourceFile{
		Data:        data,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
