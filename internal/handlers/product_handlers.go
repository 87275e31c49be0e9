package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles product CRUD, listing and the combined
// product/variant/image creation flow.
type ProductHandlers struct {
	productRepo    repositories.ProductRepository
	productService services.ProductService
}

func NewProductHandlers(productRepo repositories.ProductRepository, productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productRepo: productRepo, productService: productService}
}

// ListProductsRequest represents query parameters for the product listing.
type ListProductsRequest struct {
	Query        string `query:"q"`
	CategoryID   string `query:"category_id"`
	RoastLevelID string `query:"roast_level_id"`
	All          bool   `query:"all"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}

func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid query parameters", "")
	}

	filter := &models.ProductSearchFilter{
		Query:      req.Query,
		ActiveOnly: !req.All,
	}
	filter.Limit, filter.Offset = common.ClampPagination(req.Limit, req.Offset)

	if req.CategoryID != "" {
		id, err := common.ValidateUUID(req.CategoryID, "category_id")
		if err != nil {
			return respondError(c, err)
		}
		filter.CategoryID = &id
	}
	if req.RoastLevelID != "" {
		id, err := common.ValidateUUID(req.RoastLevelID, "roast_level_id")
		if err != nil {
			return respondError(c, err)
		}
		filter.RoastLevelID = &id
	}

	products, err := h.productRepo.List(ctx, filter)
	if err != nil {
		return respondError(c, err)
	}
	if products == nil {
		products = []*models.Product{}
	}
	return common.SendSuccess(c, http.StatusOK, products, "products retrieved")
}

// GetProduct serves the public detail page: product with variants and their
// images embedded. The path segment may be an id or a slug.
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	idStr := c.Param("id")
	if id, err := common.ValidateUUID(idStr, "product id"); err == nil {
		detail, err := h.productService.GetDetail(ctx, id)
		if err != nil {
			return respondError(c, err)
		}
		return common.SendSuccess(c, http.StatusOK, detail, "product retrieved")
	}

	detail, err := h.productService.GetDetailBySlug(ctx, idStr)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, detail, "product retrieved")
}

// ProductRequest is the payload for product creation and update.
type ProductRequest struct {
	CategoryID   *string `json:"category_id" validate:"omitempty,uuid"`
	RoastLevelID *string `json:"roast_level_id" validate:"omitempty,uuid"`
	Name         string  `json:"name" validate:"required"`
	Slug         string  `json:"slug" validate:"required"`
	Description  *string `json:"description"`
	Currency     string  `json:"currency" validate:"required,len=3"`
	IsActive     *bool   `json:"is_active"`
}

func (r *ProductRequest) toModel() (*models.Product, error) {
	product := &models.Product{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Currency:    r.Currency,
		IsActive:    true,
	}
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
	if r.CategoryID != nil {
		id, err := common.ValidateUUID(*r.CategoryID, "category_id")
		if err != nil {
			return nil, err
		}
		product.CategoryID = &id
	}
	if r.RoastLevelID != nil {
		id, err := common.ValidateUUID(*r.RoastLevelID, "roast_level_id")
		if err != nil {
			return nil, err
		}
		product.RoastLevelID = &id
	}
	return product, nil
}

func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	product, err := req.toModel()
	if err != nil {
		return respondError(c, err)
	}
	if err := h.productRepo.Create(ctx, product); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, product, "product created")
}

func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return respondError(c, err)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	if _, err := h.productRepo.GetByID(ctx, id); err != nil {
		return common.SendFailure(c, http.StatusNotFound, "product not found", "")
	}

	product, err := req.toModel()
	if err != nil {
		return respondError(c, err)
	}
	product.ID = id

	if err := h.productRepo.Update(ctx, product); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, product, "product updated")
}

func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.productRepo.GetByID(ctx, id); err != nil {
		return common.SendFailure(c, http.StatusNotFound, "product not found", "")
	}
	if err := h.productRepo.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, nil, "product deleted")
}

// FullProductImage is one image of a combined creation request, sourced from
// a URL or a base64 data URI.
type FullProductImage struct {
	URL       string `json:"url"`
	ImageData string `json:"imageData"`
	Position  int    `json:"position"`
}

// FullProductVariant is one variant of a combined creation request.
type FullProductVariant struct {
	Name        string             `json:"name" validate:"required"`
	Price       float64            `json:"price" validate:"required,gt=0"`
	WeightGrams *int               `json:"weight_grams"`
	SKU         *string            `json:"sku"`
	Stock       int                `json:"stock" validate:"gte=0"`
	Images      []FullProductImage `json:"images" validate:"dive"`
}

// FullProductRequest is the combined product/variants/images payload.
type FullProductRequest struct {
	ProductRequest
	Variants []FullProductVariant `json:"variants" validate:"required,min=1,dive"`
}

// CreateFullProduct handles POST /products/full: product, variants and
// images in one request. Image failures are tolerated per image; variant
// failures abort.
func (h *ProductHandlers) CreateFullProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req FullProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	product, err := req.toModel()
	if err != nil {
		return respondError(c, err)
	}

	variants := make([]services.FullVariant, 0, len(req.Variants))
	for _, v := range req.Variants {
		fv := services.FullVariant{
			Variant: &models.ProductVariant{
				Name:        v.Name,
				Price:       v.Price,
				WeightGrams: v.WeightGrams,
				SKU:         v.SKU,
				Stock:       v.Stock,
				IsActive:    true,
			},
		}
		for _, img := range v.Images {
			var source services.ImageSource
			switch {
			case img.URL != "":
				source = services.SourceURL{URL: img.URL}
			case img.ImageData != "":
				source = services.SourceBase64{Data: img.ImageData}
			default:
				return common.SendFailure(c, http.StatusBadRequest, "each image needs a url or imageData", "")
			}
			fv.Images = append(fv.Images, services.VariantImageInput{Source: source, Position: img.Position})
		}
		variants = append(variants, fv)
	}

	detail, err := h.productService.CreateFull(ctx, product, variants)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, detail, "product created")
}
