package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// VariantHandlers handles product variant CRUD. Reads are public; writes are
// admin-gated at the route level.
type VariantHandlers struct {
	variantRepo repositories.ProductVariantRepository
	productRepo repositories.ProductRepository
}

func NewVariantHandlers(variantRepo repositories.ProductVariantRepository, productRepo repositories.ProductRepository) *VariantHandlers {
	return &VariantHandlers{variantRepo: variantRepo, productRepo: productRepo}
}

func (h *VariantHandlers) ListByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return respondError(c, err)
	}

	variants, err := h.variantRepo.ListByProductID(ctx, productID)
	if err != nil {
		return respondError(c, err)
	}
	if variants == nil {
		variants = []*models.ProductVariant{}
	}
	return common.SendSuccess(c, http.StatusOK, variants, "variants retrieved")
}

func (h *VariantHandlers) GetVariant(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "variant id")
	if err != nil {
		return respondError(c, err)
	}

	variant, err := h.variantRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendFailure(c, http.StatusNotFound, "variant not found", "")
	}
	return common.SendSuccess(c, http.StatusOK, variant, "variant retrieved")
}

// VariantRequest is the payload for variant creation and update.
type VariantRequest struct {
	ProductID   string  `json:"product_id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	WeightGrams *int    `json:"weight_grams"`
	SKU         *string `json:"sku"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    *bool   `json:"is_active"`
}

func (h *VariantHandlers) CreateVariant(c echo.Context) error {
	ctx := c.Request().Context()

	var req VariantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.productRepo.GetByID(ctx, productID); err != nil {
		return common.SendFailure(c, http.StatusNotFound, "product not found", "")
	}

	variant := &models.ProductVariant{
		ProductID:   productID,
		Name:        req.Name,
		Price:       req.Price,
		WeightGrams: req.WeightGrams,
		SKU:         req.SKU,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if req.IsActive != nil {
		variant.IsActive = *req.IsActive
	}

	if err := h.variantRepo.Create(ctx, variant); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, variant, "variant created")
}

// UpdateVariantRequest represents the variant update payload; only provided
// fields are applied.
type UpdateVariantRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	WeightGrams *int     `json:"weight_grams"`
	SKU         *string  `json:"sku"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active"`
}

func (h *VariantHandlers) UpdateVariant(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "variant id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateVariantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	variant, err := h.variantRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendFailure(c, http.StatusNotFound, "variant not found", "")
	}

	if req.Name != nil {
		variant.Name = *req.Name
	}
	if req.Price != nil {
		variant.Price = *req.Price
	}
	if req.WeightGrams != nil {
		variant.WeightGrams = req.WeightGrams
	}
	if req.SKU != nil {
		variant.SKU = req.SKU
	}
	if req.Stock != nil {
		variant.Stock = *req.Stock
	}
	if req.IsActive != nil {
		variant.IsActive = *req.IsActive
	}

	if err := h.variantRepo.Update(ctx, variant); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, variant, "variant updated")
}

func (h *VariantHandlers) DeleteVariant(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "variant id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.variantRepo.GetByID(ctx, id); err != nil {
		return common.SendFailure(c, http.StatusNotFound, "variant not found", "")
	}
	if err := h.variantRepo.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, nil, "variant deleted")
}
