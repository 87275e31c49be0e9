package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category CRUD. Reads are public; writes are
// admin-gated at the route level.
type CategoryHandlers struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryHandlers(categoryRepo repositories.CategoryRepository) *CategoryHandlers {
	return &CategoryHandlers{categoryRepo: categoryRepo}
}

// ListCategoriesRequest represents query parameters for listing categories.
type ListCategoriesRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid query parameters", "")
	}
	limit, offset := common.ClampPagination(req.Limit, req.Offset)

	categories, err := h.categoryRepo.List(ctx, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return common.SendSuccess(c, http.StatusOK, categories, "categories retrieved")
}

func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	idStr := c.Param("id")
	// Detail pages are linked by slug; fall back to it when the path
	// segment is not a UUID.
	if id, err := common.ValidateUUID(idStr, "category id"); err == nil {
		category, err := h.categoryRepo.GetByID(ctx, id)
		if err != nil {
			return common.SendFailure(c, http.StatusNotFound, "category not found", "")
		}
		return common.SendSuccess(c, http.StatusOK, category, "category retrieved")
	}

	category, err := h.categoryRepo.GetBySlug(ctx, idStr)
	if err != nil {
		return common.SendFailure(c, http.StatusNotFound, "category not found", "")
	}
	return common.SendSuccess(c, http.StatusOK, category, "category retrieved")
}

// CategoryRequest is the payload for category creation and update.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description *string `json:"description"`
}

func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := h.categoryRepo.Create(ctx, category); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, category, "category created")
}

func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return respondError(c, err)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	category, err := h.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendFailure(c, http.StatusNotFound, "category not found", "")
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description

	if err := h.categoryRepo.Update(ctx, category); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, category, "category updated")
}

func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.categoryRepo.GetByID(ctx, id); err != nil {
		return common.SendFailure(c, http.StatusNotFound, "category not found", "")
	}
	if err := h.categoryRepo.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, nil, "category deleted")
}
