package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// RoastLevelHandlers handles roast level CRUD. Reads are public; writes are
// admin-gated at the route level.
type RoastLevelHandlers struct {
	roastLevelRepo repositories.RoastLevelRepository
}

func NewRoastLevelHandlers(roastLevelRepo repositories.RoastLevelRepository) *RoastLevelHandlers {
	return &RoastLevelHandlers{roastLevelRepo: roastLevelRepo}
}

func (h *RoastLevelHandlers) ListRoastLevels(c echo.Context) error {
	levels, err := h.roastLevelRepo.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	if levels == nil {
		levels = []*models.RoastLevel{}
	}
	return common.SendSuccess(c, http.StatusOK, levels, "roast levels retrieved")
}

func (h *RoastLevelHandlers) GetRoastLevel(c echo.Context) error {
	ctx := c.Request().Context()

	idStr := c.Param("id")
	if id, err := common.ValidateUUID(idStr, "roast level id"); err == nil {
		level, err := h.roastLevelRepo.GetByID(ctx, id)
		if err != nil {
			return common.SendFailure(c, http.StatusNotFound, "roast level not found", "")
		}
		return common.SendSuccess(c, http.StatusOK, level, "roast level retrieved")
	}

	level, err := h.roastLevelRepo.GetBySlug(ctx, idStr)
	if err != nil {
		return common.SendFailure(c, http.StatusNotFound, "roast level not found", "")
	}
	return common.SendSuccess(c, http.StatusOK, level, "roast level retrieved")
}

// RoastLevelRequest is the payload for roast level creation and update.
type RoastLevelRequest struct {
	Name  string `json:"name" validate:"required"`
	Slug  string `json:"slug" validate:"required"`
	Level int    `json:"level" validate:"gte=0"`
}

func (h *RoastLevelHandlers) CreateRoastLevel(c echo.Context) error {
	ctx := c.Request().Context()

	var req RoastLevelRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	level := &models.RoastLevel{
		Name:  req.Name,
		Slug:  req.Slug,
		Level: req.Level,
	}
	if err := h.roastLevelRepo.Create(ctx, level); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, level, "roast level created")
}

func (h *RoastLevelHandlers) UpdateRoastLevel(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "roast level id")
	if err != nil {
		return respondError(c, err)
	}

	var req RoastLevelRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	level, err := h.roastLevelRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendFailure(c, http.StatusNotFound, "roast level not found", "")
	}

	level.Name = req.Name
	level.Slug = req.Slug
	level.Level = req.Level

	if err := h.roastLevelRepo.Update(ctx, level); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, level, "roast level updated")
}

func (h *RoastLevelHandlers) DeleteRoastLevel(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "roast level id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.roastLevelRepo.GetByID(ctx, id); err != nil {
		return common.SendFailure(c, http.StatusNotFound, "roast level not found", "")
	}
	if err := h.roastLevelRepo.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, nil, "roast level deleted")
}
