package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles the admin user management endpoints.
type UserHandlers struct {
	userRepo repositories.UserRepository
}

func NewUserHandlers(userRepo repositories.UserRepository) *UserHandlers {
	return &UserHandlers{userRepo: userRepo}
}

// ListUsersRequest represents query parameters for listing users.
type ListUsersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *UserHandlers) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListUsersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid query parameters", "")
	}
	limit, offset := common.ClampPagination(req.Limit, req.Offset)

	users, err := h.userRepo.List(ctx, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, users, "users retrieved")
}

func (h *UserHandlers) GetUser(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendFailure(c, http.StatusNotFound, "user not found", "")
	}
	return common.SendSuccess(c, http.StatusOK, user, "user retrieved")
}

// UpdateUserRequest represents the user update payload; only provided fields
// are applied.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsAdmin   *bool   `json:"is_admin"`
}

func (h *UserHandlers) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendFailure(c, http.StatusNotFound, "user not found", "")
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := h.userRepo.Update(ctx, user); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, user, "user updated")
}

func (h *UserHandlers) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.userRepo.GetByID(ctx, id); err != nil {
		return common.SendFailure(c, http.StatusNotFound, "user not found", "")
	}
	if err := h.userRepo.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, nil, "user deleted")
}
