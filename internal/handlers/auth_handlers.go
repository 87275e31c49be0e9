package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandlers handles signup, login and the current-user endpoint.
type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{authService: authService, userRepo: userRepo}
}

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// authResponse bundles the token with the user it was issued for.
type authResponse struct {
	*services.TokenResponse
	User *models.User `json:"user"`
}

// Signup registers a new non-admin user and issues a token.
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	if existing, err := h.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return common.SendFailure(c, http.StatusBadRequest, "email already registered", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return common.SendFailure(c, http.StatusInternalServerError, "internal server error", "password hashing failed")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsAdmin:      false,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, authResponse{TokenResponse: token, User: user}, "account created")
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and issues a token carrying the admin claim.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return common.SendFailure(c, http.StatusUnauthorized, "invalid email or password", "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return common.SendFailure(c, http.StatusUnauthorized, "invalid email or password", "")
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, authResponse{TokenResponse: token, User: user}, "login successful")
}

// Me returns the authenticated user.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendFailure(c, http.StatusUnauthorized, "unauthorized", "")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return common.SendFailure(c, http.StatusUnauthorized, "user not found", "")
	}
	return common.SendSuccess(c, http.StatusOK, user, "current user")
}
