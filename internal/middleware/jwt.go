package middleware

import (
	"context"
	"net/http"
	"strings"

	"beanmart/internal/common"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the bearer token and loads the user id and admin
// flag into the request context.
func JWTMiddleware(auth services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token format")
			}

			userID, isAdmin, err := auth.ParseToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.IsAdminKey, isAdmin)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin callers. It must run after JWTMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !common.GetIsAdminFromContext(c.Request().Context()) {
				return common.SendFailure(c, http.StatusForbidden, "admin access required", "")
			}
			return next(c)
		}
	}
}
