package common

import (
	"github.com/labstack/echo/v4"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// SendSuccess writes a success envelope with the given status code.
func SendSuccess(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendFailure writes a failure envelope. detail carries debug context for the
// client and must never contain credentials.
func SendFailure(c echo.Context, status int, message, detail string) error {
	return c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
