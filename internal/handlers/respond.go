package handlers

import (
	"net/http"

	"beanmart/internal/common"

	"github.com/labstack/echo/v4"
)

// respondError translates a service error into the failure envelope. Client
// errors carry their message verbatim; server errors get a generic message
// with the detail tucked into the error field.
func respondError(c echo.Context, err error) error {
	status := common.StatusForError(err)
	if status >= http.StatusInternalServerError {
		return common.SendFailure(c, status, "internal server error", err.Error())
	}
	return common.SendFailure(c, status, err.Error(), "")
}
