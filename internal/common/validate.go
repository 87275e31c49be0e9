package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validate is the shared validator instance used for request structs.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs struct tag validation and flattens the first failure
// into a user-facing message.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if ok := errors.As(err, &verrs); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: field %s failed on %s", ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// ValidateUUID parses a UUID path or form parameter with a field-specific
// error message.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", ErrInvalidInput, fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a valid UUID", ErrInvalidInput, fieldName)
	}
	return id, nil
}

// ClampPagination applies list endpoint defaults and caps.
func ClampPagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
