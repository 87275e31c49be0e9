package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/labstack/echo/v4"
)

// AddressHandlers handles per-user address management. A caller only ever
// sees their own rows.
type AddressHandlers struct {
	addressRepo repositories.AddressRepository
}

func NewAddressHandlers(addressRepo repositories.AddressRepository) *AddressHandlers {
	return &AddressHandlers{addressRepo: addressRepo}
}

// AddressRequest is the payload for address creation and update.
type AddressRequest struct {
	Label      *string `json:"label"`
	Line1      string  `json:"line1" validate:"required"`
	Line2      *string `json:"line2"`
	City       string  `json:"city" validate:"required"`
	State      *string `json:"state"`
	PostalCode string  `json:"postal_code" validate:"required"`
	Country    string  `json:"country" validate:"required,len=2"`
	IsDefault  bool    `json:"is_default"`
}

func (h *AddressHandlers) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendFailure(c, http.StatusUnauthorized, "unauthorized", "")
	}

	addresses, err := h.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	if addresses == nil {
		addresses = []*models.Address{}
	}
	return common.SendSuccess(c, http.StatusOK, addresses, "addresses retrieved")
}

func (h *AddressHandlers) CreateAddress(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendFailure(c, http.StatusUnauthorized, "unauthorized", "")
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	address := &models.Address{
		UserID:     userID,
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
	if err := h.addressRepo.Create(ctx, address); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, address, "address created")
}

func (h *AddressHandlers) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()

	address, err := h.ownedAddress(c)
	if err != nil {
		return respondError(c, err)
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	address.Label = req.Label
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country
	address.IsDefault = req.IsDefault

	if err := h.addressRepo.Update(ctx, address); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, address, "address updated")
}

func (h *AddressHandlers) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()

	address, err := h.ownedAddress(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.addressRepo.Delete(ctx, address.ID); err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, nil, "address deleted")
}

// ownedAddress loads the address in the path and checks it belongs to the
// caller.
func (h *AddressHandlers) ownedAddress(c echo.Context) (*models.Address, error) {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return nil, common.ErrForbidden
	}

	id, err := common.ValidateUUID(c.Param("id"), "address id")
	if err != nil {
		return nil, err
	}

	address, err := h.addressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	if address.UserID != userID {
		// Do not reveal that the row exists.
		return nil, common.ErrNotFound
	}
	return address, nil
}
