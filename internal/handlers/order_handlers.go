package handlers

import (
	"net/http"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles order creation and retrieval.
type OrderHandlers struct {
	orderService services.OrderService
}

func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrderRequest is the order creation payload.
type CreateOrderRequest struct {
	AddressID string `json:"address_id" validate:"required,uuid"`
	Items     []struct {
		VariantID string `json:"variant_id" validate:"required,uuid"`
		Quantity  int    `json:"quantity" validate:"required,gt=0"`
	} `json:"items" validate:"required,min=1,dive"`
}

func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendFailure(c, http.StatusUnauthorized, "unauthorized", "")
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	addressID, err := common.ValidateUUID(req.AddressID, "address_id")
	if err != nil {
		return respondError(c, err)
	}

	items := make([]services.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		variantID, err := common.ValidateUUID(item.VariantID, "variant_id")
		if err != nil {
			return respondError(c, err)
		}
		items = append(items, services.OrderItemInput{VariantID: variantID, Quantity: item.Quantity})
	}

	order, err := h.orderService.Create(ctx, userID, addressID, items)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusCreated, order, "order created")
}

// ListOrdersRequest represents query parameters for order listings.
type ListOrdersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListOrders returns the caller's own orders.
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendFailure(c, http.StatusUnauthorized, "unauthorized", "")
	}

	var req ListOrdersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid query parameters", "")
	}
	limit, offset := common.ClampPagination(req.Limit, req.Offset)

	orders, err := h.orderService.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return common.SendSuccess(c, http.StatusOK, orders, "orders retrieved")
}

// ListAllOrders returns every order; admin only.
func (h *OrderHandlers) ListAllOrders(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListOrdersRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid query parameters", "")
	}
	limit, offset := common.ClampPagination(req.Limit, req.Offset)

	orders, err := h.orderService.ListAll(ctx, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return common.SendSuccess(c, http.StatusOK, orders, "orders retrieved")
}

func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendFailure(c, http.StatusUnauthorized, "unauthorized", "")
	}

	id, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return respondError(c, err)
	}

	order, err := h.orderService.Get(ctx, id, userID, common.GetIsAdminFromContext(ctx))
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, order, "order retrieved")
}

// UpdateOrderStatusRequest is the admin status transition payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandlers) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendFailure(c, http.StatusBadRequest, "invalid request format", "")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, err)
	}

	order, err := h.orderService.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return common.SendSuccess(c, http.StatusOK, order, "order status updated")
}
