package services

import (
	"context"
	"fmt"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
)

// OrderItemInput is one line of an order creation request.
type OrderItemInput struct {
	VariantID uuid.UUID
	Quantity  int
}

// OrderService creates and reads orders. Prices are snapshotted from the
// variant at creation time.
type OrderService interface {
	Create(ctx context.Context, userID, addressID uuid.UUID, items []OrderItemInput) (*models.OrderDetail, error)
	Get(ctx context.Context, orderID, callerID uuid.UUID, callerIsAdmin bool) (*models.OrderDetail, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error)
}

type orderService struct {
	orders    repositories.OrderRepository
	addresses repositories.AddressRepository
	variants  repositories.ProductVariantRepository
	products  repositories.ProductRepository
}

func NewOrderService(
	orders repositories.OrderRepository,
	addresses repositories.AddressRepository,
	variants repositories.ProductVariantRepository,
	products repositories.ProductRepository,
) OrderService {
	return &orderService{orders: orders, addresses: addresses, variants: variants, products: products}
}

func (s *orderService) Create(ctx context.Context, userID, addressID uuid.UUID, items []OrderItemInput) (*models.OrderDetail, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", common.ErrInvalidInput)
	}

	address, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("%w: address %s", common.ErrNotFound, addressID)
	}
	if address.UserID != userID {
		return nil, fmt.Errorf("%w: address does not belong to caller", common.ErrForbidden)
	}

	var total float64
	currency := ""
	orderItems := make([]*models.OrderItem, 0, len(items))
	for _, in := range items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", common.ErrInvalidInput)
		}
		variant, err := s.variants.GetByID(ctx, in.VariantID)
		if err != nil {
			return nil, fmt.Errorf("%w: variant %s", common.ErrNotFound, in.VariantID)
		}
		if !variant.IsActive {
			return nil, fmt.Errorf("%w: variant %s is not available", common.ErrInvalidInput, in.VariantID)
		}
		if currency == "" {
			product, err := s.products.GetByID(ctx, variant.ProductID)
			if err != nil {
				return nil, err
			}
			currency = product.Currency
		}
		total += variant.Price * float64(in.Quantity)
		orderItems = append(orderItems, &models.OrderItem{
			VariantID: in.VariantID,
			Quantity:  in.Quantity,
			UnitPrice: variant.Price,
		})
	}

	order := &models.Order{
		UserID:    userID,
		AddressID: addressID,
		Status:    models.OrderStatusPending,
		Total:     total,
		Currency:  currency,
	}
	if err := s.orders.Create(ctx, order, orderItems); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &models.OrderDetail{Order: *order, Items: orderItems}, nil
}

func (s *orderService) Get(ctx context.Context, orderID, callerID uuid.UUID, callerIsAdmin bool) (*models.OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", common.ErrNotFound, orderID)
	}
	if order.UserID != callerID && !callerIsAdmin {
		return nil, fmt.Errorf("%w: order belongs to another user", common.ErrForbidden)
	}

	items, err := s.orders.GetItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &models.OrderDetail{Order: *order, Items: items}, nil
}

func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	return s.orders.ListByUserID(ctx, userID, limit, offset)
}

func (s *orderService) ListAll(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	return s.orders.List(ctx, limit, offset)
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", common.ErrInvalidInput, status)
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", common.ErrNotFound, orderID)
	}
	if !models.ValidOrderTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: cannot move order from %q to %q", common.ErrInvalidInput, order.Status, status)
	}
	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: order %s", common.ErrNotFound, orderID)
	}
	return s.orders.GetByID(ctx, orderID)
}
