package services

import (
	"context"
	"testing"

	"beanmart/internal/common"
	"beanmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order, items []*models.OrderItem) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderItem), args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(ctx context.Context, address *models.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockAddressRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Address), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, address *models.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type OrderServiceTestSuite struct {
	suite.Suite
	orders    *MockOrderRepository
	addresses *MockAddressRepository
	variants  *MockProductVariantRepository
	products  *MockProductRepository
	service   OrderService
	userID    uuid.UUID
	addressID uuid.UUID
	context   context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orders = &MockOrderRepository{}
	suite.addresses = &MockAddressRepository{}
	suite.variants = &MockProductVariantRepository{}
	suite.products = &MockProductRepository{}
	suite.service = NewOrderService(suite.orders, suite.addresses, suite.variants, suite.products)
	suite.userID = uuid.New()
	suite.addressID = uuid.New()
	suite.context = context.Background()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	suite.orders.AssertExpectations(suite.T())
	suite.addresses.AssertExpectations(suite.T())
	suite.variants.AssertExpectations(suite.T())
	suite.products.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) TestCreate_SnapshotsPricesAndTotal() {
	productID := uuid.New()
	variantID := uuid.New()

	suite.addresses.On("GetByID", suite.context, suite.addressID).
		Return(&models.Address{ID: suite.addressID, UserID: suite.userID}, nil)
	suite.variants.On("GetByID", suite.context, variantID).
		Return(&models.ProductVariant{ID: variantID, ProductID: productID, Price: 12.50, IsActive: true}, nil)
	suite.products.On("GetByID", suite.context, productID).
		Return(&models.Product{ID: productID, Currency: "EUR"}, nil)
	suite.orders.On("Create", suite.context, mock.AnythingOfType("*models.Order"), mock.Anything).
		Return(nil)

	detail, err := suite.service.Create(suite.context, suite.userID, suite.addressID, []OrderItemInput{
		{VariantID: variantID, Quantity: 3},
	})
	suite.NoError(err)
	suite.Equal(models.OrderStatusPending, detail.Status)
	suite.Equal(37.50, detail.Total)
	suite.Equal("EUR", detail.Currency)
	suite.Equal(12.50, detail.Items[0].UnitPrice)
}

func (suite *OrderServiceTestSuite) TestCreate_EmptyOrderRejected() {
	_, err := suite.service.Create(suite.context, suite.userID, suite.addressID, nil)
	suite.ErrorIs(err, common.ErrInvalidInput)
}

func (suite *OrderServiceTestSuite) TestCreate_ForeignAddressForbidden() {
	suite.addresses.On("GetByID", suite.context, suite.addressID).
		Return(&models.Address{ID: suite.addressID, UserID: uuid.New()}, nil)

	_, err := suite.service.Create(suite.context, suite.userID, suite.addressID, []OrderItemInput{
		{VariantID: uuid.New(), Quantity: 1},
	})
	suite.ErrorIs(err, common.ErrForbidden)
}

func (suite *OrderServiceTestSuite) TestCreate_InactiveVariantRejected() {
	variantID := uuid.New()
	suite.addresses.On("GetByID", suite.context, suite.addressID).
		Return(&models.Address{ID: suite.addressID, UserID: suite.userID}, nil)
	suite.variants.On("GetByID", suite.context, variantID).
		Return(&models.ProductVariant{ID: variantID, IsActive: false}, nil)

	_, err := suite.service.Create(suite.context, suite.userID, suite.addressID, []OrderItemInput{
		{VariantID: variantID, Quantity: 1},
	})
	suite.ErrorIs(err, common.ErrInvalidInput)
}

func (suite *OrderServiceTestSuite) TestGet_OwnerAllowed() {
	orderID := uuid.New()
	suite.orders.On("GetByID", suite.context, orderID).
		Return(&models.Order{ID: orderID, UserID: suite.userID}, nil)
	suite.orders.On("GetItems", suite.context, orderID).
		Return([]*models.OrderItem{}, nil)

	detail, err := suite.service.Get(suite.context, orderID, suite.userID, false)
	suite.NoError(err)
	suite.Equal(orderID, detail.ID)
}

func (suite *OrderServiceTestSuite) TestGet_StrangerForbidden() {
	orderID := uuid.New()
	suite.orders.On("GetByID", suite.context, orderID).
		Return(&models.Order{ID: orderID, UserID: uuid.New()}, nil)

	_, err := suite.service.Get(suite.context, orderID, suite.userID, false)
	suite.ErrorIs(err, common.ErrForbidden)
}

func (suite *OrderServiceTestSuite) TestGet_AdminBypassesOwnership() {
	orderID := uuid.New()
	suite.orders.On("GetByID", suite.context, orderID).
		Return(&models.Order{ID: orderID, UserID: uuid.New()}, nil)
	suite.orders.On("GetItems", suite.context, orderID).
		Return([]*models.OrderItem{}, nil)

	_, err := suite.service.Get(suite.context, orderID, suite.userID, true)
	suite.NoError(err)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_UnknownStatusRejected() {
	_, err := suite.service.UpdateStatus(suite.context, uuid.New(), "teleported")
	suite.ErrorIs(err, common.ErrInvalidInput)
	suite.orders.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_NotFound() {
	orderID := uuid.New()
	suite.orders.On("GetByID", suite.context, orderID).
		Return(nil, pgx.ErrNoRows)

	_, err := suite.service.UpdateStatus(suite.context, orderID, models.OrderStatusShipped)
	suite.ErrorIs(err, common.ErrNotFound)
	suite.orders.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_BackwardTransitionRejected() {
	orderID := uuid.New()
	suite.orders.On("GetByID", suite.context, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusDelivered}, nil)

	_, err := suite.service.UpdateStatus(suite.context, orderID, models.OrderStatusPending)
	suite.ErrorIs(err, common.ErrInvalidInput)
	suite.ErrorContains(err, `cannot move order from "delivered" to "pending"`)
	suite.orders.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_CancelledIsTerminal() {
	orderID := uuid.New()
	suite.orders.On("GetByID", suite.context, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusCancelled}, nil)

	_, err := suite.service.UpdateStatus(suite.context, orderID, models.OrderStatusPaid)
	suite.ErrorIs(err, common.ErrInvalidInput)
	suite.orders.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_Success() {
	orderID := uuid.New()
	suite.orders.On("GetByID", suite.context, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusPaid}, nil).Once()
	suite.orders.On("UpdateStatus", suite.context, orderID, models.OrderStatusShipped).
		Return(true, nil)
	suite.orders.On("GetByID", suite.context, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusShipped}, nil).Once()

	order, err := suite.service.UpdateStatus(suite.context, orderID, models.OrderStatusShipped)
	suite.NoError(err)
	assert.Equal(suite.T(), models.OrderStatusShipped, order.Status)
}
