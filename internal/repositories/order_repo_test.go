package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"beanmart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrderRepository
	userID  uuid.UUID
	orderID uuid.UUID
	context context.Context
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrderRepo(mock)
	suite.userID = uuid.New()
	suite.orderID = uuid.New()
	suite.context = context.Background()
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) TestCreate_InsertsOrderAndItems() {
	order := &models.Order{
		UserID:    suite.userID,
		AddressID: uuid.New(),
		Status:    models.OrderStatusPending,
		Total:     31.50,
		Currency:  "USD",
	}
	items := []*models.OrderItem{
		{VariantID: uuid.New(), Quantity: 2, UnitPrice: 12.50},
		{VariantID: uuid.New(), Quantity: 1, UnitPrice: 6.50},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), order.UserID, order.AddressID, order.Status, order.Total, order.Currency).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for range items {
		suite.mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.repo.Create(suite.context, order, items)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, order.ID)
	for _, item := range items {
		assert.Equal(suite.T(), order.ID, item.OrderID)
	}
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreate_ItemInsertFailureRollsBack() {
	order := &models.Order{
		UserID:    suite.userID,
		AddressID: uuid.New(),
		Status:    models.OrderStatusPending,
		Total:     12.50,
		Currency:  "USD",
	}
	items := []*models.OrderItem{{VariantID: uuid.New(), Quantity: 1, UnitPrice: 12.50}}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), order.UserID, order.AddressID, order.Status, order.Total, order.Currency).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("fk violation"))
	suite.mock.ExpectRollback()

	err := suite.repo.Create(suite.context, order, items)
	assert.Error(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestListByUserID() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "user_id", "address_id", "status", "total", "currency", "created_at", "updated_at"}).
		AddRow(suite.orderID, suite.userID, uuid.New(), models.OrderStatusPaid, 31.50, "USD", now, now)

	suite.mock.ExpectQuery(`SELECT id, user_id, address_id, status, total, currency, created_at, updated_at FROM orders WHERE user_id`).
		WithArgs(suite.userID, 20, 0).
		WillReturnRows(rows)

	orders, err := suite.repo.ListByUserID(suite.context, suite.userID, 20, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 1)
	assert.Equal(suite.T(), models.OrderStatusPaid, orders[0].Status)
}

func (suite *OrderRepoTestSuite) TestUpdateStatus_Found() {
	suite.mock.ExpectExec(`UPDATE orders SET status`).
		WithArgs(suite.orderID, models.OrderStatusShipped).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	updated, err := suite.repo.UpdateStatus(suite.context, suite.orderID, models.OrderStatusShipped)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated)
}

func (suite *OrderRepoTestSuite) TestUpdateStatus_NotFound() {
	suite.mock.ExpectExec(`UPDATE orders SET status`).
		WithArgs(suite.orderID, models.OrderStatusShipped).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := suite.repo.UpdateStatus(suite.context, suite.orderID, models.OrderStatusShipped)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), updated)
}
