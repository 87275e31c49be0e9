package repositories

import (
	"context"
	"testing"
	"time"

	"beanmart/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func stringPtr(s string) *string { return &s }

type CategoryRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       CategoryRepository
	categoryID uuid.UUID
	context    context.Context
}

func (suite *CategoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewCategoryRepo(mock)
	suite.categoryID = uuid.New()
	suite.context = context.Background()
}

func (suite *CategoryRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestCategoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryRepoTestSuite))
}

func (suite *CategoryRepoTestSuite) TestCreate_GeneratesID() {
	category := &models.Category{
		Name:        "Single Origin",
		Slug:        "single-origin",
		Description: stringPtr("Beans from a single farm or region"),
	}

	suite.mock.ExpectExec(`INSERT INTO categories`).
		WithArgs(pgxmock.AnyArg(), category.Name, category.Slug, category.Description).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, category)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, category.ID)
}

func (suite *CategoryRepoTestSuite) TestGetBySlug_Success() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT id, name, slug, description, created_at, updated_at`).
		WithArgs("espresso-blends").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"}).
			AddRow(suite.categoryID, "Espresso Blends", "espresso-blends", stringPtr("For the machine"), now, now))

	category, err := suite.repo.GetBySlug(suite.context, "espresso-blends")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.categoryID, category.ID)
	assert.Equal(suite.T(), "Espresso Blends", category.Name)
}

func (suite *CategoryRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT id, name, slug, description, created_at, updated_at`).
		WithArgs(suite.categoryID).
		WillReturnError(pgx.ErrNoRows)

	category, err := suite.repo.GetByID(suite.context, suite.categoryID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), category)
}

func (suite *CategoryRepoTestSuite) TestList_Paginated() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "name", "slug", "description", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Decaf", "decaf", (*string)(nil), now, now).
		AddRow(uuid.New(), "Single Origin", "single-origin", (*string)(nil), now, now)

	suite.mock.ExpectQuery(`SELECT id, name, slug, description, created_at, updated_at`).
		WithArgs(20, 0).
		WillReturnRows(rows)

	categories, err := suite.repo.List(suite.context, 20, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), categories, 2)
}

func (suite *CategoryRepoTestSuite) TestUpdate_Success() {
	category := &models.Category{
		ID:   suite.categoryID,
		Name: "Filter Roasts",
		Slug: "filter-roasts",
	}

	suite.mock.ExpectExec(`UPDATE categories`).
		WithArgs(category.ID, category.Name, category.Slug, category.Description).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, category)
	assert.NoError(suite.T(), err)
}

func (suite *CategoryRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
		WithArgs(suite.categoryID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.categoryID)
	assert.NoError(suite.T(), err)
}
