package repositories

import (
	"context"
	"fmt"
	"strings"

	"beanmart/internal/models"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo struct {
	db DB
}

func NewProductRepo(db DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, category_id, roast_level_id, name, slug, description, currency, is_active, created_at, updated_at`

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	query := `
		INSERT INTO products (id, category_id, roast_level_id, name, slug, description, currency, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		product.ID, product.CategoryID, product.RoastLevelID, product.Name,
		product.Slug, product.Description, product.Currency, product.IsActive)
	return err
}

func (r *productRepo) scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.CategoryID, &p.RoastLevelID, &p.Name, &p.Slug,
		&p.Description, &p.Currency, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.scanProduct(r.db.QueryRow(ctx, query, slug))
}

// List builds a filtered listing query. Filters are combined with AND;
// the name search uses ILIKE on a parameterized pattern.
func (r *productRepo) List(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		conditions = append(conditions, "name ILIKE "+arg("%"+filter.Query+"%"))
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id = "+arg(*filter.CategoryID))
	}
	if filter.RoastLevelID != nil {
		conditions = append(conditions, "roast_level_id = "+arg(*filter.RoastLevelID))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, roast_level_id = $3, name = $4, slug = $5,
		    description = $6, currency = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		product.ID, product.CategoryID, product.RoastLevelID, product.Name,
		product.Slug, product.Description, product.Currency, product.IsActive)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}
