package repositories

import (
	"context"

	"beanmart/internal/models"

	"github.com/google/uuid"
)

type ProductVariantRepository interface {
	Create(ctx context.Context, variant *models.ProductVariant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error)
	Update(ctx context.Context, variant *models.ProductVariant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productVariantRepo struct {
	db DB
}

func NewProductVariantRepo(db DB) ProductVariantRepository {
	return &productVariantRepo{db: db}
}

const variantColumns = `id, product_id, name, price, weight_grams, sku, stock, is_active, created_at, updated_at`

func (r *productVariantRepo) Create(ctx context.Context, variant *models.ProductVariant) error {
	if variant.ID == uuid.Nil {
		variant.ID = uuid.New()
	}
	query := `
		INSERT INTO product_variants (id, product_id, name, price, weight_grams, sku, stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		variant.ID, variant.ProductID, variant.Name, variant.Price,
		variant.WeightGrams, variant.SKU, variant.Stock, variant.IsActive)
	return err
}

func (r *productVariantRepo) scanVariant(row interface{ Scan(dest ...any) error }) (*models.ProductVariant, error) {
	v := &models.ProductVariant{}
	err := row.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.WeightGrams,
		&v.SKU, &v.Stock, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *productVariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1`
	return r.scanVariant(r.db.QueryRow(ctx, query, id))
}

func (r *productVariantRepo) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE product_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*models.ProductVariant
	for rows.Next() {
		v, err := r.scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *productVariantRepo) Update(ctx context.Context, variant *models.ProductVariant) error {
	query := `
		UPDATE product_variants
		SET name = $2, price = $3, weight_grams = $4, sku = $5, stock = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		variant.ID, variant.Name, variant.Price, variant.WeightGrams,
		variant.SKU, variant.Stock, variant.IsActive)
	return err
}

func (r *productVariantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id)
	return err
}
