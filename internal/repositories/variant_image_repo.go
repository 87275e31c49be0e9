package repositories

import (
	"context"
	"errors"

	"beanmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VariantImageRepository interface {
	Create(ctx context.Context, image *models.VariantImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error)
	GetByVariantID(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error)
	Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type variantImageRepo struct {
	db DB
}

func NewVariantImageRepo(db DB) VariantImageRepository {
	return &variantImageRepo{db: db}
}

func (r *variantImageRepo) Create(ctx context.Context, image *models.VariantImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	if image.Position <= 0 {
		image.Position = 1
	}
	query := `
		INSERT INTO variant_images (id, variant_id, url, position, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, image.ID, image.VariantID, image.URL, image.Position).Scan(&image.CreatedAt)
}

func (r *variantImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.VariantImage, error) {
	image := &models.VariantImage{}
	query := `
		SELECT id, variant_id, url, position, created_at
		FROM variant_images
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&image.ID, &image.VariantID, &image.URL, &image.Position, &image.CreatedAt)
	if err != nil {
		return nil, err
	}
	return image, nil
}

func (r *variantImageRepo) GetByVariantID(ctx context.Context, variantID uuid.UUID) ([]*models.VariantImage, error) {
	query := `
		SELECT id, variant_id, url, position, created_at
		FROM variant_images
		WHERE variant_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, variantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.VariantImage
	for rows.Next() {
		image := &models.VariantImage{}
		if err := rows.Scan(&image.ID, &image.VariantID, &image.URL, &image.Position, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

// Update applies only the provided fields and returns the updated row, or nil
// when no row matched.
func (r *variantImageRepo) Update(ctx context.Context, id uuid.UUID, update *models.VariantImageUpdate) (*models.VariantImage, error) {
	query := `
		UPDATE variant_images
		SET url = COALESCE($2, url), position = COALESCE($3, position)
		WHERE id = $1
		RETURNING id, variant_id, url, position, created_at
	`
	image := &models.VariantImage{}
	err := r.db.QueryRow(ctx, query, id, update.URL, update.Position).
		Scan(&image.ID, &image.VariantID, &image.URL, &image.Position, &image.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return image, nil
}

func (r *variantImageRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM variant_images WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
