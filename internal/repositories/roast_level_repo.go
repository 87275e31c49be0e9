package repositories

import (
	"context"

	"beanmart/internal/models"

	"github.com/google/uuid"
)

type RoastLevelRepository interface {
	Create(ctx context.Context, roastLevel *models.RoastLevel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RoastLevel, error)
	GetBySlug(ctx context.Context, slug string) (*models.RoastLevel, error)
	List(ctx context.Context) ([]*models.RoastLevel, error)
	Update(ctx context.Context, roastLevel *models.RoastLevel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type roastLevelRepo struct {
	db DB
}

func NewRoastLevelRepo(db DB) RoastLevelRepository {
	return &roastLevelRepo{db: db}
}

func (r *roastLevelRepo) Create(ctx context.Context, roastLevel *models.RoastLevel) error {
	if roastLevel.ID == uuid.Nil {
		roastLevel.ID = uuid.New()
	}
	query := `
		INSERT INTO roast_levels (id, name, slug, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, roastLevel.ID, roastLevel.Name, roastLevel.Slug, roastLevel.Level)
	return err
}

func (r *roastLevelRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RoastLevel, error) {
	rl := &models.RoastLevel{}
	query := `
		SELECT id, name, slug, level, created_at, updated_at
		FROM roast_levels
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&rl.ID, &rl.Name, &rl.Slug, &rl.Level, &rl.CreatedAt, &rl.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rl, nil
}

func (r *roastLevelRepo) GetBySlug(ctx context.Context, slug string) (*models.RoastLevel, error) {
	rl := &models.RoastLevel{}
	query := `
		SELECT id, name, slug, level, created_at, updated_at
		FROM roast_levels
		WHERE slug = $1
	`
	err := r.db.QueryRow(ctx, query, slug).Scan(&rl.ID, &rl.Name, &rl.Slug, &rl.Level, &rl.CreatedAt, &rl.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rl, nil
}

func (r *roastLevelRepo) List(ctx context.Context) ([]*models.RoastLevel, error) {
	query := `
		SELECT id, name, slug, level, created_at, updated_at
		FROM roast_levels
		ORDER BY level ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*models.RoastLevel
	for rows.Next() {
		rl := &models.RoastLevel{}
		if err := rows.Scan(&rl.ID, &rl.Name, &rl.Slug, &rl.Level, &rl.CreatedAt, &rl.UpdatedAt); err != nil {
			return nil, err
		}
		levels = append(levels, rl)
	}
	return levels, rows.Err()
}

func (r *roastLevelRepo) Update(ctx context.Context, roastLevel *models.RoastLevel) error {
	query := `
		UPDATE roast_levels
		SET name = $2, slug = $3, level = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, roastLevel.ID, roastLevel.Name, roastLevel.Slug, roastLevel.Level)
	return err
}

func (r *roastLevelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM roast_levels WHERE id = $1`, id)
	return err
}
