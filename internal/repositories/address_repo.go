package repositories

import (
	"context"

	"beanmart/internal/models"

	"github.com/google/uuid"
)

type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type addressRepo struct {
	db DB
}

func NewAddressRepo(db DB) AddressRepository {
	return &addressRepo{db: db}
}

const addressColumns = `id, user_id, label, line1, line2, city, state, postal_code, country, is_default, created_at, updated_at`

func (r *addressRepo) Create(ctx context.Context, address *models.Address) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	query := `
		INSERT INTO addresses (id, user_id, label, line1, line2, city, state, postal_code, country, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		address.ID, address.UserID, address.Label, address.Line1, address.Line2,
		address.City, address.State, address.PostalCode, address.Country, address.IsDefault)
	return err
}

func (r *addressRepo) scanAddress(row interface{ Scan(dest ...any) error }) (*models.Address, error) {
	a := &models.Address{}
	err := row.Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2, &a.City, &a.State,
		&a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *addressRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`
	return r.scanAddress(r.db.QueryRow(ctx, query, id))
}

func (r *addressRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*models.Address
	for rows.Next() {
		a, err := r.scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *addressRepo) Update(ctx context.Context, address *models.Address) error {
	query := `
		UPDATE addresses
		SET label = $2, line1 = $3, line2 = $4, city = $5, state = $6,
		    postal_code = $7, country = $8, is_default = $9, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		address.ID, address.Label, address.Line1, address.Line2, address.City,
		address.State, address.PostalCode, address.Country, address.IsDefault)
	return err
}

func (r *addressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	return err
}
