package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductSearchFilter holds search and filter criteria for product listings.
type ProductSearchFilter struct {
	Query        string     `json:"query,omitempty"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	RoastLevelID *uuid.UUID `json:"roast_level_id,omitempty"`
	ActiveOnly   bool       `json:"active_only,omitempty"`
	Limit        int        `json:"limit,omitempty"`
	Offset       int        `json:"offset,omitempty"`
}

type Product struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CategoryID   *uuid.UUID `json:"category_id" db:"category_id"`
	RoastLevelID *uuid.UUID `json:"roast_level_id" db:"roast_level_id"`
	Name         string     `json:"name" db:"name"`
	Slug         string     `json:"slug" db:"slug"`
	Description  *string    `json:"description" db:"description"`
	Currency     string     `json:"currency" db:"currency"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// ProductDetail is a product with its variants and their images embedded,
// as returned by the public detail endpoints.
type ProductDetail struct {
	Product
	Variants []*VariantDetail `json:"variants"`
}

// VariantDetail is a variant with its images embedded.
type VariantDetail struct {
	ProductVariant
	Images []*VariantImage `json:"images"`
}
