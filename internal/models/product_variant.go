package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is a purchasable SKU-level configuration of a product
// (bag size, grind and so on).
type ProductVariant struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	WeightGrams *int      `json:"weight_grams" db:"weight_grams"`
	SKU         *string   `json:"sku" db:"sku"`
	Stock       int       `json:"stock" db:"stock"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
