package models

import (
	"time"

	"github.com/google/uuid"
)

// VariantImage is one image attached to a product variant. Position 1 is the
// cover image by convention; positions are an ordering hint and are not
// unique, so concurrent uploads for the same variant may collide.
type VariantImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VariantID uuid.UUID `json:"variant_id" db:"variant_id"`
	URL       string    `json:"url" db:"url"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// VariantImageUpdate carries a partial update; only non-nil fields are applied.
type VariantImageUpdate struct {
	URL      *string `json:"url"`
	Position *int    `json:"position"`
}
