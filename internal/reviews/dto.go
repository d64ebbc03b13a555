package reviews

import (
	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

// CreateReviewInput is the payload for submitting a product review.
type CreateReviewInput struct {
	ProductID uuid.UUID        `json:"product_id" validate:"required"`
	Rating    int              `json:"rating" validate:"required,min=1,max=5"`
	Title     string           `json:"title" validate:"required,min=2"`
	Comment   string           `json:"comment" validate:"required,min=2"`
	Images    types.StringList `json:"images"`
}
