package catalog

import (
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

// ListFilters describe the inputs supported by the product list.
type ListFilters struct {
	Category        *enums.ProductCategory
	NewArrivals     bool
	BestSellers     bool
	IncludeInactive bool
}

// CreateProductInput carries the fields accepted when an admin creates a
// product.
type CreateProductInput struct {
	Name               string                `validate:"required,min=2"`
	Description        string                `validate:"required"`
	Material           string                `validate:"required"`
	Category           enums.ProductCategory `validate:"required"`
	Subcategory        string                `validate:"required"`
	PriceMinor         int                   `validate:"required,gt=0"`
	OriginalPriceMinor *int                  `validate:"omitempty,gt=0"`
	ImageURL           string                `validate:"required"`
	Images             types.StringList
	Sizes              types.StringList `validate:"required,min=1"`
	Colors             types.ColorList  `validate:"required,min=1"`
	IsNew              bool
	IsBestSeller       bool
}

// UpdateProductInput carries the optional fields accepted on product update.
// Nil fields are left unchanged.
type UpdateProductInput struct {
	Name               *string
	Description        *string
	Material           *string
	Category           *enums.ProductCategory
	Subcategory        *string
	PriceMinor         *int
	OriginalPriceMinor *int
	ImageURL           *string
	Images             *types.StringList
	Sizes              *types.StringList
	Colors             *types.ColorList
	IsNew              *bool
	IsBestSeller       *bool
	IsActive           *bool
}
