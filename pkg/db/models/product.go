package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

// Product is a catalog listing. Prices are minor currency units.
type Product struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string                `gorm:"column:name;not null"`
	Description        string                `gorm:"column:description;not null"`
	Material           string                `gorm:"column:material;not null"`
	Category           enums.ProductCategory `gorm:"column:category;not null;index:products_category_idx"`
	Subcategory        string                `gorm:"column:subcategory;not null"`
	PriceMinor         int                   `gorm:"column:price_minor;not null"`
	OriginalPriceMinor *int                  `gorm:"column:original_price_minor"`
	ImageURL           string                `gorm:"column:image_url;not null"`
	Images             types.StringList      `gorm:"column:images;type:jsonb;not null"`
	Sizes              types.StringList      `gorm:"column:sizes;type:jsonb;not null"`
	Colors             types.ColorList       `gorm:"column:colors;type:jsonb;not null"`
	IsNew              bool                  `gorm:"column:is_new;not null;default:false"`
	IsBestSeller       bool                  `gorm:"column:is_best_seller;not null;default:false"`
	IsActive           bool                  `gorm:"column:is_active;not null;default:true"`
	Rating             float64               `gorm:"column:rating;not null;default:0"`
	ReviewCount        int                   `gorm:"column:review_count;not null;default:0"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
