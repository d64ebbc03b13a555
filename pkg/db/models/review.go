package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

// Review is a shopper's rating for a product.
type Review struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID          uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index:reviews_product_id_idx"`
	UserID             uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index:reviews_user_id_idx"`
	Rating             int              `gorm:"column:rating;not null"`
	Title              string           `gorm:"column:title;not null"`
	Comment            string           `gorm:"column:comment;not null"`
	Images             types.StringList `gorm:"column:images;type:jsonb;not null"`
	IsVerifiedPurchase bool             `gorm:"column:is_verified_purchase;not null;default:false"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
}
