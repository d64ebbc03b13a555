package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

// Order is the immutable header written at checkout. Totals are snapshotted at
// creation time and never recomputed from the line items afterwards.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string                `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx"`
	Status          enums.OrderStatus     `gorm:"column:status;not null"`
	SubtotalMinor   int                   `gorm:"column:subtotal_minor;not null"`
	ShippingMinor   int                   `gorm:"column:shipping_minor;not null"`
	TaxMinor        int                   `gorm:"column:tax_minor;not null"`
	TotalMinor      int                   `gorm:"column:total_minor;not null"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;not null"`
	PaymentMethod   enums.PaymentMethod   `gorm:"column:payment_method;not null"`
	PaymentStatus   enums.PaymentStatus   `gorm:"column:payment_status;not null"`
	Items           []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is the frozen copy of one cart line at the moment of purchase.
type OrderItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID `gorm:"column:order_id;type:uuid;not null;index:order_items_order_id_idx"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName  string    `gorm:"column:product_name;not null"`
	ProductImage string    `gorm:"column:product_image;not null"`
	Size         string    `gorm:"column:size;not null"`
	Color        string    `gorm:"column:color;not null"`
	Quantity     int       `gorm:"column:quantity;not null"`
	PriceMinor   int       `gorm:"column:price_minor;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
