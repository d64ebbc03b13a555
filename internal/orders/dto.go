package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

// CreateOrderInput is the checkout payload. The line items come from the
// shopper's cart snapshot, not from this struct.
type CreateOrderInput struct {
	ShippingAddress types.ShippingAddress `json:"shipping_address"`
	PaymentMethod   enums.PaymentMethod   `json:"payment_method" validate:"required"`
}

// OrderSummary is the shape returned in order lists.
type OrderSummary struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Status        enums.OrderStatus   `json:"status"`
	TotalMinor    int                 `json:"total_minor"`
	TotalItems    int                 `json:"total_items"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// SummaryFromModel flattens an order header for list responses.
func SummaryFromModel(order *models.Order) OrderSummary {
	var totalItems int
	for _, item := range order.Items {
		totalItems += item.Quantity
	}
	return OrderSummary{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		TotalMinor:    order.TotalMinor,
		TotalItems:    totalItems,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
	}
}
