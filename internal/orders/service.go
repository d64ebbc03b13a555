package orders

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/internal/cart"
	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
	"github.com/bhumi-studio/bhumi-backend/pkg/logger"
	"github.com/bhumi-studio/bhumi-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartManager interface {
	Get(ctx context.Context, ownerID string) (*cart.Snapshot, error)
	Clear(ctx context.Context, ownerID string) error
}

type notifier interface {
	Push(ctx context.Context, userID uuid.UUID, title, body string, severity enums.NotificationSeverity) error
}

// Service exposes checkout and order reads.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*models.Order, error)
	GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListAll(ctx context.Context, params pagination.Params) (*OrderList, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	carts    cartManager
	notifier notifier
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo        Repository
	Tx          txRunner
	CartManager cartManager
	Notifier    notifier
	Logger      *logger.Logger
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.CartManager == nil {
		return nil, fmt.Errorf("cart manager is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:     params.Repo,
		tx:       params.Tx,
		carts:    params.CartManager,
		notifier: params.Notifier,
		logg:     params.Logger,
	}, nil
}

// Create snapshots the shopper's cart into an immutable order. Header and
// line items are written in a single transaction so a failed item insert can
// never leave an orphaned header behind. The cart clears only after the
// commit succeeds.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to place an order")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	if err := input.ShippingAddress.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping address").
			WithDetails(err.Error())
	}

	snap, err := s.carts.Get(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if len(snap.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	totals := snap.Totals()

	order := &models.Order{
		OrderNumber:     newOrderNumber(),
		UserID:          userID,
		Status:          enums.OrderStatusConfirmed,
		SubtotalMinor:   totals.SubtotalMinor,
		ShippingMinor:   totals.ShippingMinor,
		TaxMinor:        totals.TaxMinor,
		TotalMinor:      totals.TotalMinor,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   enums.PaymentStatusPaid,
	}

	items := make([]models.OrderItem, 0, len(snap.Items))
	for _, line := range snap.Items {
		items = append(items, models.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			Size:         line.Size,
			Color:        line.Color,
			Quantity:     line.Quantity,
			PriceMinor:   line.UnitPriceMinor,
		})
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.CreateOrder(ctx, order)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = created.ID
		}
		return txRepo.CreateOrderItems(ctx, items)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}
	order.Items = items

	// The order is committed at this point. A failed cart clear only means
	// the shopper sees stale cart contents, so log it and move on.
	if err := s.carts.Clear(ctx, userID.String()); err != nil {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"order_number": order.OrderNumber,
			"error":        err.Error(),
		})
		s.logg.Warn(warnCtx, "clearing cart after checkout failed")
	}

	s.notify(ctx, userID,
		"Order placed successfully!",
		fmt.Sprintf("Your order %s has been confirmed.", order.OrderNumber),
		enums.NotificationSeverityNormal,
	)

	return order, nil
}

// GetForUser returns the order if it exists and belongs to the user. Orders
// owned by someone else read as not found.
func (s *service) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view orders")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view orders")
	}
	list, err := s.repo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// ListAll serves the back-office order table, every shopper included.
func (s *service) ListAll(ctx context.Context, params pagination.Params) (*OrderList, error) {
	list, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// UpdateStatus moves an order through the fulfillment states. Totals stay
// frozen; only the status column changes.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = status

	s.notify(ctx, order.UserID,
		"Order update",
		fmt.Sprintf("Order %s is now %s.", order.OrderNumber, status),
		enums.NotificationSeverityNormal,
	)

	return order, nil
}

func (s *service) notify(ctx context.Context, userID uuid.UUID, title, body string, severity enums.NotificationSeverity) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Push(ctx, userID, title, body, severity); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pushing order notification failed")
	}
}

// newOrderNumber produces a shopper-facing reference like BH-20260828-3F2A9C.
func newOrderNumber() string {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// time-derived suffix if it somehow does.
		return fmt.Sprintf("BH-%s-%06d", time.Now().UTC().Format("20060102"), time.Now().UnixNano()%1000000)
	}
	return fmt.Sprintf("BH-%s-%s", time.Now().UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(suffix)))
}
