package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/pkg/config"
	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
	"github.com/bhumi-studio/bhumi-backend/pkg/redis"
)

type snapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(ownerID string) string
}

type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Snapshot is the persisted state of one session cart. The open flag tracks
// drawer visibility and is toggled independently of line-item mutations.
type Snapshot struct {
	Engine
	Open      bool      `json:"open"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service exposes session cart operations. Carts live in Redis under the
// owner's key and expire with the session TTL.
type Service interface {
	Get(ctx context.Context, ownerID string) (*Snapshot, error)
	AddItem(ctx context.Context, ownerID string, input AddItemInput) (*Snapshot, error)
	UpdateQuantity(ctx context.Context, ownerID string, key Key, quantity int) (*Snapshot, error)
	RemoveItem(ctx context.Context, ownerID string, key Key) (*Snapshot, error)
	Clear(ctx context.Context, ownerID string) error
	SetOpen(ctx context.Context, ownerID string, open bool) (*Snapshot, error)
}

type service struct {
	store      snapshotStore
	products   productLoader
	sessionTTL time.Duration
}

// NewService builds a cart service backed by the provided stack.
func NewService(store snapshotStore, products productLoader, cfg config.CartConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &service{store: store, products: products, sessionTTL: cfg.SessionTTL}, nil
}

// AddItemInput is the payload for adding a product variant to the cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Size      string
	Color     string
	Quantity  int
}

// Get loads the owner's cart, returning an empty snapshot when none exists.
func (s *service) Get(ctx context.Context, ownerID string) (*Snapshot, error) {
	return s.load(ctx, ownerID)
}

// AddItem resolves the product, validates the variant selection, and merges
// the line into the cart with the price frozen at add time.
func (s *service) AddItem(ctx context.Context, ownerID string, input AddItemInput) (*Snapshot, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(input.Size) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size must be selected")
	}
	if strings.TrimSpace(input.Color) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color must be selected")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	if !product.Sizes.Contains(input.Size) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size is not offered for this product")
	}
	if !product.Colors.Contains(input.Color) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "color is not offered for this product")
	}

	snap, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := snap.Add(LineItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		ProductImage:   product.ImageURL,
		UnitPriceMinor: product.PriceMinor,
		Size:           input.Size,
		Color:          input.Color,
		Quantity:       input.Quantity,
	}); err != nil {
		return nil, err
	}

	if err := s.save(ctx, ownerID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// UpdateQuantity sets the quantity of a line absolutely. Values below 1
// remove the line. Unknown keys leave the cart unchanged.
func (s *service) UpdateQuantity(ctx context.Context, ownerID string, key Key, quantity int) (*Snapshot, error) {
	snap, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snap.SetQuantity(key, quantity)

	if err := s.save(ctx, ownerID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// RemoveItem deletes a line by its identity key.
func (s *service) RemoveItem(ctx context.Context, ownerID string, key Key) (*Snapshot, error) {
	snap, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snap.Remove(key)

	if err := s.save(ctx, ownerID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Clear drops the owner's cart entirely.
func (s *service) Clear(ctx context.Context, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}
	if err := s.store.Del(ctx, s.store.CartKey(ownerID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// SetOpen toggles the drawer visibility flag without touching line items.
func (s *service) SetOpen(ctx context.Context, ownerID string, open bool) (*Snapshot, error) {
	snap, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	snap.Open = open

	if err := s.save(ctx, ownerID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *service) load(ctx context.Context, ownerID string) (*Snapshot, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}

	raw, err := s.store.Get(ctx, s.store.CartKey(ownerID))
	if err != nil {
		if redis.IsNil(err) {
			return &Snapshot{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart snapshot")
	}
	return &snap, nil
}

func (s *service) save(ctx context.Context, ownerID string, snap *Snapshot) error {
	snap.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.store.Set(ctx, s.store.CartKey(ownerID), string(payload), s.sessionTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}
