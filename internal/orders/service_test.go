package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/bhumi-studio/bhumi-backend/internal/cart"
	"github.com/bhumi-studio/bhumi-backend/pkg/db/models"
	"github.com/bhumi-studio/bhumi-backend/pkg/enums"
	pkgerrors "github.com/bhumi-studio/bhumi-backend/pkg/errors"
	"github.com/bhumi-studio/bhumi-backend/pkg/logger"
	"github.com/bhumi-studio/bhumi-backend/pkg/pagination"
	"github.com/bhumi-studio/bhumi-backend/pkg/types"
)

func validAddress() types.ShippingAddress {
	return types.ShippingAddress{
		Name:       "Test Shopper",
		Address:    "42 Linen Lane, Apartment 3",
		City:       "Mumbai",
		PostalCode: "400001",
		Country:    "India",
		Phone:      "9876543210",
	}
}

type stubOrderRepo struct {
	created       *models.Order
	createdItems  []models.OrderItem
	createErr     error
	itemsErr      error
	found         *models.Order
	findErr       error
	statusUpdates []enums.OrderStatus
	allOrders     *OrderList
	listAllErr    error
	listAllParams *pagination.Params
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrderRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = uuid.New()
	s.created = order
	return order, nil
}

func (s *stubOrderRepo) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if s.itemsErr != nil {
		return s.itemsErr
	}
	s.createdItems = items
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.found, nil
}

func (s *stubOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.FindByID(ctx, uuid.Nil)
}

func (s *stubOrderRepo) ListForUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return &OrderList{}, nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context, params pagination.Params) (*OrderList, error) {
	if s.listAllErr != nil {
		return nil, s.listAllErr
	}
	s.listAllParams = &params
	return s.allOrders, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	s.statusUpdates = append(s.statusUpdates, status)
	return nil
}

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubCartManager struct {
	snapshot *cart.Snapshot
	getErr   error
	cleared  []string
}

func (s *stubCartManager) Get(ctx context.Context, ownerID string) (*cart.Snapshot, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.snapshot, nil
}

func (s *stubCartManager) Clear(ctx context.Context, ownerID string) error {
	s.cleared = append(s.cleared, ownerID)
	return nil
}

type stubNotifier struct {
	pushed []string
}

func (s *stubNotifier) Push(ctx context.Context, userID uuid.UUID, title, body string, severity enums.NotificationSeverity) error {
	s.pushed = append(s.pushed, title)
	return nil
}

func twoLineSnapshot() *cart.Snapshot {
	snap := &cart.Snapshot{}
	snap.Items = []cart.LineItem{
		{ProductID: uuid.New(), ProductName: "Sweater", ProductImage: "/a.jpg", UnitPriceMinor: 1000, Size: "M", Color: "Black", Quantity: 2},
		{ProductID: uuid.New(), ProductName: "Blazer", ProductImage: "/b.jpg", UnitPriceMinor: 3000, Size: "L", Color: "White", Quantity: 1},
	}
	return snap
}

func newOrdersTestService(t *testing.T, repo Repository, carts cartManager, notif notifier) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:        repo,
		Tx:          stubTxRunner{},
		CartManager: carts,
		Notifier:    notif,
		Logger:      logger.New(logger.Options{ServiceName: "orders-test", Level: zerolog.ErrorLevel}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateOrderSnapshotsTotals(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	carts := &stubCartManager{snapshot: twoLineSnapshot()}
	notif := &stubNotifier{}
	svc := newOrdersTestService(t, repo, carts, notif)
	userID := uuid.New()

	order, err := svc.Create(context.Background(), userID, CreateOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.SubtotalMinor != 5000 || order.ShippingMinor != 0 || order.TaxMinor != 900 || order.TotalMinor != 5900 {
		t.Fatalf("totals: got %d/%d/%d/%d want 5000/0/900/5900",
			order.SubtotalMinor, order.ShippingMinor, order.TaxMinor, order.TotalMinor)
	}
	if order.Status != enums.OrderStatusConfirmed {
		t.Fatalf("status: got %q want confirmed", order.Status)
	}
	if order.PaymentStatus != enums.PaymentStatusPaid {
		t.Fatalf("payment status: got %q want paid", order.PaymentStatus)
	}
	if order.OrderNumber == "" {
		t.Fatal("expected order number")
	}
	if len(repo.createdItems) != 2 {
		t.Fatalf("expected two line items persisted, got %d", len(repo.createdItems))
	}
	if len(carts.cleared) != 1 || carts.cleared[0] != userID.String() {
		t.Fatalf("expected cart cleared for %s, got %v", userID, carts.cleared)
	}
	if len(notif.pushed) != 1 {
		t.Fatalf("expected one notification, got %d", len(notif.pushed))
	}
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	carts := &stubCartManager{snapshot: &cart.Snapshot{}}
	svc := newOrdersTestService(t, repo, carts, &stubNotifier{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("no persistence call should happen for an empty cart")
	}
	if len(carts.cleared) != 0 {
		t.Fatal("cart must not clear on a rejected order")
	}
}

func TestCreateOrderRequiresAuthentication(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	carts := &stubCartManager{snapshot: twoLineSnapshot()}
	svc := newOrdersTestService(t, repo, carts, &stubNotifier{})

	_, err := svc.Create(context.Background(), uuid.Nil, CreateOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("no write should happen without a session")
	}
}

func TestCreateOrderRejectsInvalidAddress(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	carts := &stubCartManager{snapshot: twoLineSnapshot()}
	svc := newOrdersTestService(t, repo, carts, &stubNotifier{})

	address := validAddress()
	address.Phone = "123"

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderInput{
		ShippingAddress: address,
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateOrderFailedItemInsertRollsBack(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{itemsErr: gorm.ErrInvalidData}
	carts := &stubCartManager{snapshot: twoLineSnapshot()}
	svc := newOrdersTestService(t, repo, carts, &stubNotifier{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   enums.PaymentMethodCard,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if len(carts.cleared) != 0 {
		t.Fatal("cart must not clear when the transaction fails")
	}
}

func TestGetForUserHidesForeignOrders(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	repo := &stubOrderRepo{found: &models.Order{ID: uuid.New(), UserID: owner}}
	svc := newOrdersTestService(t, repo, &stubCartManager{snapshot: &cart.Snapshot{}}, &stubNotifier{})

	_, err := svc.GetForUser(context.Background(), uuid.New(), repo.found.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for foreign order, got %v", err)
	}
}

func TestGetForUserMissing(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	svc := newOrdersTestService(t, repo, &stubCartManager{snapshot: &cart.Snapshot{}}, &stubNotifier{})

	_, err := svc.GetForUser(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	order := &models.Order{ID: uuid.New(), UserID: uuid.New(), OrderNumber: "BH-20260828-AB12CD", Status: enums.OrderStatusConfirmed}
	repo := &stubOrderRepo{found: order}
	notif := &stubNotifier{}
	svc := newOrdersTestService(t, repo, &stubCartManager{snapshot: &cart.Snapshot{}}, notif)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusShipped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != enums.OrderStatusShipped {
		t.Fatalf("status: got %q want shipped", updated.Status)
	}
	if len(repo.statusUpdates) != 1 {
		t.Fatalf("expected one status update, got %d", len(repo.statusUpdates))
	}
	if len(notif.pushed) != 1 {
		t.Fatalf("expected one notification, got %d", len(notif.pushed))
	}
}

func TestListAllServesEveryShopper(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{allOrders: &OrderList{Orders: []OrderSummary{
		{ID: uuid.New(), OrderNumber: "BH-20260828-AB12CD"},
		{ID: uuid.New(), OrderNumber: "BH-20260828-EF34GH"},
	}}}
	svc := newOrdersTestService(t, repo, &stubCartManager{snapshot: &cart.Snapshot{}}, &stubNotifier{})

	list, err := svc.ListAll(context.Background(), pagination.Params{Limit: 25, Cursor: "c1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Orders) != 2 {
		t.Fatalf("expected both orders, got %d", len(list.Orders))
	}
	if repo.listAllParams == nil || repo.listAllParams.Limit != 25 || repo.listAllParams.Cursor != "c1" {
		t.Fatalf("pagination params not passed through: %+v", repo.listAllParams)
	}
}

func TestListAllWrapsRepoFailure(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{listAllErr: gorm.ErrInvalidDB}
	svc := newOrdersTestService(t, repo, &stubCartManager{snapshot: &cart.Snapshot{}}, &stubNotifier{})

	_, err := svc.ListAll(context.Background(), pagination.Params{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	repo := &stubOrderRepo{}
	svc := newOrdersTestService(t, repo, &stubCartManager{snapshot: &cart.Snapshot{}}, &stubNotifier{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatus("teleported"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
