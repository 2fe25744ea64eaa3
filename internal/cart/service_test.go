package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
	pkgerrors "github.com/craftvine/craftvine-backend/pkg/errors"
)

type stubRepo struct {
	nextCartID uint64
	carts      map[uint64]*models.Cart
	items      map[uint64]map[uint64]decimal.Decimal // cartID -> productID -> qty
	products   map[uint64]*models.Product            // preloaded onto read items
	failCreate error
	creates    int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		nextCartID: 1,
		carts:      map[uint64]*models.Cart{},
		items:      map[uint64]map[uint64]decimal.Decimal{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) CartRepository { return s }

func (s *stubRepo) Create(_ context.Context, cart *models.Cart) (*models.Cart, error) {
	s.creates++
	if s.failCreate != nil {
		err := s.failCreate
		s.failCreate = nil
		return nil, err
	}
	cart.ID = s.nextCartID
	s.nextCartID++
	if cart.Status == "" {
		cart.Status = enums.CartStatusActive
	}
	s.carts[cart.ID] = cart
	s.items[cart.ID] = map[uint64]decimal.Decimal{}
	return cart, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uint64) (*models.Cart, error) {
	cart, ok := s.carts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *cart
	copied.Items = nil
	for productID, qty := range s.items[id] {
		copied.Items = append(copied.Items, models.CartItem{
			CartID:    id,
			ProductID: productID,
			Quantity:  qty,
			Product:   s.products[productID],
		})
	}
	return &copied, nil
}

func (s *stubRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*models.Cart, error) {
	return s.FindByID(ctx, id)
}

func (s *stubRepo) FindActiveByClient(_ context.Context, clientID uint64) (*models.Cart, error) {
	for id, cart := range s.carts {
		if cart.ClientID != nil && *cart.ClientID == clientID && cart.Status == enums.CartStatusActive {
			return s.FindByID(context.Background(), id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindAbandonedByClient(_ context.Context, clientID uint64) (*models.Cart, error) {
	for id, cart := range s.carts {
		if cart.ClientID != nil && *cart.ClientID == clientID && cart.Status == enums.CartStatusAbandoned {
			return s.FindByID(context.Background(), id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindItem(_ context.Context, cartID, productID uint64) (*models.CartItem, error) {
	qty, ok := s.items[cartID][productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}, nil
}

func (s *stubRepo) UpsertItem(_ context.Context, item *models.CartItem) error {
	if s.items[item.CartID] == nil {
		s.items[item.CartID] = map[uint64]decimal.Decimal{}
	}
	s.items[item.CartID][item.ProductID] = item.Quantity
	return nil
}

func (s *stubRepo) DeleteItem(_ context.Context, cartID, productID uint64) error {
	delete(s.items[cartID], productID)
	return nil
}

func (s *stubRepo) DeleteCart(_ context.Context, id uint64) error {
	delete(s.carts, id)
	delete(s.items, id)
	return nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id uint64, status enums.CartStatus) error {
	if cart, ok := s.carts[id]; ok {
		cart.Status = status
	}
	return nil
}

func (s *stubRepo) Touch(_ context.Context, id uint64) error { return nil }

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubProducts struct {
	products map[uint64]*models.Product
}

func (s *stubProducts) AvailableStock(_ context.Context, id uint64) (decimal.Decimal, error) {
	product, ok := s.products[id]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	if !product.IsActive {
		return decimal.Zero, nil
	}
	return product.Stock, nil
}

func qty(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testProduct(id uint64, priceCents int, stock string, active bool) *models.Product {
	return &models.Product{
		ID:         id,
		Name:       fmt.Sprintf("product-%d", id),
		PriceCents: priceCents,
		Stock:      qty(stock),
		IsActive:   active,
	}
}

func newTestService(t *testing.T, repo *stubRepo, products map[uint64]*models.Product) Service {
	t.Helper()
	repo.products = products
	svc, err := NewService(repo, stubTx{}, &stubProducts{products: products})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func mustCreateCart(t *testing.T, svc Service, clientID *uint64) *models.Cart {
	t.Helper()
	cart, err := svc.CreateOrGetCart(context.Background(), clientID)
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}
	return cart
}

func assertErrorCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s got %s (%v)", code, typed.Code(), err)
	}
	return typed
}

func TestCreateOrGetCartIsIdempotentPerClient(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil)
	clientID := uint64(11)

	first := mustCreateCart(t, svc, &clientID)
	second := mustCreateCart(t, svc, &clientID)

	if first.ID != second.ID {
		t.Fatalf("expected the same cart, got %d and %d", first.ID, second.ID)
	}
	if repo.creates != 1 {
		t.Fatalf("expected a single insert, got %d", repo.creates)
	}
}

func TestCreateOrGetCartAnonymousAlwaysCreates(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil)

	first := mustCreateCart(t, svc, nil)
	second := mustCreateCart(t, svc, nil)

	if first.ID == second.ID {
		t.Fatal("anonymous carts should not be shared")
	}
	if first.ClientID != nil || second.ClientID != nil {
		t.Fatal("anonymous carts must have no owner")
	}
}

func TestCreateOrGetCartRecoversFromCreateRace(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil)
	clientID := uint64(7)

	// Simulate a concurrent winner: the row exists but the first lookup ran
	// before it was committed, so Create fails on the unique index.
	winner := uint64(7)
	seeded, err := repo.Create(context.Background(), &models.Cart{ClientID: &winner})
	if err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	delete(repo.carts, seeded.ID)
	repo.failCreate = fmt.Errorf(`duplicate key value violates unique constraint "idx_carts_client_id"`)
	repo.carts[seeded.ID] = seeded

	cart, err := svc.CreateOrGetCart(context.Background(), &clientID)
	if err != nil {
		t.Fatalf("create or get: %v", err)
	}
	if cart.ID != seeded.ID {
		t.Fatalf("expected the winner's cart %d, got %d", seeded.ID, cart.ID)
	}
}

func TestAddItemRejectsOverStockWithoutPhantomLine(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 2500, "4", true),
	})
	cart := mustCreateCart(t, svc, nil)

	_, err := svc.AddItem(context.Background(), cart.ID, 0, 1, qty("10"))
	typed := assertErrorCode(t, err, pkgerrors.CodeInsufficientStock)

	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if details["max_available"] != "4" {
		t.Fatalf("expected max_available 4, got %v", details["max_available"])
	}

	view, err := svc.GetCart(context.Background(), cart.ID, 0)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(view.Cart.Items) != 0 {
		t.Fatalf("rejected add must not leave a line behind, got %d items", len(view.Cart.Items))
	}
}

func TestAddItemAccumulatesAgainstStock(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 900, "1", true),
	})
	cart := mustCreateCart(t, svc, nil)

	if _, err := svc.AddItem(context.Background(), cart.ID, 0, 1, qty("1")); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := svc.AddItem(context.Background(), cart.ID, 0, 1, qty("1"))
	assertErrorCode(t, err, pkgerrors.CodeInsufficientStock)

	view, err := svc.GetCart(context.Background(), cart.ID, 0)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(view.Cart.Items) != 1 || !view.Cart.Items[0].Quantity.Equal(qty("1")) {
		t.Fatalf("existing line must be untouched, got %+v", view.Cart.Items)
	}
}

func TestAddItemSupportsFractionalQuantities(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 1999, "2.500", true), // per kilogram
	})
	cart := mustCreateCart(t, svc, nil)

	view, err := svc.AddItem(context.Background(), cart.ID, 0, 1, qty("0.750"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !view.Cart.Items[0].Quantity.Equal(qty("0.750")) {
		t.Fatalf("unexpected quantity %s", view.Cart.Items[0].Quantity)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 100, "5", true),
	})
	cart := mustCreateCart(t, svc, nil)

	_, err := svc.AddItem(context.Background(), cart.ID, 0, 1, decimal.Zero)
	assertErrorCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.AddItem(context.Background(), cart.ID, 0, 1, qty("-1"))
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestAddItemRejectsUnknownAndInactiveProducts(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		2: testProduct(2, 100, "5", false),
	})
	cart := mustCreateCart(t, svc, nil)

	_, err := svc.AddItem(context.Background(), cart.ID, 0, 99, qty("1"))
	assertErrorCode(t, err, pkgerrors.CodeNotFound)

	// An inactive product sells as zero stock, so any quantity overshoots.
	_, err = svc.AddItem(context.Background(), cart.ID, 0, 2, qty("1"))
	typed := assertErrorCode(t, err, pkgerrors.CodeInsufficientStock)
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if details["max_available"] != "0" {
		t.Fatalf("expected max_available 0, got %v", details["max_available"])
	}
}

func TestSetItemQuantityZeroEqualsRemove(t *testing.T) {
	repo := newStubRepo()
	products := map[uint64]*models.Product{
		1: testProduct(1, 100, "10", true),
	}
	svc := newTestService(t, repo, products)
	cart := mustCreateCart(t, svc, nil)

	if _, err := svc.AddItem(context.Background(), cart.ID, 0, 1, qty("3")); err != nil {
		t.Fatalf("add: %v", err)
	}
	viewAfterSet, err := svc.SetItemQuantity(context.Background(), cart.ID, 0, 1, decimal.Zero)
	if err != nil {
		t.Fatalf("set zero: %v", err)
	}
	if len(viewAfterSet.Cart.Items) != 0 {
		t.Fatalf("set-to-zero should drop the line, got %+v", viewAfterSet.Cart.Items)
	}

	// Same starting state, removed instead.
	cart2 := mustCreateCart(t, svc, nil)
	if _, err := svc.AddItem(context.Background(), cart2.ID, 0, 1, qty("3")); err != nil {
		t.Fatalf("add: %v", err)
	}
	viewAfterRemove, err := svc.RemoveItem(context.Background(), cart2.ID, 0, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(viewAfterRemove.Cart.Items) != 0 {
		t.Fatalf("remove should drop the line, got %+v", viewAfterRemove.Cart.Items)
	}
}

func TestSetItemQuantityRejectsNegative(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 100, "10", true),
	})
	cart := mustCreateCart(t, svc, nil)

	_, err := svc.SetItemQuantity(context.Background(), cart.ID, 0, 1, qty("-2"))
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestSetItemQuantityValidatesStock(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 100, "5", true),
	})
	cart := mustCreateCart(t, svc, nil)

	if _, err := svc.AddItem(context.Background(), cart.ID, 0, 1, qty("2")); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := svc.SetItemQuantity(context.Background(), cart.ID, 0, 1, qty("6"))
	assertErrorCode(t, err, pkgerrors.CodeInsufficientStock)

	view, err := svc.SetItemQuantity(context.Background(), cart.ID, 0, 1, qty("5"))
	if err != nil {
		t.Fatalf("set to max: %v", err)
	}
	if !view.Cart.Items[0].Quantity.Equal(qty("5")) {
		t.Fatalf("unexpected quantity %s", view.Cart.Items[0].Quantity)
	}
}

func TestRemoveItemAbsentProductIsNotFound(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil)
	cart := mustCreateCart(t, svc, nil)

	_, err := svc.RemoveItem(context.Background(), cart.ID, 0, 42)
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}

func TestSetItemQuantityAbsentProductIsNotFound(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 100, "10", true),
	})
	cart := mustCreateCart(t, svc, nil)

	_, err := svc.SetItemQuantity(context.Background(), cart.ID, 0, 1, qty("2"))
	assertErrorCode(t, err, pkgerrors.CodeNotFound)

	// The rejected set must not sneak a line into the cart.
	view, err := svc.GetCart(context.Background(), cart.ID, 0)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(view.Cart.Items) != 0 {
		t.Fatalf("unexpected items %+v", view.Cart.Items)
	}
}

func TestOwnedCartRejectsOtherActors(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 100, "5", true),
	})
	owner := uint64(3)
	cart := mustCreateCart(t, svc, &owner)

	_, err := svc.GetCart(context.Background(), cart.ID, 8)
	assertErrorCode(t, err, pkgerrors.CodeUnauthorized)

	_, err = svc.AddItem(context.Background(), cart.ID, 0, 1, qty("1"))
	assertErrorCode(t, err, pkgerrors.CodeUnauthorized)

	if _, err := svc.AddItem(context.Background(), cart.ID, owner, 1, qty("1")); err != nil {
		t.Fatalf("owner add: %v", err)
	}
}

func TestMergeCartsSumsSharedAndMovesDistinct(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 1000, "100", true),
		2: testProduct(2, 500, "100", true),
		3: testProduct(3, 250, "100", true),
	})
	target := mustCreateCart(t, svc, nil)
	source := mustCreateCart(t, svc, nil)

	if _, err := svc.AddItem(context.Background(), target.ID, 0, 1, qty("2")); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), source.ID, 0, 1, qty("3")); err != nil {
		t.Fatalf("seed source shared: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), source.ID, 0, 2, qty("1")); err != nil {
		t.Fatalf("seed source distinct: %v", err)
	}

	view, err := svc.MergeCarts(context.Background(), target.ID, source.ID, 5)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	got := map[uint64]string{}
	for _, item := range view.Cart.Items {
		got[item.ProductID] = item.Quantity.String()
	}
	if got[1] != "5" {
		t.Fatalf("shared product should sum to 5, got %s", got[1])
	}
	if got[2] != "1" {
		t.Fatalf("distinct product should move, got %s", got[2])
	}

	if _, err := svc.GetCart(context.Background(), source.ID, 0); err == nil {
		t.Fatal("source cart should be gone after merge")
	} else {
		assertErrorCode(t, err, pkgerrors.CodeNotFound)
	}
}

func TestMergeCartsDoesNotRevalidateStock(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 1000, "4", true),
	})
	target := mustCreateCart(t, svc, nil)
	source := mustCreateCart(t, svc, nil)

	if _, err := svc.AddItem(context.Background(), target.ID, 0, 1, qty("3")); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), source.ID, 0, 1, qty("3")); err != nil {
		t.Fatalf("seed source: %v", err)
	}

	view, err := svc.MergeCarts(context.Background(), target.ID, source.ID, 5)
	if err != nil {
		t.Fatalf("merge over stock must succeed, checkout revalidates: %v", err)
	}
	if !view.Cart.Items[0].Quantity.Equal(qty("6")) {
		t.Fatalf("expected summed quantity 6, got %s", view.Cart.Items[0].Quantity)
	}
}

func TestMergeCartsRejectsSelfMerge(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil)
	cart := mustCreateCart(t, svc, nil)

	_, err := svc.MergeCarts(context.Background(), cart.ID, cart.ID, 5)
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestMergeCartsMissingSource(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil)
	cart := mustCreateCart(t, svc, nil)

	_, err := svc.MergeCarts(context.Background(), cart.ID, 999, 5)
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}

func TestMergeCartsRequiresSignedInActor(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 1000, "100", true),
	})
	target := mustCreateCart(t, svc, nil)
	source := mustCreateCart(t, svc, nil)

	if _, err := svc.AddItem(context.Background(), source.ID, 0, 1, qty("2")); err != nil {
		t.Fatalf("seed source: %v", err)
	}

	_, err := svc.MergeCarts(context.Background(), target.ID, source.ID, 0)
	assertErrorCode(t, err, pkgerrors.CodeUnauthorized)

	// Nothing moved and the source survived.
	targetView, err := svc.GetCart(context.Background(), target.ID, 0)
	if err != nil {
		t.Fatalf("get target: %v", err)
	}
	if len(targetView.Cart.Items) != 0 {
		t.Fatalf("target should be untouched, got %+v", targetView.Cart.Items)
	}
	if _, err := svc.GetCart(context.Background(), source.ID, 0); err != nil {
		t.Fatalf("source should still exist: %v", err)
	}
}

func TestCreateOrGetCartResumesAbandonedCart(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 100, "10", true),
	})
	clientID := uint64(21)
	cart := mustCreateCart(t, svc, &clientID)
	if _, err := svc.AddItem(context.Background(), cart.ID, clientID, 1, qty("2")); err != nil {
		t.Fatalf("add: %v", err)
	}

	// The inactivity sweeper flipped the cart while the client was away.
	if err := repo.UpdateStatus(context.Background(), cart.ID, enums.CartStatusAbandoned); err != nil {
		t.Fatalf("abandon: %v", err)
	}

	resumed, err := svc.CreateOrGetCart(context.Background(), &clientID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.ID != cart.ID {
		t.Fatalf("expected the same cart %d back, got %d", cart.ID, resumed.ID)
	}
	if resumed.Status != enums.CartStatusActive {
		t.Fatalf("expected an active cart, got %s", resumed.Status)
	}
	if len(resumed.Items) != 1 || !resumed.Items[0].Quantity.Equal(qty("2")) {
		t.Fatalf("items should survive the resume, got %+v", resumed.Items)
	}
	if repo.creates != 1 {
		t.Fatalf("resume must not insert a new cart, creates = %d", repo.creates)
	}
}

func TestGetCartComputesTotal(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, map[uint64]*models.Product{
		1: testProduct(1, 1999, "10", true),
		2: testProduct(2, 450, "10", true),
	})
	cart := mustCreateCart(t, svc, nil)

	if _, err := svc.AddItem(context.Background(), cart.ID, 0, 1, qty("0.750")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), cart.ID, 0, 2, qty("2")); err != nil {
		t.Fatalf("add: %v", err)
	}

	view, err := svc.GetCart(context.Background(), cart.ID, 0)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}

	// 0.750 * 1999 + 2 * 450 = 1499.25 + 900 = 2399.25, rounds to 2399.
	if view.TotalCents != 2399 {
		t.Fatalf("expected total 2399, got %d", view.TotalCents)
	}
}
