package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/pkg/db"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
	pkgerrors "github.com/craftvine/craftvine-backend/pkg/errors"
)

// CartView pairs a cart with its derived total.
type CartView struct {
	Cart       *models.Cart
	TotalCents int64
}

// Service exposes cart operations. The actor is the authenticated client id,
// zero for anonymous traffic; owned carts reject any other actor.
type Service interface {
	CreateOrGetCart(ctx context.Context, clientID *uint64) (*models.Cart, error)
	GetCart(ctx context.Context, cartID, actorID uint64) (*CartView, error)
	AddItem(ctx context.Context, cartID, actorID, productID uint64, qty decimal.Decimal) (*CartView, error)
	SetItemQuantity(ctx context.Context, cartID, actorID, productID uint64, qty decimal.Decimal) (*CartView, error)
	RemoveItem(ctx context.Context, cartID, actorID, productID uint64) (*CartView, error)
	MergeCarts(ctx context.Context, targetID, sourceID, actorID uint64) (*CartView, error)
}

type service struct {
	repo      CartRepository
	tx        txRunner
	inventory inventoryOracle
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, inventory inventoryOracle) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if inventory == nil {
		return nil, fmt.Errorf("inventory oracle required")
	}
	return &service{repo: repo, tx: tx, inventory: inventory}, nil
}

// CreateOrGetCart returns the client's active cart, creating one when none
// exists. A cart the sweeper flipped to abandoned is reactivated with its
// items intact rather than replaced, since the unique index holds one cart
// per client regardless of status. Anonymous callers always get a fresh
// cart. A concurrent create for the same client loses the unique-index race
// and falls back to the winner's row, so the call is idempotent per client.
func (s *service) CreateOrGetCart(ctx context.Context, clientID *uint64) (*models.Cart, error) {
	if clientID == nil {
		created, err := s.repo.Create(ctx, &models.Cart{})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
		}
		return created, nil
	}
	if *clientID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}

	existing, err := s.repo.FindActiveByClient(ctx, *clientID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	abandoned, err := s.repo.FindAbandonedByClient(ctx, *clientID)
	if err == nil {
		if err := s.repo.UpdateStatus(ctx, abandoned.ID, enums.CartStatusActive); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reactivate cart")
		}
		abandoned.Status = enums.CartStatusActive
		return abandoned, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	owner := *clientID
	created, err := s.repo.Create(ctx, &models.Cart{ClientID: &owner})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_carts_client_id") {
			winner, findErr := s.repo.FindActiveByClient(ctx, *clientID)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load cart after create race")
			}
			return winner, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	return created, nil
}

// GetCart loads the cart and its computed total.
func (s *service) GetCart(ctx context.Context, cartID, actorID uint64) (*CartView, error) {
	if cartID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	cart, err := s.loadCart(ctx, s.repo, cartID)
	if err != nil {
		return nil, err
	}
	if err := authorize(cart, actorID); err != nil {
		return nil, err
	}
	return &CartView{Cart: cart, TotalCents: TotalCents(cart.Items)}, nil
}

// AddItem adds quantity of a product to the cart. Adding a product already in
// the cart accumulates onto the existing line. The combined quantity is
// validated against available stock before anything is written, so a rejected
// add leaves no partial line behind.
func (s *service) AddItem(ctx context.Context, cartID, actorID, productID uint64, qty decimal.Decimal) (*CartView, error) {
	if err := validateLineArgs(cartID, productID); err != nil {
		return nil, err
	}
	if !qty.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cart, err := s.lockCart(ctx, txRepo, cartID)
		if err != nil {
			return err
		}
		if err := authorize(cart, actorID); err != nil {
			return err
		}

		available, err := s.availableStock(ctx, productID)
		if err != nil {
			return err
		}

		requested := qty
		existing, err := txRepo.FindItem(ctx, cartID, productID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}
		if existing != nil {
			requested = requested.Add(existing.Quantity)
		}

		if err := checkStock(productID, available, requested); err != nil {
			return err
		}

		if err := txRepo.UpsertItem(ctx, &models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  requested,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart item")
		}
		return txRepo.Touch(ctx, cartID)
	}); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, cartID, actorID)
}

// SetItemQuantity replaces the quantity of a line the cart already holds;
// setting a product the cart never held is NotFound. Zero removes the line,
// which makes it equivalent to RemoveItem; negative values are rejected.
func (s *service) SetItemQuantity(ctx context.Context, cartID, actorID, productID uint64, qty decimal.Decimal) (*CartView, error) {
	if err := validateLineArgs(cartID, productID); err != nil {
		return nil, err
	}
	if qty.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cart, err := s.lockCart(ctx, txRepo, cartID)
		if err != nil {
			return err
		}
		if err := authorize(cart, actorID); err != nil {
			return err
		}

		if _, err := txRepo.FindItem(ctx, cartID, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}

		if qty.IsZero() {
			if err := txRepo.DeleteItem(ctx, cartID, productID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
			}
			return txRepo.Touch(ctx, cartID)
		}

		available, err := s.availableStock(ctx, productID)
		if err != nil {
			return err
		}
		if err := checkStock(productID, available, qty); err != nil {
			return err
		}

		if err := txRepo.UpsertItem(ctx, &models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  qty,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart item")
		}
		return txRepo.Touch(ctx, cartID)
	}); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, cartID, actorID)
}

// RemoveItem drops the product's line from the cart. Removing a product the
// cart does not hold is NotFound.
func (s *service) RemoveItem(ctx context.Context, cartID, actorID, productID uint64) (*CartView, error) {
	if err := validateLineArgs(cartID, productID); err != nil {
		return nil, err
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		cart, err := s.lockCart(ctx, txRepo, cartID)
		if err != nil {
			return err
		}
		if err := authorize(cart, actorID); err != nil {
			return err
		}

		if _, err := txRepo.FindItem(ctx, cartID, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
		}

		if err := txRepo.DeleteItem(ctx, cartID, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
		}
		return txRepo.Touch(ctx, cartID)
	}); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, cartID, actorID)
}

// MergeCarts folds the source cart into the target: quantities for shared
// products are summed, other lines move over, and the source cart is deleted.
// Merge happens at login, so it always requires a resolved client identity.
// Merged quantities are not re-validated against stock; checkout revalidates,
// and rechecking here would make merge results depend on merge order.
func (s *service) MergeCarts(ctx context.Context, targetID, sourceID, actorID uint64) (*CartView, error) {
	if actorID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "merging carts requires a signed-in client")
	}
	if targetID == 0 || sourceID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart ids are required")
	}
	if targetID == sourceID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot merge a cart into itself")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		// Lock in id order so two concurrent merges over the same pair
		// cannot deadlock.
		firstID, secondID := targetID, sourceID
		if sourceID < targetID {
			firstID, secondID = sourceID, targetID
		}
		if _, err := s.lockCart(ctx, txRepo, firstID); err != nil {
			return err
		}
		if _, err := s.lockCart(ctx, txRepo, secondID); err != nil {
			return err
		}

		target, err := s.loadCart(ctx, txRepo, targetID)
		if err != nil {
			return err
		}
		source, err := s.loadCart(ctx, txRepo, sourceID)
		if err != nil {
			return err
		}
		if err := authorize(target, actorID); err != nil {
			return err
		}
		if err := authorize(source, actorID); err != nil {
			return err
		}

		targetQty := make(map[uint64]decimal.Decimal, len(target.Items))
		for _, item := range target.Items {
			targetQty[item.ProductID] = item.Quantity
		}

		for _, item := range source.Items {
			qty := item.Quantity
			if held, ok := targetQty[item.ProductID]; ok {
				qty = qty.Add(held)
			}
			if err := txRepo.UpsertItem(ctx, &models.CartItem{
				CartID:    targetID,
				ProductID: item.ProductID,
				Quantity:  qty,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge cart item")
			}
		}

		if err := txRepo.DeleteCart(ctx, sourceID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete source cart")
		}
		return txRepo.Touch(ctx, targetID)
	}); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, targetID, actorID)
}

func (s *service) loadCart(ctx context.Context, repo CartRepository, cartID uint64) (*models.Cart, error) {
	cart, err := repo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func (s *service) lockCart(ctx context.Context, repo CartRepository, cartID uint64) (*models.Cart, error) {
	cart, err := repo.FindByIDForUpdate(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock cart")
	}
	return cart, nil
}

// availableStock consults the inventory oracle. An inactive product reports
// zero availability, so it fails the stock check rather than a lookup.
func (s *service) availableStock(ctx context.Context, productID uint64) (decimal.Decimal, error) {
	available, err := s.inventory.AvailableStock(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check stock")
	}
	return available, nil
}

func checkStock(productID uint64, available, requested decimal.Decimal) error {
	if requested.GreaterThan(available) {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "requested quantity exceeds available stock").
			WithDetails(map[string]any{
				"product_id":    productID,
				"max_available": available.String(),
			})
	}
	return nil
}

func authorize(cart *models.Cart, actorID uint64) error {
	if cart.ClientID == nil {
		return nil
	}
	if actorID == 0 || actorID != *cart.ClientID {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "cart belongs to another client")
	}
	return nil
}

func validateLineArgs(cartID, productID uint64) error {
	if cartID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	if productID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return nil
}
