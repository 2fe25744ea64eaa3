package cart

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
)

// Repository wires cart persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new cart.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.Status == "" {
		cart.Status = enums.CartStatusActive
	}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// FindByID loads a cart with its items and their products.
func (r *Repository) FindByID(ctx context.Context, id uint64) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC, cart_items.id ASC")
		}).
		Preload("Items.Product").
		First(&cart, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByIDForUpdate loads the cart row under a row lock so concurrent
// mutations of the same cart serialize. SQLite has no FOR UPDATE; its
// writer lock gives the same guarantee.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uint64) (*models.Cart, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var cart models.Cart
	if err := query.First(&cart, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindActiveByClient returns the client's active cart.
func (r *Repository) FindActiveByClient(ctx context.Context, clientID uint64) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC, cart_items.id ASC")
		}).
		Preload("Items.Product").
		Where("client_id = ? AND status = ?", clientID, enums.CartStatusActive).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindAbandonedByClient returns the client's abandoned cart, if the sweeper
// left one behind.
func (r *Repository) FindAbandonedByClient(ctx context.Context, clientID uint64) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC, cart_items.id ASC")
		}).
		Preload("Items.Product").
		Where("client_id = ? AND status = ?", clientID, enums.CartStatusAbandoned).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindItem returns the line for the given cart and product.
func (r *Repository) FindItem(ctx context.Context, cartID, productID uint64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertItem inserts the line or, when the cart already holds the product,
// replaces its quantity.
func (r *Repository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(item).Error
}

// DeleteItem removes the line for the given cart and product.
func (r *Repository) DeleteItem(ctx context.Context, cartID, productID uint64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// DeleteCart removes the cart and, via FK cascade, its items.
func (r *Repository) DeleteCart(ctx context.Context, id uint64) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Cart{}, "id = ?", id).Error
}

// UpdateStatus transitions the cart's lifecycle status.
func (r *Repository) UpdateStatus(ctx context.Context, id uint64, status enums.CartStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Touch bumps updated_at so sweepers see recent activity.
func (r *Repository) Touch(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}

// MarkAbandonedBefore flips active carts untouched since the cutoff to
// abandoned. Returns the number of carts transitioned.
func (r *Repository) MarkAbandonedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	result := conn.WithContext(ctx).
		Model(&models.Cart{}).
		Where("status = ? AND updated_at < ?", enums.CartStatusActive, cutoff).
		Updates(map[string]any{"status": enums.CartStatusAbandoned, "updated_at": time.Now().UTC()})
	return result.RowsAffected, result.Error
}

// PurgeAbandonedBefore deletes anonymous carts that were abandoned before the
// cutoff. Owned carts are kept so returning clients can pick them back up.
func (r *Repository) PurgeAbandonedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	conn = conn.WithContext(ctx)

	stale := conn.Session(&gorm.Session{NewDB: true}).
		Model(&models.Cart{}).
		Select("id").
		Where("status = ? AND client_id IS NULL AND updated_at < ?", enums.CartStatusAbandoned, cutoff)
	if err := conn.Where("cart_id IN (?)", stale).Delete(&models.CartItem{}).Error; err != nil {
		return 0, err
	}
	result := conn.
		Where("status = ? AND client_id IS NULL AND updated_at < ?", enums.CartStatusAbandoned, cutoff).
		Delete(&models.Cart{})
	return result.RowsAffected, result.Error
}
