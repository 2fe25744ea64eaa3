package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
)

func newCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Category{},
		&models.Seller{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	))
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, priceCents int) *models.Product {
	t.Helper()
	product := &models.Product{
		SellerID:   1,
		CategoryID: 1,
		Name:       name,
		Unit:       enums.ProductUnitPiece,
		PriceCents: priceCents,
		Stock:      decimal.RequireFromString("10"),
		IsActive:   true,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestRepositoryUpsertItemReplacesOnConflict(t *testing.T) {
	conn := newCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "olive soap", 450)
	cart, err := repo.Create(ctx, &models.Cart{})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{
		CartID: cart.ID, ProductID: product.ID, Quantity: decimal.RequireFromString("1"),
	}))
	require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{
		CartID: cart.ID, ProductID: product.ID, Quantity: decimal.RequireFromString("3"),
	}))

	var count int64
	require.NoError(t, conn.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "expected one row per product")

	item, err := repo.FindItem(ctx, cart.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, item.Quantity.Equal(decimal.RequireFromString("3")), "expected quantity 3, got %s", item.Quantity)
}

func TestRepositoryFindByIDPreloadsPricedItems(t *testing.T) {
	conn := newCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	first := seedProduct(t, conn, "walnut board", 5800)
	second := seedProduct(t, conn, "linen napkin", 1200)
	cart, err := repo.Create(ctx, &models.Cart{})
	require.NoError(t, err)
	for _, p := range []*models.Product{first, second} {
		require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{
			CartID: cart.ID, ProductID: p.ID, Quantity: decimal.RequireFromString("1"),
		}))
	}

	loaded, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	for _, item := range loaded.Items {
		require.NotNil(t, item.Product, "item %d has no preloaded product", item.ProductID)
	}
	assert.Equal(t, first.ID, loaded.Items[0].ProductID, "expected insertion order")
	assert.Equal(t, int64(7000), TotalCents(loaded.Items))
}

func TestRepositoryFindByClientFollowsStatus(t *testing.T) {
	conn := newCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	clientID := uint64(9)
	cart, err := repo.Create(ctx, &models.Cart{ClientID: &clientID})
	require.NoError(t, err)

	found, err := repo.FindActiveByClient(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)
	_, err = repo.FindAbandonedByClient(ctx, clientID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.UpdateStatus(ctx, cart.ID, enums.CartStatusAbandoned))

	_, err = repo.FindActiveByClient(ctx, clientID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	stale, err := repo.FindAbandonedByClient(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, stale.ID)

	_, err = repo.FindActiveByClient(ctx, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestServiceResumesCartTheSweeperAbandoned(t *testing.T) {
	conn := newCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "woven basket", 3400)
	clientID := uint64(15)
	svc, err := NewService(repo, stubTx{}, &stubProducts{products: map[uint64]*models.Product{
		product.ID: product,
	}})
	require.NoError(t, err)

	cart, err := svc.CreateOrGetCart(ctx, &clientID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, clientID, product.ID, decimal.RequireFromString("2"))
	require.NoError(t, err)

	// Inactivity sweep while the client is away.
	backdateCart(t, conn, cart.ID, time.Now().UTC().Add(-48*time.Hour))
	swept, err := repo.MarkAbandonedBefore(ctx, nil, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), swept)

	resumed, err := svc.CreateOrGetCart(ctx, &clientID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, resumed.ID)
	assert.Equal(t, enums.CartStatusActive, resumed.Status)
	require.Len(t, resumed.Items, 1)
	assert.True(t, resumed.Items[0].Quantity.Equal(decimal.RequireFromString("2")))
}

func TestRepositoryDeleteCartRemovesItems(t *testing.T) {
	conn := newCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "ceramic mug", 2200)
	cart, err := repo.Create(ctx, &models.Cart{})
	require.NoError(t, err)
	require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{
		CartID: cart.ID, ProductID: product.ID, Quantity: decimal.RequireFromString("2"),
	}))

	require.NoError(t, repo.DeleteCart(ctx, cart.ID))

	_, err = repo.FindByID(ctx, cart.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	var count int64
	require.NoError(t, conn.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.Zero(t, count, "expected orphaned items removed")
}

func TestRepositoryFindByIDForUpdateWorksWithoutPostgres(t *testing.T) {
	conn := newCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	cart, err := repo.Create(ctx, &models.Cart{})
	require.NoError(t, err)
	locked, err := repo.FindByIDForUpdate(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, locked.ID)
}

func backdateCart(t *testing.T, conn *gorm.DB, id uint64, at time.Time) {
	t.Helper()
	require.NoError(t, conn.Model(&models.Cart{}).Where("id = ?", id).
		UpdateColumn("updated_at", at).Error)
}

func TestRepositoryMarkAbandonedBefore(t *testing.T) {
	conn := newCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	stale, err := repo.Create(ctx, &models.Cart{})
	require.NoError(t, err)
	backdateCart(t, conn, stale.ID, time.Now().UTC().Add(-48*time.Hour))
	fresh, err := repo.Create(ctx, &models.Cart{})
	require.NoError(t, err)

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	swept, err := repo.MarkAbandonedBefore(ctx, nil, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	loaded, err := repo.FindByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.CartStatusAbandoned, loaded.Status)

	untouched, err := repo.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.CartStatusActive, untouched.Status)
}

func TestRepositoryPurgeAbandonedBeforeKeepsOwnedCarts(t *testing.T) {
	conn := newCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "beeswax candle", 900)

	anon, err := repo.Create(ctx, &models.Cart{})
	require.NoError(t, err)
	require.NoError(t, repo.UpsertItem(ctx, &models.CartItem{
		CartID: anon.ID, ProductID: product.ID, Quantity: decimal.RequireFromString("1"),
	}))
	require.NoError(t, repo.UpdateStatus(ctx, anon.ID, enums.CartStatusAbandoned))
	backdateCart(t, conn, anon.ID, time.Now().UTC().Add(-48*time.Hour))

	clientID := uint64(3)
	owned, err := repo.Create(ctx, &models.Cart{ClientID: &clientID})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, owned.ID, enums.CartStatusAbandoned))
	backdateCart(t, conn, owned.ID, time.Now().UTC().Add(-48*time.Hour))

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	purged, err := repo.PurgeAbandonedBefore(ctx, nil, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.FindByID(ctx, anon.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	var orphans int64
	require.NoError(t, conn.Model(&models.CartItem{}).Where("cart_id = ?", anon.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	kept, err := repo.FindByID(ctx, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.CartStatusAbandoned, kept.Status)
}
