package seed

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/pkg/db/models"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}, &models.Seller{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func countRows(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestRunSeedsCatalog(t *testing.T) {
	conn := newSeedTestDB(t)

	if err := Run(context.Background(), conn, nil); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	if got := countRows(t, conn, &models.Category{}); got != int64(len(categorySeeds)) {
		t.Fatalf("expected %d categories, got %d", len(categorySeeds), got)
	}
	if got := countRows(t, conn, &models.Seller{}); got != int64(len(sellerSeeds)) {
		t.Fatalf("expected %d sellers, got %d", len(sellerSeeds), got)
	}
	if got := countRows(t, conn, &models.Product{}); got != int64(len(productSeeds)) {
		t.Fatalf("expected %d products, got %d", len(productSeeds), got)
	}

	var weighted int64
	if err := conn.Model(&models.Product{}).
		Where("unit IN ?", []string{"gram", "kilogram", "liter", "meter"}).
		Count(&weighted).Error; err != nil {
		t.Fatalf("count weighted: %v", err)
	}
	if weighted == 0 {
		t.Fatal("expected some weight or length based products in the seed")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	conn := newSeedTestDB(t)

	if err := Run(context.Background(), conn, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before := countRows(t, conn, &models.Product{})

	if err := Run(context.Background(), conn, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if after := countRows(t, conn, &models.Product{}); after != before {
		t.Fatalf("second run changed product count from %d to %d", before, after)
	}
}
