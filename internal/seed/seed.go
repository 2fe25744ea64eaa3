// Package seed loads the demo catalog used for local development and review
// environments. Running it twice is safe: rows are matched on their natural
// keys and only inserted when missing.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/internal/categories"
	"github.com/craftvine/craftvine-backend/pkg/db/models"
	"github.com/craftvine/craftvine-backend/pkg/enums"
	"github.com/craftvine/craftvine-backend/pkg/logger"
)

type categorySeed struct {
	Name        string
	Description string
}

type sellerSeed struct {
	Email    string
	ShopName string
	Bio      string
	Region   string
}

type productSeed struct {
	Seller     string // seller email
	Category   string // category name
	Name       string
	Desc       string
	Tags       []string
	Unit       enums.ProductUnit
	PriceCents int
	Stock      string
}

// Run inserts any missing catalog rows. Existing rows are left untouched.
func Run(ctx context.Context, conn *gorm.DB, logg *logger.Logger) error {
	categoryIDs, err := seedCategories(ctx, conn)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	sellerIDs, err := seedSellers(ctx, conn)
	if err != nil {
		return fmt.Errorf("seed sellers: %w", err)
	}
	inserted, err := seedProducts(ctx, conn, sellerIDs, categoryIDs)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"categories":        len(categoryIDs),
			"sellers":           len(sellerIDs),
			"products_inserted": inserted,
		})
		logg.Info(ctx, "catalog seed complete")
	}
	return nil
}

func seedCategories(ctx context.Context, conn *gorm.DB) (map[string]uint64, error) {
	ids := make(map[string]uint64, len(categorySeeds))
	for _, seedRow := range categorySeeds {
		desc := seedRow.Description
		row := models.Category{
			Name:        seedRow.Name,
			Slug:        categories.Slugify(seedRow.Name),
			Description: &desc,
		}
		if err := conn.WithContext(ctx).
			Where("slug = ?", row.Slug).
			FirstOrCreate(&row).Error; err != nil {
			return nil, err
		}
		ids[seedRow.Name] = row.ID
	}
	return ids, nil
}

func seedSellers(ctx context.Context, conn *gorm.DB) (map[string]uint64, error) {
	ids := make(map[string]uint64, len(sellerSeeds))
	for _, seedRow := range sellerSeeds {
		bio := seedRow.Bio
		region := seedRow.Region
		row := models.Seller{
			Email:    seedRow.Email,
			ShopName: seedRow.ShopName,
			Bio:      &bio,
			Region:   &region,
			IsActive: true,
		}
		if err := conn.WithContext(ctx).
			Where("email = ?", row.Email).
			FirstOrCreate(&row).Error; err != nil {
			return nil, err
		}
		ids[seedRow.Email] = row.ID
	}
	return ids, nil
}

func seedProducts(ctx context.Context, conn *gorm.DB, sellerIDs, categoryIDs map[string]uint64) (int, error) {
	inserted := 0
	for _, seedRow := range productSeeds {
		sellerID, ok := sellerIDs[seedRow.Seller]
		if !ok {
			return inserted, fmt.Errorf("product %q references unknown seller %q", seedRow.Name, seedRow.Seller)
		}
		categoryID, ok := categoryIDs[seedRow.Category]
		if !ok {
			return inserted, fmt.Errorf("product %q references unknown category %q", seedRow.Name, seedRow.Category)
		}

		desc := seedRow.Desc
		row := models.Product{
			SellerID:    sellerID,
			CategoryID:  categoryID,
			Name:        seedRow.Name,
			Description: &desc,
			Tags:        seedRow.Tags,
			Unit:        seedRow.Unit,
			PriceCents:  seedRow.PriceCents,
			Stock:       decimal.RequireFromString(seedRow.Stock),
			IsActive:    true,
		}
		result := conn.WithContext(ctx).
			Where("seller_id = ? AND name = ?", sellerID, seedRow.Name).
			FirstOrCreate(&row)
		if result.Error != nil {
			return inserted, result.Error
		}
		inserted += int(result.RowsAffected)
	}
	return inserted, nil
}
