// Package seed loads the sample storefront catalog.
package seed

import (
	"context"
	"fmt"

	"storefront/backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type productSeed struct {
	name     string
	price    string
	stock    int
	category string
	tags     []string
}

var categoryNames = []string{"Shirts", "Shorts", "Music", "Hats", "Shoes"}

var tagNames = []string{"rock music", "pop music", "blue", "red", "green", "white", "gold", "pop culture"}

var products = []productSeed{
	{"Plain T-Shirt", "14.99", 14, "Shirts", []string{"white", "gold", "pop culture"}},
	{"Running Sneakers", "90.00", 25, "Shoes", []string{"white"}},
	{"Branded Baseball Hat", "22.99", 12, "Hats", []string{"rock music", "blue", "red", "green"}},
	{"Top 40 Music Compilation Vinyl Record", "12.99", 50, "Music", []string{"rock music", "pop music", "pop culture"}},
	{"Cargo Shorts", "29.99", 22, "Shorts", []string{"blue"}},
}

// Result summarizes what Run inserted.
type Result struct {
	Categories int
	Products   int
	Tags       int
	Skipped    bool
}

// Run inserts the sample catalog in one transaction. It does nothing when categories already exist.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) (Result, error) {
	var result Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Category{}).Count(&existing).Error; err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		if existing > 0 {
			result.Skipped = true
			return nil
		}

		categories := make(map[string]*models.Category, len(categoryNames))
		for _, name := range categoryNames {
			category := &models.Category{Name: name}
			if err := tx.Create(category).Error; err != nil {
				return fmt.Errorf("create category %q: %w", name, err)
			}
			categories[name] = category
		}

		tags := make(map[string]*models.Tag, len(tagNames))
		for _, name := range tagNames {
			tag := &models.Tag{Name: name}
			if err := tx.Create(tag).Error; err != nil {
				return fmt.Errorf("create tag %q: %w", name, err)
			}
			tags[name] = tag
		}

		for _, p := range products {
			price, err := decimal.NewFromString(p.price)
			if err != nil {
				return fmt.Errorf("price of %q: %w", p.name, err)
			}

			product := models.Product{
				Name:       p.name,
				Price:      price,
				Stock:      p.stock,
				CategoryID: &categories[p.category].ID,
			}
			for _, t := range p.tags {
				product.Tags = append(product.Tags, tags[t])
			}

			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("create product %q: %w", p.name, err)
			}
		}

		result.Categories = len(categoryNames)
		result.Tags = len(tagNames)
		result.Products = len(products)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if result.Skipped {
		log.Info("Catalog already seeded, skipping")
	} else {
		log.Info("Catalog seeded",
			zap.Int("categories", result.Categories),
			zap.Int("products", result.Products),
			zap.Int("tags", result.Tags),
		)
	}
	return result, nil
}
