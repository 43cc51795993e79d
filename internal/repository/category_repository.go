package repository

import (
	"context"
	"fmt"

	"storefront/backend/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository persists categories together with their products.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	// Update renames the category and returns the number of affected rows.
	Update(ctx context.Context, id uint, name string) (int64, error)
	// Delete removes the category, detaching its products, and returns the number of deleted rows.
	Delete(ctx context.Context, id uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a GORM-backed CategoryRepository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.WithContext(ctx).
		Preload("Products", orderByID).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Preload("Products", orderByID).First(&category, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Omit("Products").Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, id uint, name string) (int64, error) {
	db := r.db.WithContext(ctx)

	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		return 0, translate(err)
	}

	result := db.Model(&category).Update("name", name)
	if result.Error != nil {
		return 0, fmt.Errorf("update category %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return translate(err)
		}

		// Not every driver enforces ON DELETE SET NULL (SQLite needs a pragma), so detach explicitly.
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach products: %w", err)
		}

		result := tx.Delete(&category)
		if result.Error != nil {
			return fmt.Errorf("delete category %d: %w", id, result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
