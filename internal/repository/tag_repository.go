package repository

import (
	"context"
	"fmt"

	"storefront/backend/internal/models"

	"gorm.io/gorm"
)

// TagRepository persists tags and reads their tagged products.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	Get(ctx context.Context, id uint) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a GORM-backed TagRepository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Only the columns exposed for tagged products are loaded.
func tagProducts(db *gorm.DB) *gorm.DB {
	return db.Select("products.id", "products.name", "products.price").Order("products.id")
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.db.WithContext(ctx).
		Preload("Products", tagProducts).
		Order("id").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) Get(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Preload("Products", tagProducts).First(&tag, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Omit("Products").Create(tag).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *tagRepository) Update(ctx context.Context, id uint, name string) error {
	db := r.db.WithContext(ctx)

	var tag models.Tag
	if err := db.First(&tag, id).Error; err != nil {
		return translate(err)
	}

	if err := db.Model(&tag).Update("name", name).Error; err != nil {
		return fmt.Errorf("update tag %d: %w", id, err)
	}
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)

	var tag models.Tag
	if err := db.First(&tag, id).Error; err != nil {
		return translate(err)
	}

	// Selecting the association removes the tag's product_tags rows along with it.
	if err := db.Select("Products").Delete(&tag).Error; err != nil {
		return fmt.Errorf("delete tag %d: %w", id, err)
	}
	return nil
}
