package models

// Tag represents a product tag (e.g., "rock music", "blue").
type Tag struct {
	ID       uint       `gorm:"primaryKey"`
	Name     string     `gorm:"size:255;not null"`
	Products []*Product `gorm:"many2many:product_tags;"`
}
