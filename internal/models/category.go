package models

// Category groups products in the catalog (e.g., "Shirts", "Hats").
type Category struct {
	ID       uint      `gorm:"primaryKey"`
	Name     string    `gorm:"size:255;not null"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
}
