package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the store.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=3,max=255"`
	Description string          `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category    string          `json:"category" gorm:"type:varchar(50);index" validate:"omitempty,max=50"`
	Size        string          `json:"size" gorm:"type:varchar(10)" validate:"omitempty,max=10"`
	Color       string          `json:"color" gorm:"type:varchar(50)" validate:"omitempty,max=50"`
	Stock       int             `json:"stock" gorm:"not null;default:0" validate:"gte=0"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(500)" validate:"omitempty,url,max=500"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// CategorySummary is a catalog category with the number of live products in it.
type CategorySummary struct {
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
}
