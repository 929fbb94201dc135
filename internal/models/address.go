package models

import "time"

// Address is a shipping address owned by a single user.
type Address struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Street     string    `json:"street" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	City       string    `json:"city" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	PostalCode string    `json:"postal_code" gorm:"type:varchar(20);not null" validate:"required,max=20"`
	Country    string    `json:"country" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
