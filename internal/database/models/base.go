package models

import (
	"time"

	"gorm.io/gorm"
)

// Base model with auto-increment primary key, timestamps and soft delete
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
