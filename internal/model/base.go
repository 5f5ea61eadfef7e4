package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel carries the audit columns shared by every persisted entity.
// Rows are soft-deleted so interaction history survives resource removal.
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
