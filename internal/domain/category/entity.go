package category

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/gorm"
)

// Category represents the categories table
type Category struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"uniqueIndex;not null"`
	Description string         `gorm:""`
	CreatedAt   time.Time      `gorm:"default:now()"`
	UpdatedAt   time.Time      `gorm:"default:now()"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Category) TableName() string {
	return "categories"
}
