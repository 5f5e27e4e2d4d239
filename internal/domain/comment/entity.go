package comment

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/gorm"
)

// Comment represents the comments table
type Comment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	VideoID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content   string         `gorm:"not null"`
	CreatedAt time.Time      `gorm:"default:now()"`
	UpdatedAt time.Time      `gorm:"default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}
