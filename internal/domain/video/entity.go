package video

import (
	"time"

	"vidshare/internal/domain/category"
	"vidshare/internal/domain/user"

	"github.com/google/uuid"

	"gorm.io/gorm"
)

// Video represents the videos table.
//
// FilePath always points to a readable file for any non-deleted row: a row
// is only created after the upload has been written durably, and only
// updated after a replacement file is in place.
type Video struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"not null"`
	Description string         `gorm:"not null"`
	FilePath    string         `gorm:"not null"`
	Thumbnail   string         `gorm:""`
	NumLikes    int            `gorm:"not null;default:0"`
	CreatedAt   time.Time      `gorm:"default:now()"`
	UpdatedAt   time.Time      `gorm:"default:now()"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	User     user.User         `gorm:"foreignKey:UserID"`
	Category category.Category `gorm:"foreignKey:CategoryID"`
}

func (Video) TableName() string {
	return "videos"
}

// Sort keys accepted by the list endpoints.
const (
	OrderByDate     = "date"
	OrderByCategory = "category"
	OrderByID       = "id"
	OrderByLikes    = "likes"
	OrderByTitle    = "title"
)

// Pagination carries the page/limit/order parameters threaded through
// every list endpoint.
type Pagination struct {
	Page    int
	Limit   int
	Order   string // "asc" or "desc"
	OrderBy string
}

func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.PageSize()
}

func (p Pagination) PageSize() int {
	if p.Limit < 1 {
		return 10
	}
	return p.Limit
}
