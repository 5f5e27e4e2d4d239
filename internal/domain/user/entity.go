package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents the users table
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'USER'"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"default:now()"`
	UpdatedAt    time.Time `gorm:"default:now()"`
}

func (User) TableName() string {
	return "users"
}

// Active is the request-scoped identity resolved by the auth middleware.
// Ownership checks and storage namespacing key off it.
type Active struct {
	ID   uuid.UUID
	Role string
}

func (a Active) IsAdmin() bool {
	return a.Role == RoleAdmin
}
