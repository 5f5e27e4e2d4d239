package database

import (
	"errors"
	"fmt"
	"log"

	"vidshare/internal/domain/category"
	"vidshare/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminUsername string
	Categories    []string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		AdminEmail:    "admin@vidshare.io",
		AdminPassword: "Admin@123!",
		AdminUsername: "admin",
		Categories: []string{
			"Music",
			"Gaming",
			"Sports",
			"Education",
			"Comedy",
			"Technology",
			"Travel",
			"Cooking",
		},
	}
}

// Seed creates the admin user and the default category set. It is
// idempotent: existing rows are left untouched.
func Seed(cfg *SeedConfig) error {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	log.Println("Starting database seeding...")

	if err := seedAdminUser(cfg); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := seedCategories(cfg.Categories); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func seedAdminUser(cfg *SeedConfig) error {
	var existing user.User
	err := DB.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := user.User{
		ID:           uuid.New(),
		Email:        cfg.AdminEmail,
		Username:     cfg.AdminUsername,
		PasswordHash: string(hashedPassword),
		Role:         user.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user seeded: %s (%s)", cfg.AdminEmail, admin.ID)
	return nil
}

func seedCategories(names []string) error {
	for _, name := range names {
		var existing category.Category
		err := DB.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := DB.Create(&category.Category{ID: uuid.New(), Name: name}).Error; err != nil {
			return err
		}
		log.Printf("Category seeded: %s", name)
	}
	return nil
}
