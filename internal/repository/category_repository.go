package repository

import (
	"context"
	"errors"

	"vidshare/internal/domain/category"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	res := r.db.WithContext(ctx).Create(c)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return vidshare_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (category.Category, error) {
	var c category.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return category.Category{}, vidshare_errors.ErrNotFound
		}
		return category.Category{}, err
	}
	return c, nil
}

// GetByName is a case-sensitive exact match; the upload gate depends on
// that to decide whether a declared category exists.
func (r *PostgresCategoryRepository) GetByName(ctx context.Context, name string) (category.Category, error) {
	var c category.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return category.Category{}, vidshare_errors.ErrNotFound
		}
		return category.Category{}, err
	}
	return c, nil
}

func (r *PostgresCategoryRepository) GetAll(ctx context.Context) ([]category.Category, error) {
	var categories []category.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, c category.Category) error {
	res := r.db.WithContext(ctx).Save(&c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return vidshare_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&category.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return vidshare_errors.ErrNotFound
	}
	return nil
}
