package services

import (
	"context"
	"errors"

	"vidshare/internal/domain/category"
	"vidshare/internal/domain/user"
	"vidshare/internal/redis"
	"vidshare/internal/repository"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
)

// CategoryService is the category collaborator the upload gate consults.
// Lookups by name go through a redis read-through cache when one is
// configured; mutations require an admin and invalidate the cache.
type CategoryService struct {
	repo  repository.CategoryRepository
	cache *redis.CategoryCache // nil disables caching
}

func NewCategoryService(repo repository.CategoryRepository, cache *redis.CategoryCache) *CategoryService {
	return &CategoryService{repo: repo, cache: cache}
}

func (s *CategoryService) GetByName(ctx context.Context, name string) (category.Category, error) {
	if s.cache != nil {
		if cat, ok := s.cache.GetByName(ctx, name); ok {
			return cat, nil
		}
	}
	cat, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, vidshare_errors.ErrNotFound) {
			return category.Category{}, vidshare_errors.NotFoundf("category not found")
		}
		return category.Category{}, err
	}
	if s.cache != nil {
		s.cache.SetByName(ctx, cat)
	}
	return cat, nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]category.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, active user.Active, name, description string) (category.Category, error) {
	if !active.IsAdmin() {
		return category.Category{}, vidshare_errors.ErrForbidden
	}
	if len(name) < 2 {
		return category.Category{}, vidshare_errors.Validationf("a category name of at least 2 characters is required")
	}
	cat := category.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}
	if err := s.repo.Create(ctx, &cat); err != nil {
		return category.Category{}, err
	}
	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, active user.Active, id uuid.UUID, name, description string) (category.Category, error) {
	if !active.IsAdmin() {
		return category.Category{}, vidshare_errors.ErrForbidden
	}
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vidshare_errors.ErrNotFound) {
			return category.Category{}, vidshare_errors.NotFoundf("category not found")
		}
		return category.Category{}, err
	}
	oldName := cat.Name
	if name != "" {
		cat.Name = name
	}
	if description != "" {
		cat.Description = description
	}
	if err := s.repo.Update(ctx, cat); err != nil {
		return category.Category{}, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, oldName)
		s.cache.Invalidate(ctx, cat.Name)
	}
	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, active user.Active, id uuid.UUID) error {
	if !active.IsAdmin() {
		return vidshare_errors.ErrForbidden
	}
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vidshare_errors.ErrNotFound) {
			return vidshare_errors.NotFoundf("category not found")
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cat.Name)
	}
	return nil
}
