package repository

import (
	"context"
	"errors"
	"strings"

	"vidshare/internal/domain/video"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresVideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &PostgresVideoRepository{db: db}
}

func (r *PostgresVideoRepository) Create(ctx context.Context, v *video.Video) error {
	res := r.db.WithContext(ctx).Create(v)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return vidshare_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (video.Video, error) {
	var v video.Video
	err := r.db.WithContext(ctx).Preload("Category").Preload("User").Where("id = ?", id).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return video.Video{}, vidshare_errors.ErrNotFound
		}
		return video.Video{}, err
	}
	return v, nil
}

func (r *PostgresVideoRepository) GetAll(ctx context.Context, p video.Pagination) ([]video.Video, error) {
	var videos []video.Video
	err := r.paginated(ctx, p).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *PostgresVideoRepository) GetByUser(ctx context.Context, userID uuid.UUID, p video.Pagination) ([]video.Video, error) {
	var videos []video.Video
	err := r.paginated(ctx, p).Where("user_id = ?", userID).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *PostgresVideoRepository) GetByCategory(ctx context.Context, categoryID uuid.UUID, p video.Pagination) ([]video.Video, error) {
	var videos []video.Video
	err := r.paginated(ctx, p).Where("category_id = ?", categoryID).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// Search matches the query against video titles and category names.
func (r *PostgresVideoRepository) Search(ctx context.Context, query string, p video.Pagination) ([]video.Video, error) {
	var videos []video.Video
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("User").
		Joins("JOIN categories ON categories.id = videos.category_id").
		Where("videos.title ILIKE ? OR categories.name ILIKE ?", pattern, pattern).
		Limit(p.PageSize()).
		Offset(p.Offset()).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *PostgresVideoRepository) Update(ctx context.Context, v video.Video) error {
	res := r.db.WithContext(ctx).Save(&v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return vidshare_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&video.Video{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return vidshare_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresVideoRepository) paginated(ctx context.Context, p video.Pagination) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Limit(p.PageSize()).
		Offset(p.Offset()).
		Order(orderClause(p))
}

func orderClause(p video.Pagination) string {
	direction := "DESC"
	if strings.EqualFold(p.Order, "asc") {
		direction = "ASC"
	}
	column := "created_at"
	switch p.OrderBy {
	case video.OrderByDate:
		column = "created_at"
	case video.OrderByCategory:
		column = "category_id"
	case video.OrderByID:
		column = "id"
	case video.OrderByLikes:
		column = "num_likes"
	case video.OrderByTitle:
		column = "title"
	}
	return column + " " + direction
}
