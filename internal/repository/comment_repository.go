package repository

import (
	"context"
	"errors"

	"vidshare/internal/domain/comment"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresCommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	res := r.db.WithContext(ctx).Create(c)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (r *PostgresCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (comment.Comment, error) {
	var c comment.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return comment.Comment{}, vidshare_errors.ErrNotFound
		}
		return comment.Comment{}, err
	}
	return c, nil
}

func (r *PostgresCommentRepository) GetByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) ([]comment.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var comments []comment.Comment
	var total int64
	base := r.db.WithContext(ctx).Model(&comment.Comment{}).Where("video_id = ?", videoID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *PostgresCommentRepository) Update(ctx context.Context, c comment.Comment) error {
	res := r.db.WithContext(ctx).Save(&c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return vidshare_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&comment.Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return vidshare_errors.ErrNotFound
	}
	return nil
}
