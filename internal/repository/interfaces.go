package repository

import (
	"context"

	"vidshare/internal/domain/category"
	"vidshare/internal/domain/comment"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *category.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (category.Category, error)
	GetByName(ctx context.Context, name string) (category.Category, error)
	GetAll(ctx context.Context) ([]category.Category, error)
	Update(ctx context.Context, c category.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type VideoRepository interface {
	Create(ctx context.Context, v *video.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (video.Video, error)
	GetAll(ctx context.Context, p video.Pagination) ([]video.Video, error)
	GetByUser(ctx context.Context, userID uuid.UUID, p video.Pagination) ([]video.Video, error)
	GetByCategory(ctx context.Context, categoryID uuid.UUID, p video.Pagination) ([]video.Video, error)
	Search(ctx context.Context, query string, p video.Pagination) ([]video.Video, error)
	Update(ctx context.Context, v video.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (comment.Comment, error)
	GetByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) ([]comment.Comment, int64, error)
	Update(ctx context.Context, c comment.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
