package services

import (
	"context"
	"strings"

	"vidshare/internal/domain/comment"
	"vidshare/internal/domain/user"
	"vidshare/internal/repository"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
)

type CommentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

func (s *CommentService) Create(ctx context.Context, active user.Active, videoID uuid.UUID, content string) (comment.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return comment.Comment{}, vidshare_errors.Validationf("comment content is required")
	}
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return comment.Comment{}, err
	}
	c := comment.Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		UserID:  active.ID,
		Content: content,
	}
	if err := s.comments.Create(ctx, &c); err != nil {
		return comment.Comment{}, err
	}
	return c, nil
}

func (s *CommentService) GetByVideo(ctx context.Context, videoID uuid.UUID, page, limit int) ([]comment.Comment, int64, error) {
	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		return nil, 0, err
	}
	return s.comments.GetByVideo(ctx, videoID, page, limit)
}

func (s *CommentService) Update(ctx context.Context, active user.Active, id uuid.UUID, content string) (comment.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return comment.Comment{}, vidshare_errors.Validationf("comment content is required")
	}
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return comment.Comment{}, err
	}
	if c.UserID != active.ID && !active.IsAdmin() {
		return comment.Comment{}, vidshare_errors.ErrForbidden
	}
	c.Content = content
	if err := s.comments.Update(ctx, c); err != nil {
		return comment.Comment{}, err
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, active user.Active, id uuid.UUID) error {
	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != active.ID && !active.IsAdmin() {
		return vidshare_errors.ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}
