package services

import (
	"context"
	"errors"

	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
	"vidshare/internal/repository"
	"vidshare/internal/storage"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
)

// VideoService owns the video lifecycle. The invariant it protects: a row
// is created or updated in persistence only after the corresponding file
// operation has fully succeeded, and a row is deleted only after its file
// is gone.
type VideoService struct {
	videos     repository.VideoRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	store      *storage.VideoStore
}

func NewVideoService(videos repository.VideoRepository, users repository.UserRepository, categories repository.CategoryRepository, store *storage.VideoStore) *VideoService {
	return &VideoService{videos: videos, users: users, categories: categories, store: store}
}

type CreateVideoInput struct {
	Title       string
	Category    string
	Description string
}

// UpdateVideoInput carries partial updates; empty fields keep the
// existing value.
type UpdateVideoInput struct {
	Title       string
	Category    string
	Description string
}

func (s *VideoService) Create(ctx context.Context, active user.Active, in CreateVideoInput, file FileUpload, prefix string) (video.Video, error) {
	cat, err := s.categories.GetByName(ctx, in.Category)
	if err != nil {
		if errors.Is(err, vidshare_errors.ErrNotFound) {
			return video.Video{}, vidshare_errors.NotFoundf("category not found")
		}
		return video.Video{}, err
	}
	owner, err := s.users.GetByID(ctx, active.ID)
	if err != nil {
		return video.Video{}, err
	}

	path, err := s.store.StoreFile(ctx, owner.ID, file.Data, file.MimeType, file.OriginalName, prefix)
	if err != nil {
		return video.Video{}, err
	}

	v := video.Video{
		ID:          uuid.New(),
		UserID:      owner.ID,
		CategoryID:  cat.ID,
		Title:       in.Title,
		Description: in.Description,
		FilePath:    path,
		NumLikes:    0,
	}
	if err := s.videos.Create(ctx, &v); err != nil {
		return video.Video{}, err
	}
	return v, nil
}

// Update applies a partial update. When a replacement file is attached the
// old file is removed first and the new one written; if the removal fails
// nothing is written and the stored path stays unchanged.
func (s *VideoService) Update(ctx context.Context, id uuid.UUID, active user.Active, in UpdateVideoInput, file *FileUpload, prefix string) (video.Video, error) {
	v, err := s.getOwned(ctx, id, active)
	if err != nil {
		return video.Video{}, err
	}

	path := v.FilePath
	if file != nil {
		path, err = s.store.ReplaceFile(ctx, v.FilePath, v.UserID, file.Data, file.MimeType, file.OriginalName, prefix)
		if err != nil {
			return video.Video{}, err
		}
	}

	if in.Title != "" {
		v.Title = in.Title
	}
	if in.Category != "" {
		cat, err := s.categories.GetByName(ctx, in.Category)
		if err != nil {
			if errors.Is(err, vidshare_errors.ErrNotFound) {
				return video.Video{}, vidshare_errors.NotFoundf("category not found")
			}
			return video.Video{}, err
		}
		v.CategoryID = cat.ID
	}
	if in.Description != "" {
		v.Description = in.Description
	}
	v.FilePath = path

	if err := s.videos.Update(ctx, v); err != nil {
		return video.Video{}, err
	}
	return v, nil
}

// Remove deletes the backing file first, failing closed: if the file is
// inaccessible the row is not touched.
func (s *VideoService) Remove(ctx context.Context, id uuid.UUID, active user.Active) error {
	v, err := s.getOwned(ctx, id, active)
	if err != nil {
		return err
	}
	if err := s.store.DeleteFile(ctx, v.FilePath); err != nil {
		return err
	}
	return s.videos.Delete(ctx, v.ID)
}

func (s *VideoService) GetOne(ctx context.Context, id uuid.UUID, active user.Active) (video.Video, error) {
	return s.getOwned(ctx, id, active)
}

func (s *VideoService) GetAll(ctx context.Context, p video.Pagination) ([]video.Video, error) {
	return s.videos.GetAll(ctx, p)
}

func (s *VideoService) GetUserVideos(ctx context.Context, userID uuid.UUID, p video.Pagination) ([]video.Video, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.videos.GetByUser(ctx, userID, p)
}

func (s *VideoService) GetOwnVideos(ctx context.Context, active user.Active, p video.Pagination) ([]video.Video, error) {
	return s.videos.GetByUser(ctx, active.ID, p)
}

func (s *VideoService) GetCategoryVideos(ctx context.Context, categoryName string, p video.Pagination) ([]video.Video, error) {
	cat, err := s.categories.GetByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, vidshare_errors.ErrNotFound) {
			return nil, vidshare_errors.NotFoundf("category not found")
		}
		return nil, err
	}
	return s.videos.GetByCategory(ctx, cat.ID, p)
}

func (s *VideoService) Search(ctx context.Context, query string, p video.Pagination) ([]video.Video, error) {
	return s.videos.Search(ctx, query, p)
}

// GetFile returns the stored bytes of a video for serving.
func (s *VideoService) GetFile(ctx context.Context, id uuid.UUID) ([]byte, video.Video, error) {
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, video.Video{}, err
	}
	data, err := s.store.ReadFile(ctx, v.FilePath)
	if err != nil {
		return nil, video.Video{}, err
	}
	return data, v, nil
}

// UploadThumbnail stores a jpg/jpeg thumbnail for an owned video and
// records its path.
func (s *VideoService) UploadThumbnail(ctx context.Context, active user.Active, videoID uuid.UUID, file *FileUpload) (video.Video, error) {
	v, err := s.getOwned(ctx, videoID, active)
	if err != nil {
		return video.Video{}, err
	}
	if file == nil {
		return video.Video{}, vidshare_errors.Validationf("thumbnail missing")
	}
	path, err := s.store.StoreThumbnail(ctx, v.UserID, v.ID, file.Data, file.MimeType)
	if err != nil {
		return video.Video{}, err
	}
	v.Thumbnail = path
	if err := s.videos.Update(ctx, v); err != nil {
		return video.Video{}, err
	}
	return v, nil
}

func (s *VideoService) getOwned(ctx context.Context, id uuid.UUID, active user.Active) (video.Video, error) {
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vidshare_errors.ErrNotFound) {
			return video.Video{}, vidshare_errors.NotFoundf("video not found")
		}
		return video.Video{}, err
	}
	if v.UserID != active.ID && !active.IsAdmin() {
		return video.Video{}, vidshare_errors.ErrForbidden
	}
	return v, nil
}
