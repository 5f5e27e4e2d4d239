package httpdto

import (
	"time"

	"vidshare/internal/domain/video"
)

type VideoResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	FilePath    string    `json:"file_path"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	NumLikes    int       `json:"num_likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewVideoResponse(v video.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID.String(),
		UserID:      v.UserID.String(),
		Title:       v.Title,
		Description: v.Description,
		Category:    v.Category.Name,
		FilePath:    v.FilePath,
		Thumbnail:   v.Thumbnail,
		NumLikes:    v.NumLikes,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func NewVideoListResponse(videos []video.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, NewVideoResponse(v))
	}
	return out
}
