package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"vidshare/internal/domain/category"
	"vidshare/internal/domain/video"
	"vidshare/internal/storage"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
)

// CategoryLookup is the slice of the category collaborator the gate needs:
// a case-sensitive exact-match lookup.
type CategoryLookup interface {
	GetByName(ctx context.Context, name string) (category.Category, error)
}

// VideoLookup resolves an update target.
type VideoLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (video.Video, error)
}

// MaxUploadBytes is the default upload size ceiling.
const MaxUploadBytes int64 = 200000000

// FileUpload is the ephemeral in-memory form of an uploaded file. It is
// consumed once by the gate and the store, then discarded.
type FileUpload struct {
	Data         []byte
	Size         int64
	MimeType     string
	OriginalName string
}

// SizeBytes prefers the declared size and falls back to the buffer length.
func (f FileUpload) SizeBytes() int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(len(f.Data))
}

// UploadRequest is what the gate inspects before any storage write.
type UploadRequest struct {
	Update  bool              // false means create
	VideoID uuid.UUID         // update target, ignored on create
	Fields  map[string]string // submitted multipart text fields
	File    *FileUpload       // nil when no file was attached
}

// Text fields a create request may carry. Anything else is rejected.
var allowedUploadFields = map[string]struct{}{
	"title":       {},
	"category":    {},
	"description": {},
}

// UploadGate decides whether a create-or-update-video request is
// admissible before a single byte reaches storage. It never mutates the
// persisted record itself.
type UploadGate struct {
	categories CategoryLookup
	videos     VideoLookup
	maxBytes   int64
}

func NewUploadGate(categories CategoryLookup, videos VideoLookup, maxBytes int64) *UploadGate {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	return &UploadGate{categories: categories, videos: videos, maxBytes: maxBytes}
}

// ValidateAndPrepare runs the admission checks and, on success, returns
// the prefix token that namespaces the stored filename for this attempt.
//
// Create checks run in a fixed order and the first failure short-circuits.
// Update is deliberately relaxed: the target must exist and an attached
// file must carry a known container signature, but field checks are not
// re-enforced and file-less partial updates pass.
func (g *UploadGate) ValidateAndPrepare(ctx context.Context, req UploadRequest) (string, error) {
	if req.Update {
		if err := g.validateUpdate(ctx, req); err != nil {
			return "", err
		}
		return newPrefix(), nil
	}
	if err := g.validateCreate(ctx, req); err != nil {
		return "", err
	}
	return newPrefix(), nil
}

func (g *UploadGate) validateCreate(ctx context.Context, req UploadRequest) error {
	if req.File == nil {
		return vidshare_errors.Validationf("file missing")
	}

	for name := range req.Fields {
		if _, ok := allowedUploadFields[name]; !ok {
			return vidshare_errors.Validationf("unexpected field: %s", name)
		}
	}

	if title := strings.TrimSpace(req.Fields["title"]); len(title) < 4 {
		return vidshare_errors.Validationf("a title of at least 4 characters is required")
	}

	if _, err := g.categories.GetByName(ctx, req.Fields["category"]); err != nil {
		if errors.Is(err, vidshare_errors.ErrNotFound) {
			return vidshare_errors.NotFoundf("category not found")
		}
		return err
	}

	if len(req.Fields["description"]) < 10 {
		return vidshare_errors.Validationf("a description of at least 10 characters is required")
	}

	if storage.DetectContainerFormat(req.File.Data) == storage.FormatUnrecognized {
		return vidshare_errors.Validationf("unsupported container format: only mp4 and webm are allowed")
	}

	if req.File.SizeBytes() > g.maxBytes {
		return vidshare_errors.Validationf("file too large")
	}

	return nil
}

func (g *UploadGate) validateUpdate(ctx context.Context, req UploadRequest) error {
	if _, err := g.videos.GetByID(ctx, req.VideoID); err != nil {
		if errors.Is(err, vidshare_errors.ErrNotFound) {
			return vidshare_errors.NotFoundf("the video ID does not exist to edit")
		}
		return err
	}
	if req.File != nil {
		if storage.DetectContainerFormat(req.File.Data) == storage.FormatUnrecognized {
			return vidshare_errors.Validationf("unsupported container format: only mp4 and webm are allowed")
		}
	}
	return nil
}

// newPrefix returns a unique-enough per-attempt token. Concurrent uploads
// from the same owner stay collision-free through this, not a lock.
func newPrefix() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
