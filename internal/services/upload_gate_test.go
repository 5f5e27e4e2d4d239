package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vidshare/internal/domain/category"
	"vidshare/internal/domain/video"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
)

type fakeCategoryLookup struct {
	names map[string]category.Category
}

func (f fakeCategoryLookup) GetByName(ctx context.Context, name string) (category.Category, error) {
	if c, ok := f.names[name]; ok {
		return c, nil
	}
	return category.Category{}, vidshare_errors.ErrNotFound
}

type fakeVideoLookup struct {
	videos map[uuid.UUID]video.Video
}

func (f fakeVideoLookup) GetByID(ctx context.Context, id uuid.UUID) (video.Video, error) {
	if v, ok := f.videos[id]; ok {
		return v, nil
	}
	return video.Video{}, vidshare_errors.ErrNotFound
}

var (
	mp4Bytes  = []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79, 0x70, 0xaa}
	webmBytes = []byte{0x1a, 0x45, 0xdf, 0xa3, 0xbb}
	zipBytes  = []byte{0x50, 0x4b, 0x03, 0x04}
)

func newTestGate(t *testing.T) *UploadGate {
	t.Helper()
	categories := fakeCategoryLookup{names: map[string]category.Category{
		"Music": {ID: uuid.New(), Name: "Music"},
	}}
	return NewUploadGate(categories, fakeVideoLookup{videos: map[uuid.UUID]video.Video{}}, 0)
}

func validCreateRequest() UploadRequest {
	return UploadRequest{
		Fields: map[string]string{
			"title":       "Sample Clip",
			"category":    "Music",
			"description": "A short demo video clip.",
		},
		File: &FileUpload{
			Data:         mp4Bytes,
			MimeType:     "video/mp4",
			OriginalName: "clip",
		},
	}
}

func TestCreateValid(t *testing.T) {
	gate := newTestGate(t)

	prefix, err := gate.ValidateAndPrepare(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("ValidateAndPrepare: %v", err)
	}
	if prefix == "" {
		t.Fatal("expected a non-empty prefix")
	}
	for _, ch := range prefix {
		if ch < '0' || ch > '9' {
			t.Fatalf("prefix %q is not numeric", prefix)
		}
	}
}

func TestCreateValidWebM(t *testing.T) {
	gate := newTestGate(t)
	req := validCreateRequest()
	req.File.Data = webmBytes
	req.File.MimeType = "video/webm"

	if _, err := gate.ValidateAndPrepare(context.Background(), req); err != nil {
		t.Fatalf("ValidateAndPrepare: %v", err)
	}
}

func TestCreateRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*UploadRequest)
		wantErr  error
		contains string
	}{
		{
			name:     "missing file",
			mutate:   func(r *UploadRequest) { r.File = nil },
			wantErr:  vidshare_errors.ErrValidation,
			contains: "file missing",
		},
		{
			name:     "unexpected field",
			mutate:   func(r *UploadRequest) { r.Fields["tags"] = "rock" },
			wantErr:  vidshare_errors.ErrValidation,
			contains: "unexpected field: tags",
		},
		{
			name:     "short title",
			mutate:   func(r *UploadRequest) { r.Fields["title"] = "  ab  " },
			wantErr:  vidshare_errors.ErrValidation,
			contains: "title",
		},
		{
			name:     "missing title",
			mutate:   func(r *UploadRequest) { delete(r.Fields, "title") },
			wantErr:  vidshare_errors.ErrValidation,
			contains: "title",
		},
		{
			name:     "unknown category",
			mutate:   func(r *UploadRequest) { r.Fields["category"] = "Nonexistent" },
			wantErr:  vidshare_errors.ErrNotFound,
			contains: "category not found",
		},
		{
			name:     "short description",
			mutate:   func(r *UploadRequest) { r.Fields["description"] = "too short" },
			wantErr:  vidshare_errors.ErrValidation,
			contains: "description",
		},
		{
			name:     "zip content",
			mutate:   func(r *UploadRequest) { r.File.Data = zipBytes },
			wantErr:  vidshare_errors.ErrValidation,
			contains: "container",
		},
		{
			name:     "file too large",
			mutate:   func(r *UploadRequest) { r.File.Size = 200000001 },
			wantErr:  vidshare_errors.ErrValidation,
			contains: "file too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := newTestGate(t)
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := gate.ValidateAndPrepare(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err = %q, want it to mention %q", err, tt.contains)
			}
		})
	}
}

func TestCreateSizeAtLimit(t *testing.T) {
	gate := newTestGate(t)
	req := validCreateRequest()
	req.File.Size = 200000000

	if _, err := gate.ValidateAndPrepare(context.Background(), req); err != nil {
		t.Fatalf("size at the limit should pass, got %v", err)
	}
}

func TestCreateShortCircuitOrder(t *testing.T) {
	gate := newTestGate(t)

	// Missing file wins over every other defect.
	req := validCreateRequest()
	req.File = nil
	req.Fields["title"] = "ab"
	req.Fields["extra"] = "x"
	_, err := gate.ValidateAndPrepare(context.Background(), req)
	if err == nil || !strings.Contains(err.Error(), "file missing") {
		t.Fatalf("err = %v, want file missing first", err)
	}

	// The closed-field check runs before the title check.
	req = validCreateRequest()
	req.Fields["title"] = "ab"
	req.Fields["extra"] = "x"
	_, err = gate.ValidateAndPrepare(context.Background(), req)
	if err == nil || !strings.Contains(err.Error(), "unexpected field: extra") {
		t.Fatalf("err = %v, want unexpected field first", err)
	}
}

func TestUpdateTargetMustExist(t *testing.T) {
	gate := newTestGate(t)

	_, err := gate.ValidateAndPrepare(context.Background(), UploadRequest{
		Update:  true,
		VideoID: uuid.New(),
	})
	if !errors.Is(err, vidshare_errors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateRelaxedChecks(t *testing.T) {
	existing := uuid.New()
	categories := fakeCategoryLookup{names: map[string]category.Category{}}
	videos := fakeVideoLookup{videos: map[uuid.UUID]video.Video{
		existing: {ID: existing},
	}}
	gate := NewUploadGate(categories, videos, 0)
	ctx := context.Background()

	// File-less partial update passes even with no fields at all.
	if _, err := gate.ValidateAndPrepare(ctx, UploadRequest{Update: true, VideoID: existing}); err != nil {
		t.Fatalf("file-less update: %v", err)
	}

	// A single field passes; field checks are not re-enforced.
	req := UploadRequest{Update: true, VideoID: existing, Fields: map[string]string{"description": "x"}}
	if _, err := gate.ValidateAndPrepare(ctx, req); err != nil {
		t.Fatalf("partial update: %v", err)
	}

	// An attached file must still carry a known signature.
	req = UploadRequest{Update: true, VideoID: existing, File: &FileUpload{Data: zipBytes, MimeType: "video/mp4"}}
	if _, err := gate.ValidateAndPrepare(ctx, req); !errors.Is(err, vidshare_errors.ErrValidation) {
		t.Fatalf("bad signature on update err = %v, want ErrValidation", err)
	}

	req = UploadRequest{Update: true, VideoID: existing, File: &FileUpload{Data: mp4Bytes, MimeType: "video/mp4"}}
	if _, err := gate.ValidateAndPrepare(ctx, req); err != nil {
		t.Fatalf("good signature on update: %v", err)
	}
}
