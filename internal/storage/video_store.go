package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
)

// VideoStore owns the on-disk (or S3) layout of uploaded media:
//
//	{base}/{ownerID}/videos/{prefix}-{originalName}.{ext}
//	{base}/{ownerID}/image/{videoID}/thumbnail.{ext}
//
// The filesystem namespace is partitioned by owner, so concurrent uploads
// from different users never contend; uploads from the same user are kept
// apart by the per-request prefix.
type VideoStore struct {
	base string
	blob Blob
}

func NewVideoStore(base string, blob Blob) *VideoStore {
	return &VideoStore{base: base, blob: blob}
}

// StoreFile writes the upload durably and returns the path the video row
// should reference. The extension comes from the declared MIME type;
// content validation happens earlier against magic bytes, and a mismatch
// between the two is tolerated.
func (s *VideoStore) StoreFile(ctx context.Context, ownerID uuid.UUID, data []byte, mimeType, originalName, prefix string) (string, error) {
	path := s.videoPath(ownerID, prefix, originalName, mimeType)
	if err := s.blob.Write(ctx, path, data); err != nil {
		return "", vidshare_errors.Storagef("an error occurred while uploading the file: %v", err)
	}
	return path, nil
}

// ReplaceFile removes the superseded file first and only then writes the
// replacement. A failure to access or delete the old file aborts the whole
// update before any new bytes land.
func (s *VideoStore) ReplaceFile(ctx context.Context, oldPath string, ownerID uuid.UUID, data []byte, mimeType, originalName, prefix string) (string, error) {
	if err := s.DeleteFile(ctx, oldPath); err != nil {
		return "", err
	}
	return s.StoreFile(ctx, ownerID, data, mimeType, originalName, prefix)
}

// DeleteFile removes the file at path, failing closed: a missing or
// undeletable file is a hard error so callers never silently end up with
// a dangling record.
func (s *VideoStore) DeleteFile(ctx context.Context, path string) error {
	exists, err := s.blob.Exists(ctx, path)
	if err != nil {
		return vidshare_errors.Storagef("file access or deletion error: %v", err)
	}
	if !exists {
		return vidshare_errors.Storagef("file access or deletion error: %s does not exist", path)
	}
	if err := s.blob.Delete(ctx, path); err != nil {
		return vidshare_errors.Storagef("file access or deletion error: %v", err)
	}
	return nil
}

// ReadFile returns the stored bytes for serving.
func (s *VideoStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := s.blob.Read(ctx, path)
	if err != nil {
		return nil, vidshare_errors.Storagef("reading %s: %v", path, err)
	}
	return data, nil
}

// StoreThumbnail writes a video thumbnail. Thumbnails have simpler rules
// than videos: a jpg/jpeg extension allow-list and no signature check.
func (s *VideoStore) StoreThumbnail(ctx context.Context, ownerID, videoID uuid.UUID, data []byte, mimeType string) (string, error) {
	ext := ExtensionFromMIME(mimeType)
	if ext != "jpg" && ext != "jpeg" {
		return "", vidshare_errors.Validationf("only images in jpg and jpeg format are allowed")
	}
	path := filepath.Join(s.base, ownerID.String(), "image", videoID.String(), "thumbnail."+ext)
	if err := s.blob.Write(ctx, path, data); err != nil {
		return "", vidshare_errors.Storagef("an error occurred while uploading the image: %v", err)
	}
	return path, nil
}

// ExtensionFromMIME derives a file extension from a declared MIME type by
// taking the segment after the slash, e.g. "video/mp4" -> "mp4".
func ExtensionFromMIME(mimeType string) string {
	parts := strings.SplitN(mimeType, "/", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

func (s *VideoStore) videoPath(ownerID uuid.UUID, prefix, originalName, mimeType string) string {
	name := fmt.Sprintf("%s-%s.%s", prefix, originalName, ExtensionFromMIME(mimeType))
	return filepath.Join(s.base, ownerID.String(), "videos", name)
}
