package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
)

var mp4Payload = []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79, 0x70, 0x01, 0x02, 0x03}

func TestStoreFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	store := NewVideoStore(base, NewDiskBlob())
	owner := uuid.New()

	path, err := store.StoreFile(ctx, owner, mp4Payload, "video/mp4", "clip", "1700000000000")
	if err != nil {
		t.Fatalf("StoreFile: %v", err)
	}

	want := filepath.Join(base, owner.String(), "videos", "1700000000000-clip.mp4")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if !bytes.Equal(got, mp4Payload) {
		t.Errorf("stored content differs from input")
	}
}

func TestStoreFileDistinctPrefixes(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	store := NewVideoStore(base, NewDiskBlob())
	owner := uuid.New()

	first, err := store.StoreFile(ctx, owner, []byte("first"), "video/mp4", "clip", "100")
	if err != nil {
		t.Fatalf("first StoreFile: %v", err)
	}
	second, err := store.StoreFile(ctx, owner, []byte("second"), "video/mp4", "clip", "101")
	if err != nil {
		t.Fatalf("second StoreFile: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct paths, both were %q", first)
	}
	for path, want := range map[string]string{first: "first", second: "second"} {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if string(got) != want {
			t.Errorf("content at %s = %q, want %q", path, got, want)
		}
	}
}

func TestReplaceFileSupersedes(t *testing.T) {
	ctx := context.Background()
	blob := NewMemBlob()
	store := NewVideoStore("uploads", blob)
	owner := uuid.New()

	oldPath, err := store.StoreFile(ctx, owner, []byte("old"), "video/mp4", "clip", "100")
	if err != nil {
		t.Fatalf("StoreFile: %v", err)
	}

	newPath, err := store.ReplaceFile(ctx, oldPath, owner, []byte("new"), "video/webm", "clip2", "200")
	if err != nil {
		t.Fatalf("ReplaceFile: %v", err)
	}

	if exists, _ := blob.Exists(ctx, oldPath); exists {
		t.Errorf("old file still present after replace")
	}
	got, err := blob.Read(ctx, newPath)
	if err != nil {
		t.Fatalf("reading replacement: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("replacement content = %q, want %q", got, "new")
	}
}

func TestReplaceFileAbortsWhenOldRemovalFails(t *testing.T) {
	ctx := context.Background()
	blob := NewMemBlob()
	store := NewVideoStore("uploads", blob)
	owner := uuid.New()

	_, err := store.ReplaceFile(ctx, "uploads/gone/videos/1-x.mp4", owner, []byte("new"), "video/mp4", "clip", "300")
	if !errors.Is(err, vidshare_errors.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
	if blob.Len() != 0 {
		t.Errorf("replacement was written despite failed removal")
	}
}

func TestDeleteFileFailClosed(t *testing.T) {
	ctx := context.Background()
	blob := NewMemBlob()
	store := NewVideoStore("uploads", blob)

	if err := store.DeleteFile(ctx, "uploads/nobody/videos/1-x.mp4"); !errors.Is(err, vidshare_errors.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}

	owner := uuid.New()
	path, err := store.StoreFile(ctx, owner, []byte("data"), "video/mp4", "clip", "1")
	if err != nil {
		t.Fatalf("StoreFile: %v", err)
	}
	if err := store.DeleteFile(ctx, path); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if exists, _ := blob.Exists(ctx, path); exists {
		t.Errorf("file still present after delete")
	}
}

func TestStoreThumbnail(t *testing.T) {
	ctx := context.Background()
	blob := NewMemBlob()
	store := NewVideoStore("uploads", blob)
	owner := uuid.New()
	videoID := uuid.New()

	path, err := store.StoreThumbnail(ctx, owner, videoID, []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("StoreThumbnail: %v", err)
	}
	want := filepath.Join("uploads", owner.String(), "image", videoID.String(), "thumbnail.jpeg")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	if _, err := store.StoreThumbnail(ctx, owner, videoID, []byte("img"), "image/png"); !errors.Is(err, vidshare_errors.ErrValidation) {
		t.Errorf("png thumbnail err = %v, want ErrValidation", err)
	}
}
