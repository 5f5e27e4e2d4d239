package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vidshare/internal/domain/category"
	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
	"vidshare/internal/storage"
	vidshare_errors "vidshare/pkg/errors"

	"github.com/google/uuid"
)

type memUserRepo struct {
	users map[uuid.UUID]user.User
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, vidshare_errors.ErrNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, vidshare_errors.ErrNotFound
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, vidshare_errors.ErrNotFound
}

type memCategoryRepo struct {
	categories map[uuid.UUID]category.Category
}

func (r *memCategoryRepo) Create(ctx context.Context, c *category.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (category.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return category.Category{}, vidshare_errors.ErrNotFound
}

func (r *memCategoryRepo) GetByName(ctx context.Context, name string) (category.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return category.Category{}, vidshare_errors.ErrNotFound
}

func (r *memCategoryRepo) GetAll(ctx context.Context) ([]category.Category, error) {
	out := make([]category.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCategoryRepo) Update(ctx context.Context, c category.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return vidshare_errors.ErrNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return vidshare_errors.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type memVideoRepo struct {
	videos map[uuid.UUID]video.Video
}

func (r *memVideoRepo) Create(ctx context.Context, v *video.Video) error {
	r.videos[v.ID] = *v
	return nil
}

func (r *memVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (video.Video, error) {
	if v, ok := r.videos[id]; ok {
		return v, nil
	}
	return video.Video{}, vidshare_errors.ErrNotFound
}

func (r *memVideoRepo) GetAll(ctx context.Context, p video.Pagination) ([]video.Video, error) {
	out := make([]video.Video, 0, len(r.videos))
	for _, v := range r.videos {
		out = append(out, v)
	}
	return out, nil
}

func (r *memVideoRepo) GetByUser(ctx context.Context, userID uuid.UUID, p video.Pagination) ([]video.Video, error) {
	var out []video.Video
	for _, v := range r.videos {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memVideoRepo) GetByCategory(ctx context.Context, categoryID uuid.UUID, p video.Pagination) ([]video.Video, error) {
	var out []video.Video
	for _, v := range r.videos {
		if v.CategoryID == categoryID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memVideoRepo) Search(ctx context.Context, query string, p video.Pagination) ([]video.Video, error) {
	var out []video.Video
	for _, v := range r.videos {
		if strings.Contains(strings.ToLower(v.Title), strings.ToLower(query)) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memVideoRepo) Update(ctx context.Context, v video.Video) error {
	if _, ok := r.videos[v.ID]; !ok {
		return vidshare_errors.ErrNotFound
	}
	r.videos[v.ID] = v
	return nil
}

func (r *memVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.videos[id]; !ok {
		return vidshare_errors.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

type videoFixture struct {
	service  *VideoService
	videos   *memVideoRepo
	blob     *storage.MemBlob
	owner    user.Active
	category category.Category
}

func newVideoFixture(t *testing.T) *videoFixture {
	t.Helper()
	ownerID := uuid.New()
	cat := category.Category{ID: uuid.New(), Name: "Music"}

	users := &memUserRepo{users: map[uuid.UUID]user.User{
		ownerID: {ID: ownerID, Username: "uploader", Role: user.RoleUser},
	}}
	categories := &memCategoryRepo{categories: map[uuid.UUID]category.Category{cat.ID: cat}}
	videos := &memVideoRepo{videos: map[uuid.UUID]video.Video{}}
	blob := storage.NewMemBlob()
	store := storage.NewVideoStore("uploads", blob)

	return &videoFixture{
		service:  NewVideoService(videos, users, categories, store),
		videos:   videos,
		blob:     blob,
		owner:    user.Active{ID: ownerID, Role: user.RoleUser},
		category: cat,
	}
}

func (f *videoFixture) create(t *testing.T) video.Video {
	t.Helper()
	v, err := f.service.Create(context.Background(), f.owner, CreateVideoInput{
		Title:       "Sample Clip",
		Category:    "Music",
		Description: "A short demo video clip.",
	}, FileUpload{Data: mp4Bytes, MimeType: "video/mp4", OriginalName: "clip"}, "100")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return v
}

func TestVideoCreateStoresFileBeforeRecord(t *testing.T) {
	f := newVideoFixture(t)
	v := f.create(t)

	if exists, _ := f.blob.Exists(context.Background(), v.FilePath); !exists {
		t.Fatalf("record references %s but no file exists there", v.FilePath)
	}
	if _, ok := f.videos.videos[v.ID]; !ok {
		t.Fatal("record was not persisted")
	}
	wantSuffix := "100-clip.mp4"
	if !strings.HasSuffix(v.FilePath, wantSuffix) {
		t.Errorf("path %q does not end in %q", v.FilePath, wantSuffix)
	}
	if !strings.Contains(v.FilePath, f.owner.ID.String()) {
		t.Errorf("path %q is not namespaced by owner", v.FilePath)
	}
}

func TestVideoCreateUnknownCategoryTouchesNothing(t *testing.T) {
	f := newVideoFixture(t)

	_, err := f.service.Create(context.Background(), f.owner, CreateVideoInput{
		Title:       "Sample Clip",
		Category:    "Nonexistent",
		Description: "A short demo video clip.",
	}, FileUpload{Data: mp4Bytes, MimeType: "video/mp4", OriginalName: "clip"}, "100")
	if !errors.Is(err, vidshare_errors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if f.blob.Len() != 0 {
		t.Error("a file was written for a rejected create")
	}
	if len(f.videos.videos) != 0 {
		t.Error("a record was persisted for a rejected create")
	}
}

func TestVideoUpdateSupersedesFile(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()
	v := f.create(t)
	oldPath := v.FilePath

	updated, err := f.service.Update(ctx, v.ID, f.owner, UpdateVideoInput{Title: "New Title"},
		&FileUpload{Data: webmBytes, MimeType: "video/webm", OriginalName: "clip2"}, "200")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if exists, _ := f.blob.Exists(ctx, oldPath); exists {
		t.Error("superseded file still present")
	}
	if exists, _ := f.blob.Exists(ctx, updated.FilePath); !exists {
		t.Error("replacement file missing")
	}
	if updated.Title != "New Title" {
		t.Errorf("title = %q, want %q", updated.Title, "New Title")
	}
	if updated.Description != v.Description {
		t.Errorf("description changed on a partial update")
	}
}

func TestVideoUpdateKeepsFileWithoutUpload(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()
	v := f.create(t)

	updated, err := f.service.Update(ctx, v.ID, f.owner, UpdateVideoInput{Description: "An updated description."}, nil, "200")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FilePath != v.FilePath {
		t.Errorf("file path changed on a file-less update")
	}
	if updated.Description != "An updated description." {
		t.Errorf("description = %q", updated.Description)
	}
}

func TestVideoUpdateAbortsWhenOldFileGone(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()
	v := f.create(t)

	// Simulate a file lost out of band.
	if err := f.blob.Delete(ctx, v.FilePath); err != nil {
		t.Fatalf("priming delete: %v", err)
	}

	_, err := f.service.Update(ctx, v.ID, f.owner, UpdateVideoInput{},
		&FileUpload{Data: mp4Bytes, MimeType: "video/mp4", OriginalName: "clip3"}, "300")
	if !errors.Is(err, vidshare_errors.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
	if f.blob.Len() != 0 {
		t.Error("replacement was written despite the failed removal")
	}
	if got := f.videos.videos[v.ID].FilePath; got != v.FilePath {
		t.Errorf("stored path changed to %q on a failed update", got)
	}
}

func TestVideoRemoveDeletesFileFirst(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()
	v := f.create(t)

	if err := f.service.Remove(ctx, v.ID, f.owner); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if exists, _ := f.blob.Exists(ctx, v.FilePath); exists {
		t.Error("file still present after remove")
	}
	if _, ok := f.videos.videos[v.ID]; ok {
		t.Error("record still present after remove")
	}
}

func TestVideoRemoveFailsClosedOnMissingFile(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()
	v := f.create(t)

	if err := f.blob.Delete(ctx, v.FilePath); err != nil {
		t.Fatalf("priming delete: %v", err)
	}

	if err := f.service.Remove(ctx, v.ID, f.owner); !errors.Is(err, vidshare_errors.ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
	if _, ok := f.videos.videos[v.ID]; !ok {
		t.Error("record was deleted despite the file deletion failure")
	}
}

func TestVideoAccessControl(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()
	v := f.create(t)

	stranger := user.Active{ID: uuid.New(), Role: user.RoleUser}
	if _, err := f.service.GetOne(ctx, v.ID, stranger); !errors.Is(err, vidshare_errors.ErrForbidden) {
		t.Errorf("stranger access err = %v, want ErrForbidden", err)
	}

	admin := user.Active{ID: uuid.New(), Role: user.RoleAdmin}
	if _, err := f.service.GetOne(ctx, v.ID, admin); err != nil {
		t.Errorf("admin access err = %v", err)
	}
}

func TestVideoFileRoundTrip(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()
	v := f.create(t)

	data, got, err := f.service.GetFile(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if got.ID != v.ID {
		t.Errorf("returned record %s, want %s", got.ID, v.ID)
	}
	if string(data) != string(mp4Bytes) {
		t.Error("served bytes differ from uploaded bytes")
	}
}

func TestVideoThumbnail(t *testing.T) {
	f := newVideoFixture(t)
	ctx := context.Background()
	v := f.create(t)

	updated, err := f.service.UploadThumbnail(ctx, f.owner, v.ID, &FileUpload{Data: []byte("img"), MimeType: "image/jpeg"})
	if err != nil {
		t.Fatalf("UploadThumbnail: %v", err)
	}
	if updated.Thumbnail == "" {
		t.Fatal("thumbnail path not recorded")
	}
	if exists, _ := f.blob.Exists(ctx, updated.Thumbnail); !exists {
		t.Error("thumbnail file missing")
	}

	if _, err := f.service.UploadThumbnail(ctx, f.owner, v.ID, &FileUpload{Data: []byte("img"), MimeType: "image/png"}); !errors.Is(err, vidshare_errors.ErrValidation) {
		t.Errorf("png thumbnail err = %v, want ErrValidation", err)
	}
}
