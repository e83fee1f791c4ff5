package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guestbook_backend/internal/media"
	"guestbook_backend/internal/models"
	"guestbook_backend/internal/storage"
	"guestbook_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeImageRepo is an in-memory ImageRepository.
type fakeImageRepo struct {
	images     []models.Image
	nextID     int
	failCreate bool
}

func (r *fakeImageRepo) Create(db *gorm.DB, image *models.Image) error {
	if r.failCreate {
		return errors.New("connection refused")
	}
	r.nextID++
	image.ID = r.nextID
	r.images = append(r.images, *image)
	return nil
}

func (r *fakeImageRepo) DeleteByFilename(db *gorm.DB, filename string) error {
	for i := range r.images {
		if r.images[i].Filename == filename {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeImageRepo) FindAll(db *gorm.DB) ([]models.Image, error) {
	out := make([]models.Image, len(r.images))
	for i, img := range r.images {
		out[len(r.images)-1-i] = img
	}
	return out, nil
}

// failingStorage rejects every write.
type failingStorage struct{}

func (failingStorage) Save(ctx context.Context, path string, reader io.Reader) error {
	return errors.New("disk full")
}
func (failingStorage) Delete(ctx context.Context, path string) error          { return nil }
func (failingStorage) Exists(ctx context.Context, path string) (bool, error) { return false, nil }
func (failingStorage) GetSize(ctx context.Context, path string) (int64, error) {
	return 0, errors.New("disk full")
}

func newGalleryFixture(t *testing.T) (GalleryService, *fakeImageRepo, string) {
	t.Helper()
	dir := t.TempDir()
	localStorage, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	repo := &fakeImageRepo{}
	return NewGalleryService(repo, localStorage, media.Default()), repo, dir
}

func filesIn(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestUploadRoundTrip(t *testing.T) {
	svc, repo, dir := newGalleryFixture(t)

	payload := bytes.Repeat([]byte{0x89}, 10*1024) // 10KB
	image, err := svc.Upload(context.Background(), nil, "image/png", payload)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(image.Filename, ".png"))
	require.Len(t, repo.images, 1)
	assert.Equal(t, image.Filename, repo.images[0].Filename)

	info, err := os.Stat(filepath.Join(dir, image.Filename))
	require.NoError(t, err)
	assert.Equal(t, int64(10*1024), info.Size())
}

func TestUploadRejectsBeforeWrite(t *testing.T) {
	svc, repo, dir := newGalleryFixture(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, nil, "image/gif", []byte("gif bytes"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidImageType)

	_, err = svc.Upload(ctx, nil, "image/png", make([]byte, 5*1024*1024+1))
	assert.ErrorIs(t, err, apperrors.ErrImageTooLarge)

	// A rejection must leave no file behind and no row recorded
	assert.Empty(t, filesIn(t, dir))
	assert.Empty(t, repo.images)
}

func TestUploadSizeCeilingInclusive(t *testing.T) {
	svc, _, _ := newGalleryFixture(t)

	_, err := svc.Upload(context.Background(), nil, "image/webp", make([]byte, 5*1024*1024))
	assert.NoError(t, err, "payload exactly at the ceiling must pass")
}

func TestUploadWriteFailure(t *testing.T) {
	repo := &fakeImageRepo{}
	svc := NewGalleryService(repo, failingStorage{}, media.Default())

	_, err := svc.Upload(context.Background(), nil, "image/png", []byte("0123456789"))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeStorageError, appErr.Code)
	assert.Empty(t, repo.images, "a failed write must not produce a row")
}

func TestUploadRecordFailureLeavesOrphanedFile(t *testing.T) {
	dir := t.TempDir()
	localStorage, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	repo := &fakeImageRepo{failCreate: true}
	svc := NewGalleryService(repo, localStorage, media.Default())

	_, err = svc.Upload(context.Background(), nil, "image/jpeg", []byte("0123456789"))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)

	// The written file stays on disk: orphaned but invisible
	assert.Len(t, filesIn(t, dir), 1)
	assert.Empty(t, repo.images)
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	svc, repo, dir := newGalleryFixture(t)
	ctx := context.Background()

	image, err := svc.Upload(ctx, nil, "image/jpeg", []byte("0123456789"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(image.Filename, ".jpg"))

	require.NoError(t, svc.Delete(ctx, nil, image.Filename))

	assert.Empty(t, repo.images)
	_, err = os.Stat(filepath.Join(dir, image.Filename))
	assert.True(t, os.IsNotExist(err))

	images, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestListNewestFirst(t *testing.T) {
	svc, _, _ := newGalleryFixture(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, nil, "image/png", []byte("0123456789"))
	require.NoError(t, err)
	second, err := svc.Upload(ctx, nil, "image/png", []byte("0123456789"))
	require.NoError(t, err)

	images, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, second.Filename, images[0].Filename)
	assert.Equal(t, first.Filename, images[1].Filename)
	assert.Greater(t, images[0].ID, images[1].ID)
}
