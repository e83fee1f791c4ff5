package services

import (
	"bytes"
	"context"

	"guestbook_backend/internal/logger"
	"guestbook_backend/internal/media"
	"guestbook_backend/internal/models"
	"guestbook_backend/internal/repositories"
	"guestbook_backend/internal/storage"
	"guestbook_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// GalleryService orchestrates image ingestion. The ordering invariant: the
// disk write strictly precedes the metadata row insert. The row is the
// commit signal that makes a file visible through the listing, so a write
// failure leaves nothing behind, while an insert failure leaves a file that
// is orphaned but invisible.
type GalleryService interface {
	Upload(ctx context.Context, db *gorm.DB, contentType string, data []byte) (*models.Image, error)
	List(ctx context.Context, db *gorm.DB) ([]models.Image, error)
	Delete(ctx context.Context, db *gorm.DB, filename string) error
}

type galleryService struct {
	imageRepo repositories.ImageRepository
	storage   storage.Storage
	media     *media.Validator
}

func NewGalleryService(
	imageRepo repositories.ImageRepository,
	storage storage.Storage,
	mediaValidator *media.Validator,
) GalleryService {
	if mediaValidator == nil {
		mediaValidator = media.Default()
	}

	return &galleryService{
		imageRepo: imageRepo,
		storage:   storage,
		media:     mediaValidator,
	}
}

func (s *galleryService) Upload(ctx context.Context, db *gorm.DB, contentType string, data []byte) (*models.Image, error) {
	ext, err := s.media.Validate(contentType, data)
	if err != nil {
		// Rejected before any disk write
		return nil, err
	}

	filename := storage.NewFilename(ext)

	if err := s.storage.Save(ctx, filename, bytes.NewReader(data)); err != nil {
		// Nothing written, nothing recorded
		return nil, apperrors.StorageError(err)
	}

	image := &models.Image{Filename: filename}
	if err := s.imageRepo.Create(db, image); err != nil {
		// The file is on disk with no row referencing it. It stays there:
		// invisible through the listing, recoverable by an operator.
		logger.FromContext(ctx).Error("orphaned upload: file written but record insert failed",
			"filename", filename,
			"error", err.Error(),
		)
		return nil, apperrors.RepositoryError(err, "❌ Error al guardar imagen")
	}

	return image, nil
}

func (s *galleryService) List(ctx context.Context, db *gorm.DB) ([]models.Image, error) {
	images, err := s.imageRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.RepositoryError(err, "❌ Error al listar imágenes")
	}
	if images == nil {
		images = []models.Image{}
	}
	return images, nil
}

// Delete removes the row first and the file second, so a failure in between
// can only produce an orphaned file, never a row without a file.
func (s *galleryService) Delete(ctx context.Context, db *gorm.DB, filename string) error {
	if err := s.imageRepo.DeleteByFilename(db, filename); err != nil {
		return apperrors.RepositoryError(err, "❌ Error al eliminar imagen")
	}

	if err := s.storage.Delete(ctx, filename); err != nil {
		// The row is already gone; log and keep the response a success.
		logger.FromContext(ctx).Error("failed to delete image file from storage",
			"filename", filename,
			"error", err.Error(),
		)
	}

	return nil
}
