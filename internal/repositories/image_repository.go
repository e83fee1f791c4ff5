package repositories

import (
	"guestbook_backend/internal/models"

	"gorm.io/gorm"
)

type ImageRepository interface {
	Create(db *gorm.DB, image *models.Image) error
	DeleteByFilename(db *gorm.DB, filename string) error

	// FindAll returns every image record, newest first.
	FindAll(db *gorm.DB) ([]models.Image, error)
}

type ImageRepositoryImpl struct{}

func NewImageRepository() ImageRepository {
	return &ImageRepositoryImpl{}
}

func (r *ImageRepositoryImpl) Create(db *gorm.DB, image *models.Image) error {
	return db.Create(image).Error
}

func (r *ImageRepositoryImpl) DeleteByFilename(db *gorm.DB, filename string) error {
	return db.Where("filename = ?", filename).Delete(&models.Image{}).Error
}

func (r *ImageRepositoryImpl) FindAll(db *gorm.DB) ([]models.Image, error) {
	var images []models.Image
	err := db.Order("id DESC").Find(&images).Error
	return images, err
}
