package repositories

import (
	"guestbook_backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	Update(db *gorm.DB, id int, authorName, body string) error
	Delete(db *gorm.DB, id int) error

	// FindWithPagination returns one page of messages ordered by descending
	// id together with the total row count over the same (optionally
	// filtered) set. The filter is a case-insensitive substring match on the
	// author name.
	FindWithPagination(db *gorm.DB, search string, page, pageSize int) ([]models.Message, int64, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

// Update rewrites both text fields. An id that matches no row is not
// distinguished from an affected row.
func (r *MessageRepositoryImpl) Update(db *gorm.DB, id int, authorName, body string) error {
	return db.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"author_name": authorName,
			"body":        body,
		}).Error
}

func (r *MessageRepositoryImpl) Delete(db *gorm.DB, id int) error {
	return db.Delete(&models.Message{}, id).Error
}

func (r *MessageRepositoryImpl) FindWithPagination(db *gorm.DB, search string, page, pageSize int) ([]models.Message, int64, error) {
	query := db.Model(&models.Message{})
	if search != "" {
		query = query.Where("author_name ILIKE ?", "%"+search+"%")
	}

	// Total over the filtered set, ignoring pagination
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	offset := (page - 1) * pageSize
	err := query.
		Order("id DESC").
		Limit(pageSize).Offset(offset).
		Find(&messages).Error

	return messages, total, err
}
