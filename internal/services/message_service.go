package services

import (
	"context"

	"guestbook_backend/internal/dto"
	"guestbook_backend/internal/models"
	"guestbook_backend/internal/repositories"
	"guestbook_backend/internal/validator"
	"guestbook_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MessageService orchestrates guestbook message ingestion and retrieval:
// every inbound text field is sanitized, then validated, and only then
// persisted.
type MessageService interface {
	Submit(ctx context.Context, db *gorm.DB, req *dto.SubmitMessageRequest) error
	Update(ctx context.Context, db *gorm.DB, id int, req *dto.UpdateMessageRequest) error
	Delete(ctx context.Context, db *gorm.DB, id int) error
	List(ctx context.Context, db *gorm.DB, page, pageSize int, search string) (*dto.PaginatedMessagesResponse, error)
}

type messageService struct {
	messageRepo repositories.MessageRepository
	validator   *validator.Validator
	config      *PaginationConfig
}

// PaginationConfig bounds the admin listing.
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	v *validator.Validator,
	config *PaginationConfig,
) MessageService {
	if config == nil {
		config = &PaginationConfig{DefaultPageSize: 5, MaxPageSize: 100}
	}

	return &messageService{
		messageRepo: messageRepo,
		validator:   v,
		config:      config,
	}
}

func (s *messageService) Submit(ctx context.Context, db *gorm.DB, req *dto.SubmitMessageRequest) error {
	req.AuthorName = validator.Sanitize(req.AuthorName)
	req.Body = validator.Sanitize(req.Body)

	if err := s.validator.Validate(req); err != nil {
		return mapFieldError(err)
	}

	message := &models.Message{
		AuthorName: req.AuthorName,
		Body:       req.Body,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return apperrors.RepositoryError(err, "❌ Error guardando mensaje")
	}

	return nil
}

func (s *messageService) Update(ctx context.Context, db *gorm.DB, id int, req *dto.UpdateMessageRequest) error {
	req.AuthorName = validator.Sanitize(req.AuthorName)
	req.Body = validator.Sanitize(req.Body)

	if err := s.validator.Validate(req); err != nil {
		return mapFieldError(err)
	}

	if err := s.messageRepo.Update(db, id, req.AuthorName, req.Body); err != nil {
		return apperrors.RepositoryError(err, "❌ Error al actualizar mensaje")
	}

	return nil
}

func (s *messageService) Delete(ctx context.Context, db *gorm.DB, id int) error {
	if err := s.messageRepo.Delete(db, id); err != nil {
		return apperrors.RepositoryError(err, "❌ Error al eliminar")
	}
	return nil
}

func (s *messageService) List(ctx context.Context, db *gorm.DB, page, pageSize int, search string) (*dto.PaginatedMessagesResponse, error) {
	// Clamp before any arithmetic; a zero or negative page size must never
	// reach the division below.
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.config.DefaultPageSize
	}
	if pageSize > s.config.MaxPageSize {
		pageSize = s.config.MaxPageSize
	}

	messages, total, err := s.messageRepo.FindWithPagination(db, search, page, pageSize)
	if err != nil {
		return nil, apperrors.RepositoryError(err, "❌ Error al listar mensajes")
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	if messages == nil {
		messages = []models.Message{}
	}

	return &dto.PaginatedMessagesResponse{
		Data:       messages,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// mapFieldError translates a field-level validation failure into the tagged
// rejection reported to the caller. Field priority mirrors the check order
// of the submission form: name, body, verification.
func mapFieldError(err error) error {
	var vErr *validator.ValidationError
	if !apperrors.As(err, &vErr) {
		return apperrors.InternalError(err)
	}
	if _, ok := vErr.Errors["author_name"]; ok {
		return apperrors.ErrInvalidName
	}
	if _, ok := vErr.Errors["body"]; ok {
		return apperrors.ErrInvalidBody
	}
	if _, ok := vErr.Errors["verification_token"]; ok {
		return apperrors.ErrMissingVerification
	}
	return apperrors.NewBadRequestError(vErr.Error())
}
