package dto

import "guestbook_backend/internal/models"

// SubmitMessageRequest is the public guestbook form. Validation runs after
// sanitization, so the tags see already stripped values.
type SubmitMessageRequest struct {
	AuthorName        string `form:"author_name" validate:"required,author_name"`
	Body              string `form:"body" validate:"required,min=10,max=500"`
	VerificationToken string `form:"verification_token" validate:"required"`
}

// UpdateMessageRequest is the admin edit form. No verification token: the
// admin surface sits behind an external access-control gate.
type UpdateMessageRequest struct {
	AuthorName string `form:"author_name" validate:"required,author_name"`
	Body       string `form:"body" validate:"required,min=10,max=500"`
}

// PaginatedMessagesResponse is the admin listing payload.
type PaginatedMessagesResponse struct {
	Data       []models.Message `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}
