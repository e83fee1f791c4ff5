package apperrors

import (
	"net/http"
)

/*
Predefined errors and factories for the guestbook domain. The Message of
every caller-facing error doubles as the short human-readable response body
of the form endpoints, so it is written in the UI language.
*/

// --- Text submission validation ---

var ErrInvalidName = New(
	CodeValidationFailed,
	"guestbook",
	"❌ Nombre inválido",
	http.StatusBadRequest,
)

var ErrInvalidBody = New(
	CodeValidationFailed,
	"guestbook",
	"❌ Mensaje inválido",
	http.StatusBadRequest,
)

var ErrMissingVerification = New(
	CodeValidationFailed,
	"guestbook",
	"❌ Completa el reCAPTCHA",
	http.StatusBadRequest,
)

// --- Media ingestion ---

var ErrInvalidImageType = New(
	CodeMediaRejected,
	"gallery",
	"❌ Tipo de archivo no permitido",
	http.StatusBadRequest,
)

var ErrImageTooLarge = New(
	CodeMediaRejected,
	"gallery",
	"❌ Imagen demasiado grande (máx 5MB)",
	http.StatusBadRequest,
)

var ErrMissingImageField = New(
	CodeMediaRejected,
	"gallery",
	"❌ Falta el archivo de imagen",
	http.StatusBadRequest,
)

// --- Persistence failures ---

// StorageError wraps a disk write/delete failure. Nothing was recorded.
func StorageError(err error) *AppError {
	return Wrap(err, CodeStorageError, "gallery", "❌ Error al guardar imagen", http.StatusInternalServerError)
}

// RepositoryError wraps a database failure with a caller-facing message.
func RepositoryError(err error, message string) *AppError {
	return Wrap(err, CodeDatabaseError, "repository", message, http.StatusInternalServerError)
}
