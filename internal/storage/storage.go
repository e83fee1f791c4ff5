package storage

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, reader io.Reader) error

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// GetSize returns the size of a file in bytes
	GetSize(ctx context.Context, path string) (int64, error)
}

// NewFilename generates a collision-resistant name for a stored file. The
// randomness of the UUID makes a uniqueness check against existing files
// unnecessary.
func NewFilename(ext string) string {
	return uuid.New().String() + "." + ext
}
