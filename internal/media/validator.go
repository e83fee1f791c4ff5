// Package media decides admissibility of uploaded image payloads before any
// disk write happens.
package media

import (
	"guestbook_backend/pkg/apperrors"
)

// MaxImageSize is the default inclusive payload ceiling.
const MaxImageSize = 5 * 1024 * 1024 // 5MB

// extensions maps every supported content type to its stored extension. The
// declared content type is untrusted client input, but because this mapping
// is total over the allowed set, the stored extension is trustworthy for
// serving.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Validator checks declared content type and payload size.
type Validator struct {
	maxSize int64
	allowed map[string]string
}

// NewValidator builds a validator for the configured MIME allowlist. Types
// outside the supported extension mapping are ignored: no other extension is
// ever produced.
func NewValidator(maxSize int64, allowedTypes []string) *Validator {
	if maxSize <= 0 {
		maxSize = MaxImageSize
	}

	allowed := make(map[string]string, len(allowedTypes))
	for _, t := range allowedTypes {
		if ext, ok := extensions[t]; ok {
			allowed[t] = ext
		}
	}
	if len(allowed) == 0 {
		for t, ext := range extensions {
			allowed[t] = ext
		}
	}

	return &Validator{maxSize: maxSize, allowed: allowed}
}

// Default returns a validator with the stock allowlist and 5MB ceiling.
func Default() *Validator {
	return NewValidator(MaxImageSize, nil)
}

// AllowedType reports whether the declared content type is accepted.
func (v *Validator) AllowedType(contentType string) bool {
	_, ok := v.allowed[contentType]
	return ok
}

// Validate checks the declared content type and the fully buffered payload
// and returns the extension the stored file must carry. Payloads at the
// ceiling pass; one byte over is rejected.
func (v *Validator) Validate(contentType string, data []byte) (string, error) {
	ext, ok := v.allowed[contentType]
	if !ok {
		return "", apperrors.ErrInvalidImageType
	}
	if int64(len(data)) > v.maxSize {
		return "", apperrors.ErrImageTooLarge
	}
	return ext, nil
}
