package imaging

import "fmt"

// MaxUploadBytes is the ceiling applied to files before any processing.
const MaxUploadBytes = 20 << 20 // 20 MiB

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidationError reports a file rejected by the upload policy before any
// decoding or remote call happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ValidateFile checks the declared media type and size of a candidate
// upload. It reads nothing and has no side effects, so callers can check
// files freely.
func ValidateFile(mediaType string, size int64) error {
	if !allowedTypes[mediaType] {
		return &ValidationError{
			Reason: fmt.Sprintf("unsupported file type %q: accepted types are image/jpeg, image/png, image/gif and image/webp", mediaType),
		}
	}
	if size > MaxUploadBytes {
		return &ValidationError{
			Reason: fmt.Sprintf("file too large: %d bytes exceeds the %d byte limit", size, MaxUploadBytes),
		}
	}
	return nil
}
