package utils

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	MinPasswordLength = 8
	MaxUploadBytes    = 10 << 20 // 10 MiB
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// Required reports the missing fields by name so every endpoint rejects
// incomplete bodies the same way.
func Required(fields map[string]string) *AppError {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return Validation("missing required fields: " + strings.Join(missing, ", "))
}

func ValidEmail(email string) *AppError {
	if !emailPattern.MatchString(email) {
		return Validation("invalid email address")
	}
	return nil
}

func ValidPassword(password string) *AppError {
	if len(password) < MinPasswordLength {
		return Validation(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// ValidUpload enforces the shared size and content-type caps for
// health-record files.
func ValidUpload(size int64, mimeType string) *AppError {
	if size <= 0 {
		return Validation("uploaded file is empty")
	}
	if size > MaxUploadBytes {
		return Validation(fmt.Sprintf("file exceeds the %d MB limit", MaxUploadBytes>>20))
	}
	if !allowedUploadTypes[strings.ToLower(mimeType)] {
		return Validation("unsupported file type, expected PDF, JPEG or PNG")
	}
	return nil
}
