package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ExcludedExtension struct {
	ID        string    `json:"id"`
	Extension string    `json:"extension"`
	CreatedAt time.Time `json:"created_at"`
}

// NewExcludedExtension normalizes the extension to its dotted lower-case form
func NewExcludedExtension(extension string) *ExcludedExtension {
	ext := strings.ToLower(strings.TrimSpace(extension))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &ExcludedExtension{
		ID:        uuid.New().String(),
		Extension: ext,
		CreatedAt: time.Now(),
	}
}

func (ee *ExcludedExtension) Validate() error {
	if ee.Extension == "" || ee.Extension == "." {
		return &ValidationError{Field: "extension", Message: "Extension is required"}
	}
	if strings.ContainsAny(ee.Extension, "/ ") {
		return &ValidationError{Field: "extension", Message: "Extension must not contain slashes or spaces"}
	}
	return nil
}

// Pathspec renders the extension as a git exclusion pathspec
func (ee *ExcludedExtension) Pathspec() string {
	if ee.Extension == "" {
		return ""
	}
	return ":(exclude,glob)**/*" + ee.Extension
}
