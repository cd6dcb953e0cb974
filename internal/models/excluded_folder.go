package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExcludedFolder represents a folder that should be excluded from the audit
type ExcludedFolder struct {
	ID         string    `json:"id"`
	FolderPath string    `json:"folder_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewExcludedFolder creates a new ExcludedFolder with a generated ID
func NewExcludedFolder(folderPath string) *ExcludedFolder {
	return &ExcludedFolder{
		ID:         uuid.New().String(),
		FolderPath: strings.Trim(strings.TrimSpace(folderPath), "/"),
		CreatedAt:  time.Now(),
	}
}

// Validate validates the ExcludedFolder fields
func (ef *ExcludedFolder) Validate() error {
	if ef.FolderPath == "" {
		return &ValidationError{Field: "folder_path", Message: "Folder path is required"}
	}
	if strings.Contains(ef.FolderPath, "..") {
		return &ValidationError{Field: "folder_path", Message: "Folder path must stay inside the repository"}
	}
	return nil
}

// Pathspec renders the folder as a git exclusion pathspec
func (ef *ExcludedFolder) Pathspec() string {
	if ef.FolderPath == "" {
		return ""
	}
	return ":(exclude)" + ef.FolderPath + "/**"
}
