package models

// FileStatus represents what a commit did to a file
type FileStatus string

const (
	FileStatusAdded    FileStatus = "added"
	FileStatusModified FileStatus = "modified"
	FileStatusDeleted  FileStatus = "deleted"
)

// ParseFileStatus maps a single-letter name-status code to a FileStatus.
// Copies count as additions and renames as modifications. The boolean is
// false for codes that do not affect file counters (T, U, X, B).
func ParseFileStatus(code string) (FileStatus, bool) {
	if code == "" {
		return "", false
	}
	switch code[0] {
	case 'A', 'C':
		return FileStatusAdded, true
	case 'D':
		return FileStatusDeleted, true
	case 'M', 'R':
		return FileStatusModified, true
	default:
		return "", false
	}
}
