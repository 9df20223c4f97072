package model

import "strings"

// File categories offered by the upload form. The backend accepts any category string.
const (
	FileCategoryReports       = "reports"
	FileCategoryAnnouncements = "announcements"
	FileCategoryDocuments     = "documents"
)

// FileCategories returns the categories offered by the UI.
func FileCategories() []string {
	return []string{FileCategoryReports, FileCategoryAnnouncements, FileCategoryDocuments}
}

// FileRecord describes an uploaded file.
type FileRecord struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	Category     string    `json:"category"`
	UploadedBy   string    `json:"uploaded_by"`
	UploadedAt   Timestamp `json:"uploaded_at"`
}

// UploadResult is the response of POST /upload.
type UploadResult struct {
	Message string `json:"message"`
	FileID  string `json:"file_id"`
}

// NormalizeFileCategory trims and lowercases a category; the result must be path-safe.
func NormalizeFileCategory(value string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(value))
	if c == "" || strings.ContainsAny(c, "/\\?#") || c == "." || c == ".." {
		return "", false
	}
	return c, true
}
