package model

import "time"

// Normalised CV file types.
const (
	FileTypePDF  = "pdf"
	FileTypeDOCX = "docx"
	FileTypeDOC  = "doc"
	FileTypeTXT  = "txt"
	FileTypeText = "text/plain"
)

// ManualProfileFileName keys the CV row that holds a user's free-text profile.
// (user_id, file_name) is unique, so each user has at most one such row.
const ManualProfileFileName = "manuel_profile"

// CV is an uploaded résumé or a manually entered profile, stored as plain text.
// StoragePath is the object key of the archived original; empty for the manual profile
// or when object storage is disabled.
type CV struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	Content     string    `json:"content"`
	StoragePath string    `json:"-"`
	UploadedAt  time.Time `json:"uploadedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
