package model

import "time"

// Upload methods supported by the upload resolver.
const (
	UploadMethodLink      = "link"
	UploadMethodCloudFile = "cloud-file"
)

// Document is a study-material reference attached to a Subsection.
// StoragePath is non-empty if and only if UploadMethod is cloud-file.
// This is a pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID           int64     `json:"id"`
	SubsectionID int64     `json:"-"`
	Name         string    `json:"name"`
	Link         string    `json:"link"`
	UploadMethod string    `json:"upload_method"`
	StoragePath  string    `json:"storage_path"`
	CreatedAt    time.Time `json:"-"`
}

// QuestionPaper is a past-exam reference scoped to a Subject and optionally a
// Subsection. Papers whose subsection was deleted remain listed with a null
// subsection name.
type QuestionPaper struct {
	ID             int64     `json:"id"`
	SubjectID      int64     `json:"-"`
	SubsectionID   *int64    `json:"subsection_id"`
	SubsectionName *string   `json:"subsection_name"`
	Name           string    `json:"name"`
	Link           string    `json:"link"`
	UploadMethod   string    `json:"upload_method"`
	StoragePath    string    `json:"storage_path"`
	CreatedAt      time.Time `json:"-"`
}
