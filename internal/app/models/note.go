package models

import "time"

// NoteFile is the binary payload embedded in a note record. The bytes live
// inline with the metadata row; there is no separate blob store.
type NoteFile struct {
	Data        []byte `json:"-" db:"file_data"`
	ContentType string `json:"contentType" db:"file_content_type"`
	Filename    string `json:"filename" db:"file_filename"`
}

// Note is an uploaded file record tagged with the regulation/branch/subject
// taxonomy. Semester is kept as a string, matching the upload form field.
// The taxonomy references are not cross-validated against each other
// (subject-belongs-to-branch-belongs-to-regulation is not checked).
type Note struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	RegulationID int64     `json:"regulation" db:"regulation_id"`
	SubjectID    int64     `json:"subject" db:"subject_id"`
	BranchID     int64     `json:"branch" db:"branch_id"`
	Semester     string    `json:"semester" db:"semester"`
	File         NoteFile  `json:"file"`
	UploadedBy   int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
