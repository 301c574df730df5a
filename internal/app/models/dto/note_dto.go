package dto

import "time"

// --- Request DTOs ---

// UploadNotesRequest carries the shared multipart metadata for a batch upload.
// The file parts themselves arrive as one-or-more "files" form entries.
type UploadNotesRequest struct {
	Regulation int64  `form:"regulation" validate:"required,gt=0"`
	Subject    int64  `form:"subject" validate:"required,gt=0"`
	Branch     int64  `form:"branch" validate:"required,gt=0"`
	Semester   string `form:"semester" validate:"required"`
}

// NoteFilterRequest holds the optional equality filters for the admin listing.
// All absent means return everything.
type NoteFilterRequest struct {
	Regulation *int64  `form:"regulation"`
	Branch     *int64  `form:"branch"`
	Semester   *string `form:"semester"`
	Subject    *int64  `form:"subject"`
}

// DownloadZipRequest is the body of the batch zip download.
type DownloadZipRequest struct {
	NoteIDs []int64 `json:"noteIds"`
}

// --- Response DTOs ---

// UploadedNote is one created note summary in the upload response.
type UploadedNote struct {
	ID         int64     `json:"id" example:"7"`
	Title      string    `json:"title" example:"unit-1"`
	Regulation int64     `json:"regulation" example:"1"`
	Subject    int64     `json:"subject" example:"3"`
	Branch     int64     `json:"branch" example:"2"`
	Semester   string    `json:"semester" example:"3"`
	UploadedBy int64     `json:"uploadedBy" example:"5"`
	CreatedAt  time.Time `json:"createdAt"`
	FileURL    string    `json:"fileUrl" example:"/notes/7"`
}

// UploadNotesResponse is the 201 body of a successful batch upload.
type UploadNotesResponse struct {
	Message string         `json:"message" example:"Notes uploaded successfully"`
	Notes   []UploadedNote `json:"notes"`
}

// SubjectRef is the subject projection used in expanded note listings.
type SubjectRef struct {
	Name string `json:"name" example:"Thermodynamics"`
	Code string `json:"code" example:"ME3201"`
}

// UploaderRef is the faculty projection attached to expanded note listings.
type UploaderRef struct {
	ID          int64  `json:"id" example:"5"`
	Name        string `json:"name" example:"A. Professor"`
	Email       string `json:"email" example:"prof@college.edu"`
	EmployeeID  string `json:"employeeId,omitempty" example:"RCEEME0042"`
	Designation string `json:"designation,omitempty" example:"Assistant Professor"`
}

// NoteDetailsResponse is a note row with its taxonomy references expanded to
// display names. The binary payload is never part of it.
type NoteDetailsResponse struct {
	ID         int64        `json:"id" example:"7"`
	Title      string       `json:"title" example:"unit-1"`
	Semester   string       `json:"semester" example:"3"`
	Regulation string       `json:"regulation" example:"R22"`
	Branch     string       `json:"branch" example:"Mechanical Engineering"`
	Subject    SubjectRef   `json:"subject"`
	UploadedBy *UploaderRef `json:"uploadedBy,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// NotesEnvelope wraps a note list under a "notes" key.
type NotesEnvelope struct {
	Notes []NoteDetailsResponse `json:"notes"`
}
