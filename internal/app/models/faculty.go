package models

import "time"

// Faculty is a staff account that can upload notes.
// UploadedNotes is a derived back-reference kept in the faculty_uploads table;
// it is appended alongside every note the faculty saves.
type Faculty struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Password      string    `json:"-" db:"password"`
	EmployeeID    string    `json:"employeeId" db:"employee_id"`
	Designation   string    `json:"designation" db:"designation"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UploadedNotes []int64   `json:"uploadedNotes,omitempty"`
}
