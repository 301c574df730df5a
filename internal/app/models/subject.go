package models

import "time"

// Subject is a course under a branch for a specific semester.
// The (code, branch, semester) triple is unique; the constraint is enforced
// by the subjects_code_branch_semester_key index.
type Subject struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	BranchID  int64     `json:"branchId" db:"branch_id"`
	Semester  int       `json:"semester" db:"semester"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Branch    *Branch   `json:"branch,omitempty"`
}
