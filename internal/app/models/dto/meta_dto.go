package dto

// --- Taxonomy request DTOs (meta + admin routes) ---

// CreateRegulationRequest creates a curriculum version.
type CreateRegulationRequest struct {
	Name              string `json:"name" validate:"required" example:"R22"`
	NumberOfSemesters int    `json:"numberOfSemesters" validate:"required,gt=0" example:"8"`
}

// UpdateRegulationRequest is a partial update; nil fields are left untouched.
type UpdateRegulationRequest struct {
	Name              *string `json:"name,omitempty"`
	NumberOfSemesters *int    `json:"numberOfSemesters,omitempty"`
}

// CreateBranchRequest creates a branch under a regulation.
type CreateBranchRequest struct {
	Name       string `json:"name" validate:"required" example:"Mechanical Engineering"`
	Code       string `json:"code" validate:"required" example:"ME"`
	Regulation int64  `json:"regulation" validate:"required,gt=0" example:"1"`
}

// UpdateBranchRequest is a partial update; nil fields are left untouched.
type UpdateBranchRequest struct {
	Name       *string `json:"name,omitempty"`
	Code       *string `json:"code,omitempty"`
	Regulation *int64  `json:"regulation,omitempty"`
}

// CreateSubjectRequest creates a subject; the (code, branch, semester) triple
// must be unique.
type CreateSubjectRequest struct {
	Name     string `json:"name" validate:"required" example:"Thermodynamics"`
	Code     string `json:"code" validate:"required" example:"ME3201"`
	Branch   int64  `json:"branch" validate:"required,gt=0" example:"2"`
	Semester int    `json:"semester" validate:"required,gt=0" example:"3"`
}

// UpdateSubjectRequest is a partial update; nil fields are left untouched.
type UpdateSubjectRequest struct {
	Name     *string `json:"name,omitempty"`
	Code     *string `json:"code,omitempty"`
	Branch   *int64  `json:"branch,omitempty"`
	Semester *int    `json:"semester,omitempty"`
}

// SubjectFilterRequest narrows the public subject listing.
type SubjectFilterRequest struct {
	Branch   *int64 `form:"branch"`
	Semester *int   `form:"sem"`
}

// --- Faculty management DTOs (admin routes) ---

// CreateFacultyRequest creates a faculty account.
type CreateFacultyRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	EmployeeID  string `json:"employeeId" validate:"required"`
	Designation string `json:"designation" validate:"required"`
}

// UpdateFacultyRequest is a partial update; a non-nil password is rehashed.
type UpdateFacultyRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	EmployeeID  *string `json:"employeeId,omitempty"`
	Designation *string `json:"designation,omitempty"`
}
