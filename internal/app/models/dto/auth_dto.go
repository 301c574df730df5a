package dto

// --- Registration ---

// StudentRegisterRequest registers a student account.
type StudentRegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Branch     string `json:"branch" validate:"required"`
	RollNumber string `json:"rollNumber" validate:"required"`
}

// FacultyRegisterRequest registers a faculty account.
type FacultyRegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	EmployeeID  string `json:"employeeId" validate:"required"`
	Designation string `json:"designation"`
}

// --- Login ---

// StudentLoginRequest authenticates by roll number.
type StudentLoginRequest struct {
	RollNumber string `json:"rollNumber" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// FacultyLoginRequest authenticates by employee id.
type FacultyLoginRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// AdminLoginRequest authenticates against the configured admin credentials.
type AdminLoginRequest struct {
	AdminID  string `json:"adminId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Password reset ---

// ForgotPasswordRequest asks for a reset link. ID is the roll number for
// students and the employee id for faculty.
type ForgotPasswordRequest struct {
	Role string `json:"role" validate:"required"`
	ID   string `json:"id" validate:"required"`
}

// ResetPasswordRequest sets a new password using a reset token.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// --- Responses ---

// StudentInfo is the student projection in auth responses.
type StudentInfo struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Branch     string `json:"branch"`
	RollNumber string `json:"rollNumber"`
	Role       string `json:"role" example:"student"`
}

// FacultyInfo is the faculty projection in auth responses.
type FacultyInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	EmployeeID  string `json:"employeeId"`
	Designation string `json:"designation"`
	Role        string `json:"role" example:"faculty"`
}

// AdminInfo is the admin projection in auth responses.
type AdminInfo struct {
	Name string `json:"name" example:"Admin"`
	Role string `json:"role" example:"admin"`
}

// StudentAuthResponse is returned by student register/login.
type StudentAuthResponse struct {
	Message string      `json:"message"`
	Student StudentInfo `json:"student"`
	Token   string      `json:"token"`
}

// FacultyAuthResponse is returned by faculty register/login.
type FacultyAuthResponse struct {
	Message string      `json:"message"`
	Faculty FacultyInfo `json:"faculty"`
	Token   string      `json:"token"`
}

// AdminAuthResponse is returned by admin login.
type AdminAuthResponse struct {
	Message string    `json:"message"`
	Admin   AdminInfo `json:"admin"`
	Token   string    `json:"token"`
}
