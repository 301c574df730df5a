package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/auth"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/email"
)

// Institutional id formats: four admitted batches of the mechanical
// department for students, a fixed staff prefix for faculty. Both ids are
// exactly ten characters.
var (
	rollNumberPattern = regexp.MustCompile(`^(22ME|23ME|24ME|25ME)`)
	employeeIDPattern = regexp.MustCompile(`^RCEEME`)
)

const institutionalIDLength = 10

type studentAuthStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type facultyAuthStore interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Faculty, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// AdminCredentials are the configured admin id/password; the admin has no
// database record.
type AdminCredentials struct {
	ID       string
	Password string
}

// AuthService defines the interface for authentication operations.
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.StudentRegisterRequest) (*dto.StudentAuthResponse, error)
	RegisterFaculty(ctx context.Context, req *dto.FacultyRegisterRequest) (*dto.FacultyAuthResponse, error)
	LoginStudent(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentAuthResponse, error)
	LoginFaculty(ctx context.Context, req *dto.FacultyLoginRequest) (*dto.FacultyAuthResponse, error)
	LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminAuthResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// authServiceImpl implements AuthService.
type authServiceImpl struct {
	studentRepo  studentAuthStore
	facultyRepo  facultyAuthStore
	jwtService   *auth.JWTService
	emailService email.EmailService
	admin        AdminCredentials
	frontendURL  string
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	studentRepo studentAuthStore,
	facultyRepo facultyAuthStore,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	admin AdminCredentials,
	frontendURL string,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		studentRepo:  studentRepo,
		facultyRepo:  facultyRepo,
		jwtService:   jwtService,
		emailService: emailService,
		admin:        admin,
		frontendURL:  frontendURL,
		logger:       logger,
	}
}

func validRollNumber(rollNumber string) bool {
	return len(rollNumber) == institutionalIDLength && rollNumberPattern.MatchString(rollNumber)
}

func validEmployeeID(employeeID string) bool {
	return len(employeeID) == institutionalIDLength && employeeIDPattern.MatchString(employeeID)
}

// RegisterStudent creates a student account and logs it in.
func (s *authServiceImpl) RegisterStudent(ctx context.Context, req *dto.StudentRegisterRequest) (*dto.StudentAuthResponse, error) {
	if !validRollNumber(req.RollNumber) {
		return nil, apperrors.NewBadRequestError("Invalid roll number format")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		Branch:     req.Branch,
		RollNumber: req.RollNumber,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(student.ID, string(models.RoleStudent))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", student.ID).Str("rollNumber", student.RollNumber).Msg("Student registered")

	return &dto.StudentAuthResponse{
		Message: "Student registered successfully",
		Student: toStudentInfo(student),
		Token:   token,
	}, nil
}

// RegisterFaculty creates a faculty account and logs it in.
func (s *authServiceImpl) RegisterFaculty(ctx context.Context, req *dto.FacultyRegisterRequest) (*dto.FacultyAuthResponse, error) {
	if !validEmployeeID(req.EmployeeID) {
		return nil, apperrors.NewBadRequestError("Invalid employee ID format")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	faculty := &models.Faculty{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		EmployeeID:  req.EmployeeID,
		Designation: req.Designation,
	}

	if err := s.facultyRepo.Create(ctx, faculty); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(faculty.ID, string(models.RoleFaculty))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("facultyId", faculty.ID).Str("employeeId", faculty.EmployeeID).Msg("Faculty registered")

	return &dto.FacultyAuthResponse{
		Message: "Faculty registered successfully",
		Faculty: toFacultyInfo(faculty),
		Token:   token,
	}, nil
}

// LoginStudent authenticates by roll number. Unknown accounts and wrong
// passwords are indistinguishable to the caller.
func (s *authServiceImpl) LoginStudent(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentAuthResponse, error) {
	student, err := s.studentRepo.GetByRollNumber(ctx, req.RollNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(student.ID, string(models.RoleStudent))
	if err != nil {
		return nil, err
	}

	return &dto.StudentAuthResponse{
		Message: "Login successful",
		Student: toStudentInfo(student),
		Token:   token,
	}, nil
}

// LoginFaculty authenticates by employee id.
func (s *authServiceImpl) LoginFaculty(ctx context.Context, req *dto.FacultyLoginRequest) (*dto.FacultyAuthResponse, error) {
	faculty, err := s.facultyRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(faculty.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(faculty.ID, string(models.RoleFaculty))
	if err != nil {
		return nil, err
	}

	return &dto.FacultyAuthResponse{
		Message: "Login successful",
		Faculty: toFacultyInfo(faculty),
		Token:   token,
	}, nil
}

// LoginAdmin checks the configured credentials and issues an admin token
// with no backing record.
func (s *authServiceImpl) LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminAuthResponse, error) {
	if s.admin.ID == "" || req.AdminID != s.admin.ID || req.Password != s.admin.Password {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(0, string(models.RoleAdmin))
	if err != nil {
		return nil, err
	}

	return &dto.AdminAuthResponse{
		Message: "Login successful",
		Admin:   dto.AdminInfo{Name: "Admin", Role: string(models.RoleAdmin)},
		Token:   token,
	}, nil
}

// ForgotPassword issues a short-lived reset token and mails the reset link.
// The account is addressed by its institutional id, not email.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	var (
		userID int64
		name   string
		toMail string
	)

	switch req.Role {
	case string(models.RoleStudent):
		student, err := s.studentRepo.GetByRollNumber(ctx, req.ID)
		if err != nil {
			return err
		}
		userID, name, toMail = student.ID, student.Name, student.Email
	case string(models.RoleFaculty):
		faculty, err := s.facultyRepo.GetByEmployeeID(ctx, req.ID)
		if err != nil {
			return err
		}
		userID, name, toMail = faculty.ID, faculty.Name, faculty.Email
	default:
		return apperrors.NewBadRequestError("Invalid role")
	}

	token, err := s.jwtService.GenerateResetToken(userID, req.Role)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	if err := s.emailService.SendPasswordResetEmail(toMail, name, resetLink); err != nil {
		s.logger.Error().Err(err).Str("role", req.Role).Msg("Error sending password reset email")
		return err
	}

	return nil
}

// ResetPassword verifies the reset token and rehashes the password for the
// account the token names.
func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.jwtService.ValidateResetToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return apperrors.ErrTokenExpired
		}
		return apperrors.ErrTokenInvalid
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	switch claims.Role {
	case string(models.RoleStudent):
		return s.studentRepo.UpdatePassword(ctx, claims.UserID, hash)
	case string(models.RoleFaculty):
		return s.facultyRepo.UpdatePassword(ctx, claims.UserID, hash)
	default:
		return apperrors.ErrTokenInvalid
	}
}

func toStudentInfo(student *models.Student) dto.StudentInfo {
	return dto.StudentInfo{
		ID:         student.ID,
		Name:       student.Name,
		Email:      student.Email,
		Branch:     student.Branch,
		RollNumber: student.RollNumber,
		Role:       string(models.RoleStudent),
	}
}

func toFacultyInfo(faculty *models.Faculty) dto.FacultyInfo {
	return dto.FacultyInfo{
		ID:          faculty.ID,
		Name:        faculty.Name,
		Email:       faculty.Email,
		EmployeeID:  faculty.EmployeeID,
		Designation: faculty.Designation,
		Role:        string(models.RoleFaculty),
	}
}
