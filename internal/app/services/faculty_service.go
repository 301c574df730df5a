package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/auth"
)

// facultyStore is the slice of FacultyRepository the faculty service needs.
type facultyStore interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	GetAll(ctx context.Context) ([]*models.Faculty, error)
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetUploadedNoteIDs(ctx context.Context, facultyID int64) ([]int64, error)
	Update(ctx context.Context, faculty *models.Faculty) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

// FacultyService defines the interface for faculty account management.
type FacultyService interface {
	ListFaculty(ctx context.Context) ([]*models.Faculty, error)
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error)
	UpdateFaculty(ctx context.Context, id int64, req *dto.UpdateFacultyRequest) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id int64) error
}

// facultyServiceImpl implements FacultyService.
type facultyServiceImpl struct {
	facultyRepo facultyStore
	logger      zerolog.Logger
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(facultyRepo facultyStore, logger zerolog.Logger) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
		logger:      logger,
	}
}

// ListFaculty returns every account, newest first, with the upload list
// filled and the password hash cleared.
func (s *facultyServiceImpl) ListFaculty(ctx context.Context) ([]*models.Faculty, error) {
	list, err := s.facultyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, faculty := range list {
		faculty.Password = ""
		ids, err := s.facultyRepo.GetUploadedNoteIDs(ctx, faculty.ID)
		if err != nil {
			return nil, err
		}
		faculty.UploadedNotes = ids
	}

	return list, nil
}

// CreateFaculty provisions an account with a hashed password. Duplicate
// email or employee id surfaces as a conflict.
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error) {
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

	s.logger.Info().Int64("facultyId", faculty.ID).Str("employeeId", faculty.EmployeeID).Msg("Faculty account created")
	faculty.Password = ""
	return faculty, nil
}

// UpdateFaculty applies the non-nil fields of the request. A non-nil
// password is rehashed; duplicate checks naturally exclude the account
// itself since its own values are no-op updates.
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, id int64, req *dto.UpdateFacultyRequest) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		faculty.Name = *req.Name
	}
	if req.Email != nil {
		faculty.Email = *req.Email
	}
	if req.EmployeeID != nil {
		faculty.EmployeeID = *req.EmployeeID
	}
	if req.Designation != nil {
		faculty.Designation = *req.Designation
	}

	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.facultyRepo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}

	faculty.Password = ""
	return faculty, nil
}

func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	return s.facultyRepo.Delete(ctx, id)
}
