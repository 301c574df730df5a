package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/repositories"
)

type subjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	Find(ctx context.Context, filter repositories.SubjectFilter, order repositories.ListOrder) ([]*models.Subject, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// SubjectService defines the interface for subject operations.
type SubjectService interface {
	ListSubjects(ctx context.Context, filter *dto.SubjectFilterRequest, order repositories.ListOrder) ([]*models.Subject, error)
	CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}

// subjectServiceImpl implements SubjectService.
type subjectServiceImpl struct {
	subjectRepo subjectStore
	logger      zerolog.Logger
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectRepo subjectStore, logger zerolog.Logger) SubjectService {
	return &subjectServiceImpl{
		subjectRepo: subjectRepo,
		logger:      logger,
	}
}

func (s *subjectServiceImpl) ListSubjects(ctx context.Context, filter *dto.SubjectFilterRequest, order repositories.ListOrder) ([]*models.Subject, error) {
	repoFilter := repositories.SubjectFilter{}
	if filter != nil {
		repoFilter.BranchID = filter.Branch
		repoFilter.Semester = filter.Semester
	}
	return s.subjectRepo.Find(ctx, repoFilter, order)
}

// CreateSubject inserts a subject. A duplicate (code, branch, semester)
// triple surfaces as a conflict.
func (s *subjectServiceImpl) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		Name:     req.Name,
		Code:     req.Code,
		BranchID: req.Branch,
		Semester: req.Semester,
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectId", subject.ID).Str("code", subject.Code).Msg("Subject created")
	return subject, nil
}

// UpdateSubject applies the non-nil fields of the request on top of the
// stored row. The uniqueness of the triple is re-checked by the database.
func (s *subjectServiceImpl) UpdateSubject(ctx context.Context, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Code != nil {
		subject.Code = *req.Code
	}
	if req.Branch != nil {
		subject.BranchID = *req.Branch
	}
	if req.Semester != nil {
		subject.Semester = *req.Semester
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjectRepo.Delete(ctx, id)
}
