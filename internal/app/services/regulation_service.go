package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/repositories"
)

type regulationStore interface {
	Create(ctx context.Context, regulation *models.Regulation) error
	GetAll(ctx context.Context, order repositories.ListOrder) ([]*models.Regulation, error)
	GetByID(ctx context.Context, id int64) (*models.Regulation, error)
	Update(ctx context.Context, regulation *models.Regulation) error
	Delete(ctx context.Context, id int64) error
}

// RegulationService defines the interface for regulation operations.
type RegulationService interface {
	ListRegulations(ctx context.Context, order repositories.ListOrder) ([]*models.Regulation, error)
	CreateRegulation(ctx context.Context, req *dto.CreateRegulationRequest) (*models.Regulation, error)
	UpdateRegulation(ctx context.Context, id int64, req *dto.UpdateRegulationRequest) (*models.Regulation, error)
	DeleteRegulation(ctx context.Context, id int64) error
}

// regulationServiceImpl implements RegulationService.
type regulationServiceImpl struct {
	regulationRepo regulationStore
	logger         zerolog.Logger
}

// NewRegulationService creates a new RegulationService.
func NewRegulationService(regulationRepo regulationStore, logger zerolog.Logger) RegulationService {
	return &regulationServiceImpl{
		regulationRepo: regulationRepo,
		logger:         logger,
	}
}

func (s *regulationServiceImpl) ListRegulations(ctx context.Context, order repositories.ListOrder) ([]*models.Regulation, error) {
	return s.regulationRepo.GetAll(ctx, order)
}

func (s *regulationServiceImpl) CreateRegulation(ctx context.Context, req *dto.CreateRegulationRequest) (*models.Regulation, error) {
	regulation := &models.Regulation{
		Name:              req.Name,
		NumberOfSemesters: req.NumberOfSemesters,
	}

	if err := s.regulationRepo.Create(ctx, regulation); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("regulationId", regulation.ID).Str("name", regulation.Name).Msg("Regulation created")
	return regulation, nil
}

// UpdateRegulation applies the non-nil fields of the request on top of the
// stored row.
func (s *regulationServiceImpl) UpdateRegulation(ctx context.Context, id int64, req *dto.UpdateRegulationRequest) (*models.Regulation, error) {
	regulation, err := s.regulationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		regulation.Name = *req.Name
	}
	if req.NumberOfSemesters != nil {
		regulation.NumberOfSemesters = *req.NumberOfSemesters
	}

	if err := s.regulationRepo.Update(ctx, regulation); err != nil {
		return nil, err
	}

	return regulation, nil
}

func (s *regulationServiceImpl) DeleteRegulation(ctx context.Context, id int64) error {
	return s.regulationRepo.Delete(ctx, id)
}
