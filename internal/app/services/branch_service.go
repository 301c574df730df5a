package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/repositories"
)

type branchStore interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetAll(ctx context.Context, order repositories.ListOrder) ([]*models.Branch, error)
	GetByID(ctx context.Context, id int64) (*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id int64) error
}

// BranchService defines the interface for branch operations.
type BranchService interface {
	ListBranches(ctx context.Context, order repositories.ListOrder) ([]*models.Branch, error)
	CreateBranch(ctx context.Context, req *dto.CreateBranchRequest) (*models.Branch, error)
	UpdateBranch(ctx context.Context, id int64, req *dto.UpdateBranchRequest) (*models.Branch, error)
	DeleteBranch(ctx context.Context, id int64) error
}

// branchServiceImpl implements BranchService.
type branchServiceImpl struct {
	branchRepo branchStore
	logger     zerolog.Logger
}

// NewBranchService creates a new BranchService.
func NewBranchService(branchRepo branchStore, logger zerolog.Logger) BranchService {
	return &branchServiceImpl{
		branchRepo: branchRepo,
		logger:     logger,
	}
}

func (s *branchServiceImpl) ListBranches(ctx context.Context, order repositories.ListOrder) ([]*models.Branch, error) {
	return s.branchRepo.GetAll(ctx, order)
}

func (s *branchServiceImpl) CreateBranch(ctx context.Context, req *dto.CreateBranchRequest) (*models.Branch, error) {
	branch := &models.Branch{
		Name:         req.Name,
		Code:         req.Code,
		RegulationID: req.Regulation,
	}

	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("branchId", branch.ID).Str("name", branch.Name).Msg("Branch created")
	return branch, nil
}

// UpdateBranch applies the non-nil fields of the request on top of the
// stored row.
func (s *branchServiceImpl) UpdateBranch(ctx context.Context, id int64, req *dto.UpdateBranchRequest) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Code != nil {
		branch.Code = *req.Code
	}
	if req.Regulation != nil {
		branch.RegulationID = *req.Regulation
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}

	return branch, nil
}

func (s *branchServiceImpl) DeleteBranch(ctx context.Context, id int64) error {
	return s.branchRepo.Delete(ctx, id)
}
