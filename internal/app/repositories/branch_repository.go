package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/dberrors"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/logger"
)

// BranchRepository handles database operations for branches.
type BranchRepository struct {
	DB *pgxpool.Pool
}

// NewBranchRepository creates a new BranchRepository.
func NewBranchRepository(db *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{DB: db}
}

// Create inserts a branch and fills in its generated fields.
func (r *BranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	query := `
		INSERT INTO branches (name, code, regulation_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query, branch.Name, branch.Code, branch.RegulationID).
		Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrRegulationNotFound
		}
		logger.Error().Err(err).Str("name", branch.Name).Msg("Error creating branch")
		return err
	}

	return nil
}

// GetAll returns every branch with its regulation expanded, in the
// requested order.
func (r *BranchRepository) GetAll(ctx context.Context, order ListOrder) ([]*models.Branch, error) {
	query := `
		SELECT b.id, b.name, b.code, b.regulation_id, b.created_at, b.updated_at,
			r.id, r.name, r.number_of_semesters, r.created_at, r.updated_at
		FROM branches b
		JOIN regulations r ON b.regulation_id = r.id
		ORDER BY ` + order.clause("b")

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching branches")
		return nil, err
	}
	defer rows.Close()

	branches := make([]*models.Branch, 0)
	for rows.Next() {
		var branch models.Branch
		var regulation models.Regulation
		if err := rows.Scan(
			&branch.ID, &branch.Name, &branch.Code, &branch.RegulationID,
			&branch.CreatedAt, &branch.UpdatedAt,
			&regulation.ID, &regulation.Name, &regulation.NumberOfSemesters,
			&regulation.CreatedAt, &regulation.UpdatedAt,
		); err != nil {
			return nil, err
		}
		branch.Regulation = &regulation
		branches = append(branches, &branch)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return branches, nil
}

// GetByID retrieves a branch by its ID, without the regulation expansion.
func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*models.Branch, error) {
	query := `
		SELECT id, name, code, regulation_id, created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var branch models.Branch
	err := r.DB.QueryRow(ctx, query, id).Scan(&branch.ID, &branch.Name, &branch.Code,
		&branch.RegulationID, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBranchNotFound
		}
		logger.Error().Err(err).Int64("branchId", id).Msg("Error fetching branch")
		return nil, err
	}

	return &branch, nil
}

// Update persists the full branch row.
func (r *BranchRepository) Update(ctx context.Context, branch *models.Branch) error {
	query := `
		UPDATE branches
		SET name = $1, code = $2, regulation_id = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.DB.QueryRow(ctx, query, branch.Name, branch.Code, branch.RegulationID, branch.ID).
		Scan(&branch.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrBranchNotFound
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrRegulationNotFound
		}
		logger.Error().Err(err).Int64("branchId", branch.ID).Msg("Error updating branch")
		return err
	}

	return nil
}

// Delete removes a branch. Branches still referenced by subjects cannot
// be deleted.
func (r *BranchRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("Branch is still referenced by subjects")
		}
		logger.Error().Err(err).Int64("branchId", id).Msg("Error deleting branch")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBranchNotFound
	}

	return nil
}
