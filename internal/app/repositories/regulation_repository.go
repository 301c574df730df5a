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

// RegulationRepository handles database operations for regulations.
type RegulationRepository struct {
	DB *pgxpool.Pool
}

// NewRegulationRepository creates a new RegulationRepository.
func NewRegulationRepository(db *pgxpool.Pool) *RegulationRepository {
	return &RegulationRepository{DB: db}
}

// Create inserts a regulation and fills in its generated fields.
func (r *RegulationRepository) Create(ctx context.Context, regulation *models.Regulation) error {
	query := `
		INSERT INTO regulations (name, number_of_semesters)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query, regulation.Name, regulation.NumberOfSemesters).
		Scan(&regulation.ID, &regulation.CreatedAt, &regulation.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("name", regulation.Name).Msg("Error creating regulation")
		return err
	}

	return nil
}

// GetAll returns every regulation in the requested order.
func (r *RegulationRepository) GetAll(ctx context.Context, order ListOrder) ([]*models.Regulation, error) {
	query := `
		SELECT g.id, g.name, g.number_of_semesters, g.created_at, g.updated_at
		FROM regulations g
		ORDER BY ` + order.clause("g")

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching regulations")
		return nil, err
	}
	defer rows.Close()

	regulations := make([]*models.Regulation, 0)
	for rows.Next() {
		var regulation models.Regulation
		if err := rows.Scan(&regulation.ID, &regulation.Name, &regulation.NumberOfSemesters,
			&regulation.CreatedAt, &regulation.UpdatedAt); err != nil {
			return nil, err
		}
		regulations = append(regulations, &regulation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return regulations, nil
}

// GetByID retrieves a regulation by its ID.
func (r *RegulationRepository) GetByID(ctx context.Context, id int64) (*models.Regulation, error) {
	query := `
		SELECT id, name, number_of_semesters, created_at, updated_at
		FROM regulations
		WHERE id = $1
	`

	var regulation models.Regulation
	err := r.DB.QueryRow(ctx, query, id).Scan(&regulation.ID, &regulation.Name,
		&regulation.NumberOfSemesters, &regulation.CreatedAt, &regulation.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRegulationNotFound
		}
		logger.Error().Err(err).Int64("regulationId", id).Msg("Error fetching regulation")
		return nil, err
	}

	return &regulation, nil
}

// Update persists the full regulation row.
func (r *RegulationRepository) Update(ctx context.Context, regulation *models.Regulation) error {
	query := `
		UPDATE regulations
		SET name = $1, number_of_semesters = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`

	err := r.DB.QueryRow(ctx, query, regulation.Name, regulation.NumberOfSemesters, regulation.ID).
		Scan(&regulation.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrRegulationNotFound
		}
		logger.Error().Err(err).Int64("regulationId", regulation.ID).Msg("Error updating regulation")
		return err
	}

	return nil
}

// Delete removes a regulation. Regulations still referenced by branches
// cannot be deleted.
func (r *RegulationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM regulations WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("Regulation is still referenced by branches")
		}
		logger.Error().Err(err).Int64("regulationId", id).Msg("Error deleting regulation")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRegulationNotFound
	}

	return nil
}
