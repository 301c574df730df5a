package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/dberrors"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/logger"
)

// subjectUniqueConstraint enforces one subject code per branch and semester.
const subjectUniqueConstraint = "subjects_code_branch_semester_key"

// SubjectFilter holds the optional equality filters for subject listings.
type SubjectFilter struct {
	BranchID *int64
	Semester *int
}

// SubjectRepository handles database operations for subjects.
type SubjectRepository struct {
	DB *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

// Create inserts a subject and fills in its generated fields.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name, code, branch_id, semester)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query, subject.Name, subject.Code, subject.BranchID, subject.Semester).
		Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, subjectUniqueConstraint) {
			return apperrors.ErrDuplicateSubject
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrBranchNotFound
		}
		logger.Error().Err(err).Str("code", subject.Code).Msg("Error creating subject")
		return err
	}

	return nil
}

// Find returns the subjects matching the filter with their branch expanded,
// in the requested order.
func (r *SubjectRepository) Find(ctx context.Context, filter SubjectFilter, order ListOrder) ([]*models.Subject, error) {
	sqlBuilder := squirrel.Select(
		"s.id", "s.name", "s.code", "s.branch_id", "s.semester", "s.created_at", "s.updated_at",
		"b.id", "b.name", "b.code", "b.regulation_id", "b.created_at", "b.updated_at",
	).From("subjects s").
		Join("branches b ON s.branch_id = b.id").
		OrderBy(order.clause("s")).
		PlaceholderFormat(squirrel.Dollar)

	if filter.BranchID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"s.branch_id": *filter.BranchID})
	}
	if filter.Semester != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"s.semester": *filter.Semester})
	}

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find subjects SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing find subjects query")
		return nil, err
	}
	defer rows.Close()

	subjects := make([]*models.Subject, 0)
	for rows.Next() {
		var subject models.Subject
		var branch models.Branch
		if err := rows.Scan(
			&subject.ID, &subject.Name, &subject.Code, &subject.BranchID,
			&subject.Semester, &subject.CreatedAt, &subject.UpdatedAt,
			&branch.ID, &branch.Name, &branch.Code, &branch.RegulationID,
			&branch.CreatedAt, &branch.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subject.Branch = &branch
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// GetByID retrieves a subject by its ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name, code, branch_id, semester, created_at, updated_at
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.DB.QueryRow(ctx, query, id).Scan(&subject.ID, &subject.Name, &subject.Code,
		&subject.BranchID, &subject.Semester, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectId", id).Msg("Error fetching subject")
		return nil, err
	}

	return &subject, nil
}

// Update persists the full subject row.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, code = $2, branch_id = $3, semester = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.DB.QueryRow(ctx, query, subject.Name, subject.Code, subject.BranchID,
		subject.Semester, subject.ID).Scan(&subject.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSubjectNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, subjectUniqueConstraint) {
			return apperrors.ErrDuplicateSubject
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrBranchNotFound
		}
		logger.Error().Err(err).Int64("subjectId", subject.ID).Msg("Error updating subject")
		return err
	}

	return nil
}

// Delete removes a subject.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("subjectId", id).Msg("Error deleting subject")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
