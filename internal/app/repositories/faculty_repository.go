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

const (
	facultyEmailConstraint      = "faculty_email_key"
	facultyEmployeeIDConstraint = "faculty_employee_id_key"
)

// FacultyRepository handles database operations for faculty accounts.
type FacultyRepository struct {
	DB *pgxpool.Pool
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{DB: db}
}

func mapFacultyConstraintError(err error) error {
	if dberrors.IsDuplicateConstraintError(err, facultyEmailConstraint) {
		return apperrors.ErrEmailAlreadyExists
	}
	if dberrors.IsDuplicateConstraintError(err, facultyEmployeeIDConstraint) {
		return apperrors.ErrEmployeeIDExists
	}
	return err
}

// Create inserts a faculty account. The password must already be hashed.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	query := `
		INSERT INTO faculty (name, email, password, employee_id, designation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.DB.QueryRow(ctx, query, faculty.Name, faculty.Email, faculty.Password,
		faculty.EmployeeID, faculty.Designation).Scan(&faculty.ID, &faculty.CreatedAt)
	if err != nil {
		if mapped := mapFacultyConstraintError(err); mapped != err {
			return mapped
		}
		logger.Error().Err(err).Str("email", faculty.Email).Msg("Error creating faculty")
		return err
	}

	return nil
}

// GetAll returns every faculty account, newest first.
func (r *FacultyRepository) GetAll(ctx context.Context) ([]*models.Faculty, error) {
	query := `
		SELECT id, name, email, password, employee_id, designation, created_at
		FROM faculty
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching faculty list")
		return nil, err
	}
	defer rows.Close()

	list := make([]*models.Faculty, 0)
	for rows.Next() {
		var faculty models.Faculty
		if err := rows.Scan(&faculty.ID, &faculty.Name, &faculty.Email, &faculty.Password,
			&faculty.EmployeeID, &faculty.Designation, &faculty.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &faculty)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// GetByID retrieves a faculty account by its ID.
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByEmployeeID retrieves a faculty account by employee id.
func (r *FacultyRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Faculty, error) {
	return r.getOne(ctx, `WHERE employee_id = $1`, employeeID)
}

func (r *FacultyRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Faculty, error) {
	query := `
		SELECT id, name, email, password, employee_id, designation, created_at
		FROM faculty
	` + where

	var faculty models.Faculty
	err := r.DB.QueryRow(ctx, query, arg).Scan(&faculty.ID, &faculty.Name, &faculty.Email,
		&faculty.Password, &faculty.EmployeeID, &faculty.Designation, &faculty.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Msg("Error fetching faculty")
		return nil, err
	}

	return &faculty, nil
}

// GetUploadedNoteIDs returns the ids in the faculty's upload list, in
// append order. Entries survive note deletion.
func (r *FacultyRepository) GetUploadedNoteIDs(ctx context.Context, facultyID int64) ([]int64, error) {
	query := `
		SELECT note_id
		FROM faculty_uploads
		WHERE faculty_id = $1
		ORDER BY id
	`

	rows, err := r.DB.Query(ctx, query, facultyID)
	if err != nil {
		logger.Error().Err(err).Int64("facultyId", facultyID).Msg("Error fetching uploaded note IDs")
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// Update persists the full faculty row, excluding the password.
func (r *FacultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	query := `
		UPDATE faculty
		SET name = $1, email = $2, employee_id = $3, designation = $4
		WHERE id = $5
	`

	cmdTag, err := r.DB.Exec(ctx, query, faculty.Name, faculty.Email, faculty.EmployeeID,
		faculty.Designation, faculty.ID)
	if err != nil {
		if mapped := mapFacultyConstraintError(err); mapped != err {
			return mapped
		}
		logger.Error().Err(err).Int64("facultyId", faculty.ID).Msg("Error updating faculty")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}

// UpdatePassword sets a new password hash for the faculty account.
func (r *FacultyRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmdTag, err := r.DB.Exec(ctx, `UPDATE faculty SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		logger.Error().Err(err).Int64("facultyId", id).Msg("Error updating faculty password")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}

// Delete removes a faculty account. Accounts that still own notes cannot
// be deleted.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("Faculty still owns uploaded notes")
		}
		logger.Error().Err(err).Int64("facultyId", id).Msg("Error deleting faculty")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}
