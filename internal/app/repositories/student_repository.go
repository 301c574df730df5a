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
	studentEmailConstraint      = "students_email_key"
	studentRollNumberConstraint = "students_roll_number_key"
)

// StudentRepository handles database operations for student accounts.
type StudentRepository struct {
	DB *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{DB: db}
}

// Create inserts a student account. The password must already be hashed.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, email, password, branch, roll_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.DB.QueryRow(ctx, query, student.Name, student.Email, student.Password,
		student.Branch, student.RollNumber).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, studentEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, studentRollNumberConstraint) {
			return apperrors.ErrRollNumberExists
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error creating student")
		return err
	}

	return nil
}

// GetByRollNumber retrieves a student account by roll number.
func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	return r.getOne(ctx, `WHERE roll_number = $1`, rollNumber)
}

func (r *StudentRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Student, error) {
	query := `
		SELECT id, name, email, password, branch, roll_number, created_at
		FROM students
	` + where

	var student models.Student
	err := r.DB.QueryRow(ctx, query, arg).Scan(&student.ID, &student.Name, &student.Email,
		&student.Password, &student.Branch, &student.RollNumber, &student.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error fetching student")
		return nil, err
	}

	return &student, nil
}

// UpdatePassword sets a new password hash for the student account.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmdTag, err := r.DB.Exec(ctx, `UPDATE students SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		logger.Error().Err(err).Int64("studentId", id).Msg("Error updating student password")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
