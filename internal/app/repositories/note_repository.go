package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/db"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/logger"
)

// NoteDetails is a note row joined with its taxonomy display names and the
// uploader projection. The binary payload is never selected into it.
type NoteDetails struct {
	ID                  int64     `db:"id" json:"id"`
	Title               string    `db:"title" json:"title"`
	Semester            string    `db:"semester" json:"semester"`
	RegulationName      string    `db:"regulation_name" json:"regulation"`
	BranchName          string    `db:"branch_name" json:"branch"`
	SubjectName         string    `db:"subject_name" json:"subjectName"`
	SubjectCode         string    `db:"subject_code" json:"subjectCode"`
	UploaderID          int64     `db:"uploader_id" json:"uploaderId"`
	UploaderName        string    `db:"uploader_name" json:"uploaderName"`
	UploaderEmail       string    `db:"uploader_email" json:"uploaderEmail"`
	UploaderEmployeeID  string    `db:"uploader_employee_id" json:"uploaderEmployeeId"`
	UploaderDesignation string    `db:"uploader_designation" json:"uploaderDesignation"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
}

// NoteFilter holds the optional equality filters for note listings.
type NoteFilter struct {
	RegulationID *int64
	BranchID     *int64
	SubjectID    *int64
	Semester     *string
}

// NoteRepository handles database operations for notes.
type NoteRepository struct {
	DB *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{DB: db}
}

// selectNoteDetailsQuery builds the joined select shared by all listings.
func (r *NoteRepository) selectNoteDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"n.id", "n.title", "n.semester",
		"r.name AS regulation_name",
		"b.name AS branch_name",
		"s.name AS subject_name", "s.code AS subject_code",
		"f.id AS uploader_id", "f.name AS uploader_name", "f.email AS uploader_email",
		"f.employee_id AS uploader_employee_id", "f.designation AS uploader_designation",
		"n.created_at",
	).From("notes n").
		Join("regulations r ON n.regulation_id = r.id").
		Join("branches b ON n.branch_id = b.id").
		Join("subjects s ON n.subject_id = s.id").
		Join("faculty f ON n.uploaded_by = f.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanNoteDetails(row pgx.Row) (*NoteDetails, error) {
	var n NoteDetails
	err := row.Scan(
		&n.ID, &n.Title, &n.Semester,
		&n.RegulationName,
		&n.BranchName,
		&n.SubjectName, &n.SubjectCode,
		&n.UploaderID, &n.UploaderName, &n.UploaderEmail,
		&n.UploaderEmployeeID, &n.UploaderDesignation,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note details")
		return nil, err
	}
	return &n, nil
}

// CreateWithUploadRecord inserts the note and appends the faculty upload
// back-reference in a single transaction, so a note can never exist without
// its uploadedNotes entry.
func (r *NoteRepository) CreateWithUploadRecord(ctx context.Context, note *models.Note) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		insertSQL := `
			INSERT INTO notes (title, regulation_id, subject_id, branch_id, semester,
				file_data, file_content_type, file_filename, uploaded_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at
		`
		err := tx.QueryRow(ctx, insertSQL,
			note.Title, note.RegulationID, note.SubjectID, note.BranchID, note.Semester,
			note.File.Data, note.File.ContentType, note.File.Filename, note.UploadedBy,
		).Scan(&id, &note.CreatedAt)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO faculty_uploads (faculty_id, note_id) VALUES ($1, $2)`,
			note.UploadedBy, id)
		return err
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating note with upload record")
		return 0, err
	}

	note.ID = id
	return id, nil
}

// GetByID retrieves a single note including its binary payload.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `
		SELECT id, title, regulation_id, subject_id, branch_id, semester,
			file_data, file_content_type, file_filename, uploaded_by, created_at
		FROM notes
		WHERE id = $1
	`

	var note models.Note
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&note.ID, &note.Title, &note.RegulationID, &note.SubjectID, &note.BranchID,
		&note.Semester, &note.File.Data, &note.File.ContentType, &note.File.Filename,
		&note.UploadedBy, &note.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Int64("noteId", id).Msg("Error fetching note by ID")
		return nil, err
	}

	return &note, nil
}

// GetByIDs retrieves the notes matching the given ids, payloads included.
// Missing ids are silently dropped from the result.
func (r *NoteRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Note, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "title", "regulation_id", "subject_id", "branch_id", "semester",
		"file_data", "file_content_type", "file_filename", "uploaded_by", "created_at",
	).From("notes").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get notes by IDs SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get notes by IDs query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0, len(ids))
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(
			&note.ID, &note.Title, &note.RegulationID, &note.SubjectID, &note.BranchID,
			&note.Semester, &note.File.Data, &note.File.ContentType, &note.File.Filename,
			&note.UploadedBy, &note.CreatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// Find retrieves expanded note rows matching the filter. No filters means
// every note; an empty result is not an error here.
func (r *NoteRepository) Find(ctx context.Context, filter NoteFilter) ([]*NoteDetails, error) {
	sqlBuilder := r.selectNoteDetailsQuery()

	if filter.RegulationID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.regulation_id": *filter.RegulationID})
	}
	if filter.BranchID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.branch_id": *filter.BranchID})
	}
	if filter.SubjectID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.subject_id": *filter.SubjectID})
	}
	if filter.Semester != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.semester": *filter.Semester})
	}

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find notes SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing find notes query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*NoteDetails, 0)
	for rows.Next() {
		note, err := scanNoteDetails(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// GetUploadsByFaculty returns a faculty's uploads through the faculty_uploads
// back-reference, newest first. Upload rows whose note has been deleted fall
// out of the join.
func (r *NoteRepository) GetUploadsByFaculty(ctx context.Context, facultyID int64) ([]*NoteDetails, error) {
	sqlBuilder := r.selectNoteDetailsQuery().
		Join("faculty_uploads fu ON fu.note_id = n.id").
		Where(squirrel.Eq{"fu.faculty_id": facultyID}).
		OrderBy("n.created_at DESC", "n.id DESC")

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get uploads by faculty SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get uploads by faculty query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*NoteDetails, 0)
	for rows.Next() {
		note, err := scanNoteDetails(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// Delete hard-deletes a note. faculty_uploads entries are left behind on
// purpose, matching the no-cascade behavior of the admin delete.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.DB.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("noteId", id).Msg("Error deleting note")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}
