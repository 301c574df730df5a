package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/repositories"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
)

const defaultContentType = "application/octet-stream"

// noteStore is the slice of NoteRepository the note service needs.
type noteStore interface {
	CreateWithUploadRecord(ctx context.Context, note *models.Note) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	Find(ctx context.Context, filter repositories.NoteFilter) ([]*repositories.NoteDetails, error)
	GetUploadsByFaculty(ctx context.Context, facultyID int64) ([]*repositories.NoteDetails, error)
	Delete(ctx context.Context, id int64) error
}

// facultyReader looks up faculty accounts for upload ownership checks.
type facultyReader interface {
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
}

// NoteService defines the interface for note operations.
type NoteService interface {
	UploadNotes(ctx context.Context, uploaderID int64, req *dto.UploadNotesRequest, files []*multipart.FileHeader) (*dto.UploadNotesResponse, error)
	GetNotesBySubject(ctx context.Context, subjectID int64) (*dto.NotesEnvelope, error)
	GetNotes(ctx context.Context, filter *dto.NoteFilterRequest) (*dto.NotesEnvelope, error)
	GetNoteWithFile(ctx context.Context, id int64) (*models.Note, error)
	GetMyUploads(ctx context.Context, facultyID int64) (*dto.NotesEnvelope, error)
	GetFacultyUploads(ctx context.Context, facultyID int64) (*dto.NotesEnvelope, error)
	DeleteNote(ctx context.Context, id int64) error
}

// noteServiceImpl implements NoteService.
type noteServiceImpl struct {
	noteRepo    noteStore
	facultyRepo facultyReader
	logger      zerolog.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo noteStore, facultyRepo facultyReader, logger zerolog.Logger) NoteService {
	return &noteServiceImpl{
		noteRepo:    noteRepo,
		facultyRepo: facultyRepo,
		logger:      logger,
	}
}

// titleFromFilename strips the extension; "unit-1.pdf" becomes "unit-1".
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// UploadNotes persists each file as a note and appends it to the uploader's
// upload list, in file order. Each file is its own transaction; the first
// failure aborts the batch and earlier notes stay committed.
func (s *noteServiceImpl) UploadNotes(ctx context.Context, uploaderID int64, req *dto.UploadNotesRequest, files []*multipart.FileHeader) (*dto.UploadNotesResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("No files uploaded")
	}

	if _, err := s.facultyRepo.GetByID(ctx, uploaderID); err != nil {
		return nil, err
	}

	uploaded := make([]dto.UploadedNote, 0, len(files))
	for _, fileHeader := range files {
		note, err := s.readNoteFile(req, fileHeader, uploaderID)
		if err != nil {
			return nil, err
		}

		id, err := s.noteRepo.CreateWithUploadRecord(ctx, note)
		if err != nil {
			s.logger.Error().Err(err).
				Str("filename", fileHeader.Filename).
				Int64("uploaderId", uploaderID).
				Msg("Note upload failed mid-batch")
			return nil, err
		}

		uploaded = append(uploaded, dto.UploadedNote{
			ID:         id,
			Title:      note.Title,
			Regulation: note.RegulationID,
			Subject:    note.SubjectID,
			Branch:     note.BranchID,
			Semester:   note.Semester,
			UploadedBy: note.UploadedBy,
			CreatedAt:  note.CreatedAt,
			FileURL:    fmt.Sprintf("/notes/%d", id),
		})
	}

	return &dto.UploadNotesResponse{
		Message: "Notes uploaded successfully",
		Notes:   uploaded,
	}, nil
}

func (s *noteServiceImpl) readNoteFile(req *dto.UploadNotesRequest, fileHeader *multipart.FileHeader, uploaderID int64) (*models.Note, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewBadRequestError("Could not read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Could not read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return &models.Note{
		Title:        titleFromFilename(fileHeader.Filename),
		RegulationID: req.Regulation,
		SubjectID:    req.Subject,
		BranchID:     req.Branch,
		Semester:     req.Semester,
		File: models.NoteFile{
			Data:        data,
			ContentType: contentType,
			Filename:    fileHeader.Filename,
		},
		UploadedBy: uploaderID,
	}, nil
}

// GetNotesBySubject returns the expanded notes of one subject. An empty
// result is a not-found error here, unlike the admin listing.
func (s *noteServiceImpl) GetNotesBySubject(ctx context.Context, subjectID int64) (*dto.NotesEnvelope, error) {
	details, err := s.noteRepo.Find(ctx, repositories.NoteFilter{SubjectID: &subjectID})
	if err != nil {
		return nil, err
	}

	if len(details) == 0 {
		return nil, apperrors.NewNotFoundError(apperrors.ErrNoteNotFound, "No notes found for this subject")
	}

	return &dto.NotesEnvelope{Notes: toNoteDetailsResponses(details)}, nil
}

// GetNotes returns the expanded notes matching the admin filters. All
// filters absent means every note; an empty result is a 200 with an empty
// list.
func (s *noteServiceImpl) GetNotes(ctx context.Context, filter *dto.NoteFilterRequest) (*dto.NotesEnvelope, error) {
	repoFilter := repositories.NoteFilter{}
	if filter != nil {
		repoFilter.RegulationID = filter.Regulation
		repoFilter.BranchID = filter.Branch
		repoFilter.SubjectID = filter.Subject
		repoFilter.Semester = filter.Semester
	}

	details, err := s.noteRepo.Find(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return &dto.NotesEnvelope{Notes: toNoteDetailsResponses(details)}, nil
}

// GetNoteWithFile retrieves one note including its binary payload.
func (s *noteServiceImpl) GetNoteWithFile(ctx context.Context, id int64) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, id)
}

// GetMyUploads lists the calling faculty's uploads, newest first. A token
// whose faculty record is gone gets a not-found, not an empty list.
func (s *noteServiceImpl) GetMyUploads(ctx context.Context, facultyID int64) (*dto.NotesEnvelope, error) {
	if _, err := s.facultyRepo.GetByID(ctx, facultyID); err != nil {
		return nil, err
	}

	details, err := s.noteRepo.GetUploadsByFaculty(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	return &dto.NotesEnvelope{Notes: toNoteDetailsResponses(details)}, nil
}

// GetFacultyUploads is the admin view of a faculty's uploads.
func (s *noteServiceImpl) GetFacultyUploads(ctx context.Context, facultyID int64) (*dto.NotesEnvelope, error) {
	return s.GetMyUploads(ctx, facultyID)
}

// DeleteNote hard-deletes a note. Upload-list entries pointing at it are
// left in place.
func (s *noteServiceImpl) DeleteNote(ctx context.Context, id int64) error {
	return s.noteRepo.Delete(ctx, id)
}

func toNoteDetailsResponses(details []*repositories.NoteDetails) []dto.NoteDetailsResponse {
	out := make([]dto.NoteDetailsResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.NoteDetailsResponse{
			ID:         d.ID,
			Title:      d.Title,
			Semester:   d.Semester,
			Regulation: d.RegulationName,
			Branch:     d.BranchName,
			Subject: dto.SubjectRef{
				Name: d.SubjectName,
				Code: d.SubjectCode,
			},
			UploadedBy: &dto.UploaderRef{
				ID:          d.UploaderID,
				Name:        d.UploaderName,
				Email:       d.UploaderEmail,
				EmployeeID:  d.UploaderEmployeeID,
				Designation: d.UploaderDesignation,
			},
			CreatedAt: d.CreatedAt,
		})
	}
	return out
}
