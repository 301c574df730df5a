package services

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
)

// noteBatchReader resolves a set of note ids to full notes with payloads.
type noteBatchReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Note, error)
}

// ArchiveService assembles in-memory zip archives from selected notes.
type ArchiveService interface {
	BuildZip(ctx context.Context, noteIDs []int64) ([]byte, error)
}

// archiveServiceImpl implements ArchiveService.
type archiveServiceImpl struct {
	noteRepo noteBatchReader
	logger   zerolog.Logger
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(noteRepo noteBatchReader, logger zerolog.Logger) ArchiveService {
	return &archiveServiceImpl{
		noteRepo: noteRepo,
		logger:   logger,
	}
}

// BuildZip buffers the selected notes into a single zip archive. Ids that
// resolve to nothing are dropped silently; only a fully empty resolution is
// an error. Entries are named after the note title, with a ".pdf" suffix
// only when the stored content type says pdf.
func (s *archiveServiceImpl) BuildZip(ctx context.Context, noteIDs []int64) ([]byte, error) {
	if len(noteIDs) == 0 {
		return nil, apperrors.NewBadRequestError("No notes selected")
	}

	notes, err := s.noteRepo.GetByIDs(ctx, noteIDs)
	if err != nil {
		return nil, err
	}

	if len(notes) == 0 {
		return nil, apperrors.NewNotFoundError(apperrors.ErrNoteNotFound, "Notes not found")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, note := range notes {
		entry, err := zw.Create(zipEntryName(note))
		if err != nil {
			s.logger.Error().Err(err).Int64("noteId", note.ID).Msg("Error adding zip entry")
			return nil, err
		}
		if _, err := entry.Write(note.File.Data); err != nil {
			s.logger.Error().Err(err).Int64("noteId", note.ID).Msg("Error writing zip entry")
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Error finalizing zip archive")
		return nil, err
	}

	return buf.Bytes(), nil
}

func zipEntryName(note *models.Note) string {
	name := note.Title
	if strings.Contains(note.File.ContentType, "pdf") {
		name += ".pdf"
	}
	return name
}
