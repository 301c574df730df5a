package services

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
)

// fakeBatchReader resolves ids against a fixed note set, dropping misses.
type fakeBatchReader struct {
	notes map[int64]*models.Note
}

func (f *fakeBatchReader) GetByIDs(_ context.Context, ids []int64) ([]*models.Note, error) {
	out := make([]*models.Note, 0, len(ids))
	for _, id := range ids {
		if note, ok := f.notes[id]; ok {
			out = append(out, note)
		}
	}
	return out, nil
}

func pdfNote(id int64, title string, data []byte) *models.Note {
	return &models.Note{
		ID:    id,
		Title: title,
		File:  models.NoteFile{Data: data, ContentType: "application/pdf"},
	}
}

func readZip(t *testing.T, archive []byte) map[string][]byte {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	entries := make(map[string][]byte, len(reader.File))
	for _, file := range reader.File {
		rc, err := file.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[file.Name] = data
	}
	return entries
}

func TestBuildZip(t *testing.T) {
	t.Parallel()

	t.Run("bundles the selected notes byte for byte", func(t *testing.T) {
		t.Parallel()
		repo := &fakeBatchReader{notes: map[int64]*models.Note{
			1: pdfNote(1, "unit-1", []byte("first payload")),
			2: pdfNote(2, "unit-2", []byte("second payload")),
		}}
		svc := NewArchiveService(repo, zerolog.Nop())

		archive, err := svc.BuildZip(context.Background(), []int64{1, 2})
		require.NoError(t, err)

		entries := readZip(t, archive)
		require.Len(t, entries, 2)
		assert.Equal(t, []byte("first payload"), entries["unit-1.pdf"])
		assert.Equal(t, []byte("second payload"), entries["unit-2.pdf"])
	})

	t.Run("pdf suffix only for pdf content types", func(t *testing.T) {
		t.Parallel()
		plain := &models.Note{
			ID:    3,
			Title: "syllabus",
			File:  models.NoteFile{Data: []byte("text"), ContentType: "text/plain"},
		}
		repo := &fakeBatchReader{notes: map[int64]*models.Note{
			1: pdfNote(1, "unit-1", []byte("pdf bytes")),
			3: plain,
		}}
		svc := NewArchiveService(repo, zerolog.Nop())

		archive, err := svc.BuildZip(context.Background(), []int64{1, 3})
		require.NoError(t, err)

		entries := readZip(t, archive)
		assert.Contains(t, entries, "unit-1.pdf")
		assert.Contains(t, entries, "syllabus")
		assert.NotContains(t, entries, "syllabus.pdf")
	})

	t.Run("unknown ids are dropped silently", func(t *testing.T) {
		t.Parallel()
		repo := &fakeBatchReader{notes: map[int64]*models.Note{
			1: pdfNote(1, "unit-1", []byte("pdf bytes")),
		}}
		svc := NewArchiveService(repo, zerolog.Nop())

		archive, err := svc.BuildZip(context.Background(), []int64{1, 99})
		require.NoError(t, err)
		assert.Len(t, readZip(t, archive), 1)
	})

	t.Run("empty selection is a bad request", func(t *testing.T) {
		t.Parallel()
		svc := NewArchiveService(&fakeBatchReader{notes: map[int64]*models.Note{}}, zerolog.Nop())

		_, err := svc.BuildZip(context.Background(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		assert.Equal(t, "No notes selected", err.Error())
	})

	t.Run("nothing resolving is a not found", func(t *testing.T) {
		t.Parallel()
		svc := NewArchiveService(&fakeBatchReader{notes: map[int64]*models.Note{}}, zerolog.Nop())

		_, err := svc.BuildZip(context.Background(), []int64{40, 41})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
		assert.Equal(t, "Notes not found", err.Error())
	})
}
