package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/repositories"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
)

// fakeNoteStore is an in-memory noteStore recording insertion order.
type fakeNoteStore struct {
	nextID    int64
	notes     map[int64]*models.Note
	order     []int64
	uploads   map[int64][]int64
	details   []*repositories.NoteDetails
	failAfter int // fail the (failAfter+1)-th create when >= 0
	created   int
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{
		nextID:    0,
		notes:     map[int64]*models.Note{},
		uploads:   map[int64][]int64{},
		failAfter: -1,
	}
}

func (f *fakeNoteStore) CreateWithUploadRecord(_ context.Context, note *models.Note) (int64, error) {
	if f.failAfter >= 0 && f.created >= f.failAfter {
		return 0, errors.New("insert failed")
	}
	f.created++
	f.nextID++
	stored := *note
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	note.ID = stored.ID
	note.CreatedAt = stored.CreatedAt
	f.notes[stored.ID] = &stored
	f.order = append(f.order, stored.ID)
	f.uploads[note.UploadedBy] = append(f.uploads[note.UploadedBy], stored.ID)
	return stored.ID, nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id int64) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	return note, nil
}

func (f *fakeNoteStore) Find(_ context.Context, _ repositories.NoteFilter) ([]*repositories.NoteDetails, error) {
	out := make([]*repositories.NoteDetails, 0, len(f.details))
	out = append(out, f.details...)
	return out, nil
}

func (f *fakeNoteStore) GetUploadsByFaculty(_ context.Context, facultyID int64) ([]*repositories.NoteDetails, error) {
	out := make([]*repositories.NoteDetails, 0)
	for _, id := range f.uploads[facultyID] {
		note := f.notes[id]
		out = append(out, &repositories.NoteDetails{ID: id, Title: note.Title})
	}
	return out, nil
}

func (f *fakeNoteStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.notes[id]; !ok {
		return apperrors.ErrNoteNotFound
	}
	delete(f.notes, id)
	return nil
}

// fakeFacultyReader is an in-memory facultyReader.
type fakeFacultyReader struct {
	faculty map[int64]*models.Faculty
}

func (f *fakeFacultyReader) GetByID(_ context.Context, id int64) (*models.Faculty, error) {
	fac, ok := f.faculty[id]
	if !ok {
		return nil, apperrors.ErrFacultyNotFound
	}
	return fac, nil
}

// buildFileHeaders assembles real multipart file headers the way gin hands
// them to the handler.
func buildFileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, data := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, name))
		header.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["files"]
}

func uploadRequest() *dto.UploadNotesRequest {
	return &dto.UploadNotesRequest{Regulation: 1, Subject: 3, Branch: 2, Semester: "3"}
}

func TestUploadNotes(t *testing.T) {
	t.Parallel()

	t.Run("creates one note per file in order", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		faculty := &fakeFacultyReader{faculty: map[int64]*models.Faculty{5: {ID: 5}}}
		svc := NewNoteService(store, faculty, zerolog.Nop())

		// buildFileHeaders iterates a map; use a single deterministic pair
		// per call and append to control order.
		headers := buildFileHeaders(t, map[string][]byte{"unit-1.pdf": []byte("one")})
		headers = append(headers, buildFileHeaders(t, map[string][]byte{"unit-2.pdf": []byte("two")})...)

		resp, err := svc.UploadNotes(context.Background(), 5, uploadRequest(), headers)
		require.NoError(t, err)

		require.Len(t, resp.Notes, 2)
		assert.Equal(t, "Notes uploaded successfully", resp.Message)
		assert.Equal(t, "unit-1", resp.Notes[0].Title)
		assert.Equal(t, "unit-2", resp.Notes[1].Title)
		assert.Equal(t, "/notes/1", resp.Notes[0].FileURL)
		assert.Equal(t, "/notes/2", resp.Notes[1].FileURL)
		assert.Equal(t, []int64{1, 2}, store.uploads[5])

		stored := store.notes[1]
		assert.Equal(t, []byte("one"), stored.File.Data)
		assert.Equal(t, "application/pdf", stored.File.ContentType)
		assert.Equal(t, int64(5), stored.UploadedBy)
	})

	t.Run("title strips only the last extension", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		faculty := &fakeFacultyReader{faculty: map[int64]*models.Faculty{5: {ID: 5}}}
		svc := NewNoteService(store, faculty, zerolog.Nop())

		headers := buildFileHeaders(t, map[string][]byte{"thermo.unit.1.pdf": []byte("x")})
		resp, err := svc.UploadNotes(context.Background(), 5, uploadRequest(), headers)
		require.NoError(t, err)
		assert.Equal(t, "thermo.unit.1", resp.Notes[0].Title)
	})

	t.Run("rejects empty file list before touching storage", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		faculty := &fakeFacultyReader{faculty: map[int64]*models.Faculty{5: {ID: 5}}}
		svc := NewNoteService(store, faculty, zerolog.Nop())

		_, err := svc.UploadNotes(context.Background(), 5, uploadRequest(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		assert.Equal(t, 0, store.created)
	})

	t.Run("unknown uploader is a not found", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		faculty := &fakeFacultyReader{faculty: map[int64]*models.Faculty{}}
		svc := NewNoteService(store, faculty, zerolog.Nop())

		headers := buildFileHeaders(t, map[string][]byte{"unit-1.pdf": []byte("one")})
		_, err := svc.UploadNotes(context.Background(), 5, uploadRequest(), headers)
		assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
	})

	t.Run("mid-batch failure keeps earlier notes", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		store.failAfter = 1
		faculty := &fakeFacultyReader{faculty: map[int64]*models.Faculty{5: {ID: 5}}}
		svc := NewNoteService(store, faculty, zerolog.Nop())

		headers := buildFileHeaders(t, map[string][]byte{"unit-1.pdf": []byte("one")})
		headers = append(headers, buildFileHeaders(t, map[string][]byte{"unit-2.pdf": []byte("two")})...)

		_, err := svc.UploadNotes(context.Background(), 5, uploadRequest(), headers)
		require.Error(t, err)

		// The first file was committed before the failure.
		assert.Len(t, store.notes, 1)
		assert.Equal(t, []int64{1}, store.uploads[5])
	})

	t.Run("concurrent uploads do not cross-contaminate upload lists", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		faculty := &fakeFacultyReader{faculty: map[int64]*models.Faculty{5: {ID: 5}, 6: {ID: 6}}}
		svc := NewNoteService(store, faculty, zerolog.Nop())

		h1 := buildFileHeaders(t, map[string][]byte{"a.pdf": []byte("a")})
		h2 := buildFileHeaders(t, map[string][]byte{"b.pdf": []byte("b")})

		_, err := svc.UploadNotes(context.Background(), 5, uploadRequest(), h1)
		require.NoError(t, err)
		_, err = svc.UploadNotes(context.Background(), 6, uploadRequest(), h2)
		require.NoError(t, err)

		require.Len(t, store.uploads[5], 1)
		require.Len(t, store.uploads[6], 1)
		assert.NotEqual(t, store.uploads[5][0], store.uploads[6][0])
	})
}

func TestGetNotesBySubject(t *testing.T) {
	t.Parallel()

	t.Run("empty result is a not found with a subject message", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		svc := NewNoteService(store, &fakeFacultyReader{}, zerolog.Nop())

		_, err := svc.GetNotesBySubject(context.Background(), 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
		assert.Equal(t, "No notes found for this subject", err.Error())
	})

	t.Run("maps expanded rows to the response shape", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		store.details = []*repositories.NoteDetails{{
			ID:             7,
			Title:          "unit-1",
			Semester:       "3",
			RegulationName: "R22",
			BranchName:     "Mechanical Engineering",
			SubjectName:    "Thermodynamics",
			SubjectCode:    "ME3201",
			UploaderID:     5,
			UploaderName:   "A. Professor",
			UploaderEmail:  "prof@college.edu",
		}}
		svc := NewNoteService(store, &fakeFacultyReader{}, zerolog.Nop())

		resp, err := svc.GetNotesBySubject(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, resp.Notes, 1)

		note := resp.Notes[0]
		assert.Equal(t, "R22", note.Regulation)
		assert.Equal(t, "Mechanical Engineering", note.Branch)
		assert.Equal(t, "Thermodynamics", note.Subject.Name)
		assert.Equal(t, "ME3201", note.Subject.Code)
		require.NotNil(t, note.UploadedBy)
		assert.Equal(t, "A. Professor", note.UploadedBy.Name)
	})
}

func TestGetNotes(t *testing.T) {
	t.Parallel()

	// The admin listing never 404s; no matches is an empty envelope.
	store := newFakeNoteStore()
	svc := NewNoteService(store, &fakeFacultyReader{}, zerolog.Nop())

	resp, err := svc.GetNotes(context.Background(), &dto.NoteFilterRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Notes)
	assert.Empty(t, resp.Notes)
}

func TestGetMyUploads(t *testing.T) {
	t.Parallel()

	t.Run("missing faculty record is a not found", func(t *testing.T) {
		t.Parallel()
		svc := NewNoteService(newFakeNoteStore(), &fakeFacultyReader{faculty: map[int64]*models.Faculty{}}, zerolog.Nop())

		_, err := svc.GetMyUploads(context.Background(), 9)
		assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
	})

	t.Run("returns the faculty's uploads", func(t *testing.T) {
		t.Parallel()
		store := newFakeNoteStore()
		faculty := &fakeFacultyReader{faculty: map[int64]*models.Faculty{5: {ID: 5}}}
		svc := NewNoteService(store, faculty, zerolog.Nop())

		headers := buildFileHeaders(t, map[string][]byte{"unit-1.pdf": []byte("one")})
		_, err := svc.UploadNotes(context.Background(), 5, uploadRequest(), headers)
		require.NoError(t, err)

		resp, err := svc.GetMyUploads(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, resp.Notes, 1)
		assert.Equal(t, "unit-1", resp.Notes[0].Title)
	})
}
