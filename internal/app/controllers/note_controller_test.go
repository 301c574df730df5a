package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/middleware"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/auth"
)

type fakeNoteService struct {
	uploadResp    *dto.UploadNotesResponse
	envelope      *dto.NotesEnvelope
	note          *models.Note
	err           error
	uploadsCalled int
}

func (f *fakeNoteService) UploadNotes(_ context.Context, _ int64, _ *dto.UploadNotesRequest, _ []*multipart.FileHeader) (*dto.UploadNotesResponse, error) {
	f.uploadsCalled++
	return f.uploadResp, f.err
}

func (f *fakeNoteService) GetNotesBySubject(_ context.Context, _ int64) (*dto.NotesEnvelope, error) {
	return f.envelope, f.err
}

func (f *fakeNoteService) GetNotes(_ context.Context, _ *dto.NoteFilterRequest) (*dto.NotesEnvelope, error) {
	return f.envelope, f.err
}

func (f *fakeNoteService) GetNoteWithFile(_ context.Context, _ int64) (*models.Note, error) {
	return f.note, f.err
}

func (f *fakeNoteService) GetMyUploads(_ context.Context, _ int64) (*dto.NotesEnvelope, error) {
	return f.envelope, f.err
}

func (f *fakeNoteService) GetFacultyUploads(_ context.Context, _ int64) (*dto.NotesEnvelope, error) {
	return f.envelope, f.err
}

func (f *fakeNoteService) DeleteNote(_ context.Context, _ int64) error {
	return f.err
}

type fakeArchiveService struct {
	archive []byte
	err     error
}

func (f *fakeArchiveService) BuildZip(_ context.Context, _ []int64) ([]byte, error) {
	return f.archive, f.err
}

func noteTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		AdminTokenExp:  24 * time.Hour,
		TokenIssuer:    "kithab.test",
	})
}

func newNoteTestRouter(noteSvc *fakeNoteService, archiveSvc *fakeArchiveService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := NewNoteController(noteSvc, archiveSvc)
	authMW := middleware.NewAuthMiddleware(noteTestJWTService())

	notes := router.Group("/api/notes")
	notes.POST("/upload",
		authMW.JWTAuth(),
		authMW.RoleRequired(models.RoleFaculty),
		controller.UploadNotes)
	notes.GET("/my-uploads",
		authMW.JWTAuth(),
		authMW.RoleRequired(models.RoleFaculty),
		controller.GetMyUploads)
	notes.POST("/download-zip", controller.DownloadZip)
	notes.GET("/subject/:id", controller.GetNotesBySubject)
	notes.GET("/:id", controller.GetNoteFile)

	return router
}

func decodeError(t *testing.T, body *bytes.Buffer) *dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return &resp
}

func TestGetNotesBySubjectRoute(t *testing.T) {
	t.Run("malformed subject id is a 400", func(t *testing.T) {
		router := newNoteTestRouter(&fakeNoteService{}, &fakeArchiveService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notes/subject/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "Invalid subject id", resp.Error.Message)
		assert.False(t, resp.Success)
	})

	t.Run("subject with no notes is a 404", func(t *testing.T) {
		svc := &fakeNoteService{err: apperrors.NewNotFoundError(apperrors.ErrNoteNotFound, "No notes found for this subject")}
		router := newNoteTestRouter(svc, &fakeArchiveService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notes/subject/3", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "No notes found for this subject", resp.Error.Message)
	})
}

func TestGetNoteFileRoute(t *testing.T) {
	t.Run("serves stored bytes inline under the note title", func(t *testing.T) {
		svc := &fakeNoteService{note: &models.Note{
			ID:    7,
			Title: "thermo-unit-1",
			File: models.NoteFile{
				Data:        []byte("%PDF-1.7 payload"),
				ContentType: "application/pdf",
				Filename:    "thermo-unit-1.pdf",
			},
		}}
		router := newNoteTestRouter(svc, &fakeArchiveService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notes/7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `inline; filename="thermo-unit-1"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, []byte("%PDF-1.7 payload"), w.Body.Bytes())
	})

	t.Run("unknown note is a 404", func(t *testing.T) {
		svc := &fakeNoteService{err: apperrors.ErrNoteNotFound}
		router := newNoteTestRouter(svc, &fakeArchiveService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notes/99", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id falls through to a 500", func(t *testing.T) {
		router := newNoteTestRouter(&fakeNoteService{}, &fakeArchiveService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/notes/not-a-number", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "Internal server error", resp.Error.Message)
	})
}

func TestDownloadZipRoute(t *testing.T) {
	t.Run("returns the archive with exact length headers", func(t *testing.T) {
		archive := []byte("PK\x03\x04 fake zip bytes")
		router := newNoteTestRouter(&fakeNoteService{}, &fakeArchiveService{archive: archive})

		body := bytes.NewBufferString(`{"noteIds":[1,2,3]}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/notes/download-zip", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.Equal(t, "attachment; filename=notes.zip", w.Header().Get("Content-Disposition"))
		assert.Equal(t, strconv.Itoa(len(archive)), w.Header().Get("Content-Length"))
		assert.Equal(t, archive, w.Body.Bytes())
	})

	t.Run("empty selection is a 400", func(t *testing.T) {
		svc := &fakeArchiveService{err: apperrors.NewBadRequestError("No notes selected")}
		router := newNoteTestRouter(&fakeNoteService{}, svc)

		body := bytes.NewBufferString(`{"noteIds":[]}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/notes/download-zip", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "No notes selected", resp.Error.Message)
	})
}

func TestUploadNotesRouteAuth(t *testing.T) {
	uploadRequest := func(token string) *http.Request {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		_ = writer.WriteField("regulation", "1")
		_ = writer.WriteField("subject", "2")
		_ = writer.WriteField("branch", "3")
		_ = writer.WriteField("semester", "3-1")
		part, _ := writer.CreateFormFile("files", "unit-1.pdf")
		_, _ = part.Write([]byte("%PDF-1.7"))
		_ = writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/notes/upload", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req
	}

	t.Run("no token is a 401", func(t *testing.T) {
		router := newNoteTestRouter(&fakeNoteService{}, &fakeArchiveService{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(""))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "Authentication required", resp.Error.Message)
	})

	t.Run("student token is a 403", func(t *testing.T) {
		router := newNoteTestRouter(&fakeNoteService{}, &fakeArchiveService{})
		token, err := noteTestJWTService().GenerateToken(5, string(models.RoleStudent))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(token))

		assert.Equal(t, http.StatusForbidden, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "Access denied", resp.Error.Message)
	})

	t.Run("faculty token reaches the service", func(t *testing.T) {
		svc := &fakeNoteService{uploadResp: &dto.UploadNotesResponse{
			Message: "Notes uploaded successfully",
		}}
		router := newNoteTestRouter(svc, &fakeArchiveService{})
		token, err := noteTestJWTService().GenerateToken(5, string(models.RoleFaculty))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(token))

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestUploadNotesRouteValidation(t *testing.T) {
	// Every metadata field is required; a missing one must fail before the
	// service runs, so nothing is persisted.
	metadata := map[string]string{
		"regulation": "1",
		"subject":    "2",
		"branch":     "3",
		"semester":   "3-1",
	}

	for omitted := range metadata {
		t.Run("missing "+omitted+" is a 400", func(t *testing.T) {
			var buf bytes.Buffer
			writer := multipart.NewWriter(&buf)
			for field, value := range metadata {
				if field == omitted {
					continue
				}
				_ = writer.WriteField(field, value)
			}
			part, _ := writer.CreateFormFile("files", "unit-1.pdf")
			_, _ = part.Write([]byte("%PDF-1.7"))
			_ = writer.Close()

			svc := &fakeNoteService{}
			router := newNoteTestRouter(svc, &fakeArchiveService{})
			token, err := noteTestJWTService().GenerateToken(5, string(models.RoleFaculty))
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/notes/upload", &buf)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			req.Header.Set("Authorization", "Bearer "+token)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w.Body)
			assert.False(t, resp.Success)
			assert.Zero(t, svc.uploadsCalled)
		})
	}
}

func TestGetMyUploadsRouteAuth(t *testing.T) {
	envelope := &dto.NotesEnvelope{Notes: []dto.NoteDetailsResponse{{ID: 7, Title: "unit-1"}}}

	myUploadsRequest := func(token string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/notes/my-uploads", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	t.Run("faculty token gets its uploads", func(t *testing.T) {
		router := newNoteTestRouter(&fakeNoteService{envelope: envelope}, &fakeArchiveService{})
		token, err := noteTestJWTService().GenerateToken(5, string(models.RoleFaculty))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, myUploadsRequest(token))

		assert.Equal(t, http.StatusOK, w.Code)
		var got dto.NotesEnvelope
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Len(t, got.Notes, 1)
	})

	t.Run("student token is a 403 even when the id matches a faculty row", func(t *testing.T) {
		// Student and faculty ids are independent sequences; a colliding id
		// must not read the faculty's list.
		router := newNoteTestRouter(&fakeNoteService{envelope: envelope}, &fakeArchiveService{})
		token, err := noteTestJWTService().GenerateToken(5, string(models.RoleStudent))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, myUploadsRequest(token))

		assert.Equal(t, http.StatusForbidden, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "Access denied", resp.Error.Message)
	})

	t.Run("no token is a 401", func(t *testing.T) {
		router := newNoteTestRouter(&fakeNoteService{envelope: envelope}, &fakeArchiveService{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notes/my-uploads", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
