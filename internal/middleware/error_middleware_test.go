package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
)

func serveError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		HandleAPIError(c, err)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return w.Code, &resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    dto.ErrorCode
		wantMessage string
	}{
		{"bad request sentinel", apperrors.ErrBadRequest, 400, dto.ErrorCodeInvalidRequest, "Bad request"},
		{"bad request with message", apperrors.NewBadRequestError("No files uploaded"), 400, dto.ErrorCodeInvalidRequest, "No files uploaded"},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"expired token", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken, "Token expired"},
		{"permission denied", apperrors.ErrPermissionDenied, 403, dto.ErrorCodeForbidden, "Permission denied"},
		{"note not found", apperrors.ErrNoteNotFound, 404, dto.ErrorCodeResourceNotFound, "Note not found"},
		{"not found with message", apperrors.NewNotFoundError(apperrors.ErrNoteNotFound, "No notes found for this subject"), 404, dto.ErrorCodeResourceNotFound, "No notes found for this subject"},
		{"duplicate subject", apperrors.ErrDuplicateSubject, 409, dto.ErrorCodeResourceAlreadyExists, "Subject code already exists for this branch and semester"},
		{"conflict with message", apperrors.NewConflictError("Regulation is still referenced by branches"), 409, dto.ErrorCodeResourceAlreadyExists, "Regulation is still referenced by branches"},
		{"unknown error", errors.New("pool exhausted"), 500, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := serveError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
			assert.False(t, resp.Success)
		})
	}
}
