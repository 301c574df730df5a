package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/apperrors"
	"github.com/ArunAllanki/KithabBackend/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. A CustomError's
// message wins over the sentinel's default text, so handlers can surface
// request-specific wording through the same switch.
func HandleAPIError(c *gin.Context, err error) {
	message := func(fallback string) string {
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Message != "" {
			return customErr.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, message("Bad request"))))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed"))))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message("Invalid credentials"))))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, message("Token expired"))))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, message("Invalid token"))))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, message("Permission denied"))))
	case errors.Is(err, apperrors.ErrNoteNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Note not found"))))
	case errors.Is(err, apperrors.ErrRegulationNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Regulation not found"))))
	case errors.Is(err, apperrors.ErrBranchNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Branch not found"))))
	case errors.Is(err, apperrors.ErrSubjectNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Subject not found"))))
	case errors.Is(err, apperrors.ErrFacultyNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Faculty not found"))))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Student not found"))))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Resource not found"))))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message("Email already exists"))))
	case errors.Is(err, apperrors.ErrEmployeeIDExists):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message("Employee ID already exists"))))
	case errors.Is(err, apperrors.ErrRollNumberExists):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message("Roll number already exists"))))
	case errors.Is(err, apperrors.ErrDuplicateSubject):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists,
				message("Subject code already exists for this branch and semester"))))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message("Conflict"))))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
