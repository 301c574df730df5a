package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/services"
	"github.com/ArunAllanki/KithabBackend/internal/middleware"
)

// AuthController handles registration, login and password reset.
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func bindAndValidate(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return false
	}
	if detail := middleware.ValidateStruct(req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}

// RegisterStudent registers a student account
// @Summary Student registration
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentRegisterRequest true "Student registration"
// @Success 201 {object} dto.StudentAuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid roll number format"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email or roll number"
// @Router /auth/student/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.StudentRegisterRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	response, err := c.authService.RegisterStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// RegisterFaculty registers a faculty account
// @Summary Faculty registration
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.FacultyRegisterRequest true "Faculty registration"
// @Success 201 {object} dto.FacultyAuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid employee ID format"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email or employee id"
// @Router /auth/faculty/register [post]
func (c *AuthController) RegisterFaculty(ctx *gin.Context) {
	var req dto.FacultyRegisterRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	response, err := c.authService.RegisterFaculty(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// LoginStudent logs a student in by roll number
// @Summary Student login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Student credentials"
// @Success 200 {object} dto.StudentAuthResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/student/login [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	var req dto.StudentLoginRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	response, err := c.authService.LoginStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// LoginFaculty logs a faculty in by employee id
// @Summary Faculty login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.FacultyLoginRequest true "Faculty credentials"
// @Success 200 {object} dto.FacultyAuthResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/faculty/login [post]
func (c *AuthController) LoginFaculty(ctx *gin.Context) {
	var req dto.FacultyLoginRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	response, err := c.authService.LoginFaculty(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// LoginAdmin logs the configured admin in
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.AdminAuthResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/admin/login [post]
func (c *AuthController) LoginAdmin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	response, err := c.authService.LoginAdmin(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// ForgotPassword mails a password reset link
// @Summary Forgot password
// @Description Looks the account up by roll number (students) or employee id (faculty) and mails a short-lived reset link.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Role and institutional id"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	if err := c.authService.ForgotPassword(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset link sent"})
}

// ResetPassword sets a new password using a reset token
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Router /auth/reset-password/{token} [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(ctx, &req) {
		return
	}

	if err := c.authService.ResetPassword(ctx, ctx.Param("token"), req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successful"})
}
