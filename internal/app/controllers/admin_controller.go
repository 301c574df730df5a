package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/repositories"
	"github.com/ArunAllanki/KithabBackend/internal/app/services"
	"github.com/ArunAllanki/KithabBackend/internal/middleware"
)

// AdminController serves the admin panel: taxonomy management, faculty
// account management and the moderation view over notes.
type AdminController struct {
	regulationService services.RegulationService
	branchService     services.BranchService
	subjectService    services.SubjectService
	facultyService    services.FacultyService
	noteService       services.NoteService
}

// NewAdminController creates a new AdminController.
func NewAdminController(
	regulationService services.RegulationService,
	branchService services.BranchService,
	subjectService services.SubjectService,
	facultyService services.FacultyService,
	noteService services.NoteService,
) *AdminController {
	return &AdminController{
		regulationService: regulationService,
		branchService:     branchService,
		subjectService:    subjectService,
		facultyService:    facultyService,
		noteService:       noteService,
	}
}

// parseIDParam parses the :id path segment, writing the 400 itself.
func parseIDParam(ctx *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+what+" id")))
		return 0, false
	}
	return id, true
}

// --- Regulations ---

// GetRegulations lists regulations, newest first
// @Summary List regulations (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Regulation
// @Router /admin/regulations [get]
func (c *AdminController) GetRegulations(ctx *gin.Context) {
	regulations, err := c.regulationService.ListRegulations(ctx, repositories.OrderByCreatedDesc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, regulations)
}

// CreateRegulation creates a regulation
// @Summary Create regulation (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRegulationRequest true "Regulation"
// @Success 201 {object} models.Regulation
// @Router /admin/regulations [post]
func (c *AdminController) CreateRegulation(ctx *gin.Context) {
	var req dto.CreateRegulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	regulation, err := c.regulationService.CreateRegulation(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, regulation)
}

// UpdateRegulation partially updates a regulation
// @Summary Update regulation (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Regulation ID"
// @Param request body dto.UpdateRegulationRequest true "Fields to change"
// @Success 200 {object} models.Regulation
// @Failure 404 {object} dto.ErrorResponse "Regulation not found"
// @Router /admin/regulations/{id} [put]
func (c *AdminController) UpdateRegulation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "regulation")
	if !ok {
		return
	}

	var req dto.UpdateRegulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}

	regulation, err := c.regulationService.UpdateRegulation(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, regulation)
}

// DeleteRegulation deletes a regulation
// @Summary Delete regulation (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Regulation ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Regulation not found"
// @Failure 409 {object} dto.ErrorResponse "Regulation still referenced"
// @Router /admin/regulations/{id} [delete]
func (c *AdminController) DeleteRegulation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "regulation")
	if !ok {
		return
	}

	if err := c.regulationService.DeleteRegulation(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Regulation deleted successfully"})
}

// --- Branches ---

// GetBranches lists branches with regulations expanded
// @Summary List branches (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Branch
// @Router /admin/branches [get]
func (c *AdminController) GetBranches(ctx *gin.Context) {
	branches, err := c.branchService.ListBranches(ctx, repositories.OrderByCreatedDesc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, branches)
}

// CreateBranch creates a branch
// @Summary Create branch (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBranchRequest true "Branch"
// @Success 201 {object} models.Branch
// @Router /admin/branches [post]
func (c *AdminController) CreateBranch(ctx *gin.Context) {
	var req dto.CreateBranchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	branch, err := c.branchService.CreateBranch(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, branch)
}

// UpdateBranch partially updates a branch
// @Summary Update branch (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Param request body dto.UpdateBranchRequest true "Fields to change"
// @Success 200 {object} models.Branch
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /admin/branches/{id} [put]
func (c *AdminController) UpdateBranch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "branch")
	if !ok {
		return
	}

	var req dto.UpdateBranchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}

	branch, err := c.branchService.UpdateBranch(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, branch)
}

// DeleteBranch deletes a branch
// @Summary Delete branch (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 409 {object} dto.ErrorResponse "Branch still referenced"
// @Router /admin/branches/{id} [delete]
func (c *AdminController) DeleteBranch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "branch")
	if !ok {
		return
	}

	if err := c.branchService.DeleteBranch(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Branch deleted successfully"})
}

// --- Subjects ---

// GetSubjects lists subjects, newest first
// @Summary List subjects (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subject
// @Router /admin/subjects [get]
func (c *AdminController) GetSubjects(ctx *gin.Context) {
	subjects, err := c.subjectService.ListSubjects(ctx, nil, repositories.OrderByCreatedDesc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subjects)
}

// CreateSubject creates a subject
// @Summary Create subject (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} models.Subject
// @Failure 409 {object} dto.ErrorResponse "Duplicate subject code for branch and semester"
// @Router /admin/subjects [post]
func (c *AdminController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	subject, err := c.subjectService.CreateSubject(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, subject)
}

// UpdateSubject partially updates a subject
// @Summary Update subject (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param request body dto.UpdateSubjectRequest true "Fields to change"
// @Success 200 {object} models.Subject
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate subject code for branch and semester"
// @Router /admin/subjects/{id} [put]
func (c *AdminController) UpdateSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "subject")
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}

	subject, err := c.subjectService.UpdateSubject(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

// DeleteSubject deletes a subject
// @Summary Delete subject (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/subjects/{id} [delete]
func (c *AdminController) DeleteSubject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "subject")
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Subject deleted successfully"})
}

// --- Faculty accounts ---

// GetFacultyList lists faculty accounts
// @Summary List faculty (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Faculty
// @Router /admin/faculty [get]
func (c *AdminController) GetFacultyList(ctx *gin.Context) {
	list, err := c.facultyService.ListFaculty(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// CreateFaculty provisions a faculty account
// @Summary Create faculty (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFacultyRequest true "Faculty account"
// @Success 201 {object} models.Faculty
// @Failure 409 {object} dto.ErrorResponse "Duplicate email or employee id"
// @Router /admin/faculty [post]
func (c *AdminController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}
	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	faculty, err := c.facultyService.CreateFaculty(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, faculty)
}

// UpdateFaculty partially updates a faculty account
// @Summary Update faculty (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Param request body dto.UpdateFacultyRequest true "Fields to change"
// @Success 200 {object} models.Faculty
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email or employee id"
// @Router /admin/faculty/{id} [put]
func (c *AdminController) UpdateFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "faculty")
	if !ok {
		return
	}

	var req dto.UpdateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}

	faculty, err := c.facultyService.UpdateFaculty(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, faculty)
}

// DeleteFaculty deletes a faculty account
// @Summary Delete faculty (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Faculty still owns notes"
// @Router /admin/faculty/{id} [delete]
func (c *AdminController) DeleteFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "faculty")
	if !ok {
		return
	}

	if err := c.facultyService.DeleteFaculty(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Faculty deleted successfully"})
}

// GetFacultyUploads lists one faculty's uploads
// @Summary Faculty uploads (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.NotesEnvelope
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /admin/faculty/{id}/uploads [get]
func (c *AdminController) GetFacultyUploads(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "faculty")
	if !ok {
		return
	}

	response, err := c.noteService.GetFacultyUploads(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// --- Notes moderation ---

// GetNotes lists notes with optional equality filters
// @Summary List notes (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param regulation query int false "Regulation ID"
// @Param branch query int false "Branch ID"
// @Param semester query string false "Semester label"
// @Param subject query int false "Subject ID"
// @Success 200 {object} dto.NotesEnvelope "Empty list when nothing matches"
// @Router /admin/notes [get]
func (c *AdminController) GetNotes(ctx *gin.Context) {
	var filter dto.NoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid query parameters")))
		return
	}

	response, err := c.noteService.GetNotes(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// GetNoteFile serves a note payload as an attachment
// @Summary Download a note file (admin)
// @Tags admin
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Note or payload missing"
// @Router /admin/notes/{id}/file [get]
func (c *AdminController) GetNoteFile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "note")
	if !ok {
		return
	}

	note, err := c.noteService.GetNoteWithFile(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if len(note.File.Data) == 0 {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "File not found")))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", note.File.Filename))
	ctx.Data(http.StatusOK, note.File.ContentType, note.File.Data)
}

// DeleteNote deletes a note
// @Summary Delete note (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed note id"
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /admin/notes/{id} [delete]
func (c *AdminController) DeleteNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "note")
	if !ok {
		return
	}

	if err := c.noteService.DeleteNote(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Note deleted successfully"})
}
