package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/services"
	"github.com/ArunAllanki/KithabBackend/internal/middleware"
)

// NoteController handles note upload, retrieval and batch download.
type NoteController struct {
	noteService    services.NoteService
	archiveService services.ArchiveService
}

// NewNoteController creates a new NoteController.
func NewNoteController(noteService services.NoteService, archiveService services.ArchiveService) *NoteController {
	return &NoteController{
		noteService:    noteService,
		archiveService: archiveService,
	}
}

// UploadNotes handles a multipart batch upload
// @Summary Upload notes
// @Description Uploads one or more files as notes sharing the same taxonomy metadata. Faculty only.
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param regulation formData int true "Regulation ID"
// @Param subject formData int true "Subject ID"
// @Param branch formData int true "Branch ID"
// @Param semester formData string true "Semester label"
// @Param files formData file true "One or more note files"
// @Success 201 {object} dto.UploadNotesResponse "Notes uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing metadata or files"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Caller is not faculty"
// @Router /notes/upload [post]
func (c *NoteController) UploadNotes(ctx *gin.Context) {
	var req dto.UploadNotesRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format").WithDetails(err.Error())))
		return
	}

	if detail := middleware.ValidateStruct(&req); detail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid multipart form")))
		return
	}

	response, err := c.noteService.UploadNotes(ctx, middleware.GetUserID(ctx), &req, form.File["files"])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// GetMyUploads lists the calling faculty's uploads
// @Summary My uploads
// @Description Lists the authenticated faculty's uploaded notes, newest first.
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotesEnvelope
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Caller is not faculty"
// @Failure 404 {object} dto.ErrorResponse "Faculty record not found"
// @Router /notes/my-uploads [get]
func (c *NoteController) GetMyUploads(ctx *gin.Context) {
	response, err := c.noteService.GetMyUploads(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetNotesBySubject lists a subject's notes
// @Summary Notes by subject
// @Description Lists the notes of one subject with taxonomy names expanded. Public.
// @Tags notes
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.NotesEnvelope
// @Failure 400 {object} dto.ErrorResponse "Malformed subject id"
// @Failure 404 {object} dto.ErrorResponse "No notes for this subject"
// @Router /notes/subject/{id} [get]
func (c *NoteController) GetNotesBySubject(ctx *gin.Context) {
	subjectID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid subject id")))
		return
	}

	response, err := c.noteService.GetNotesBySubject(ctx, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetNoteFile serves a note's raw payload
// @Summary Fetch a note file
// @Description Returns the stored bytes with the stored content type, inline. Public.
// @Tags notes
// @Produce octet-stream
// @Param id path int true "Note ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notes/{id} [get]
func (c *NoteController) GetNoteFile(ctx *gin.Context) {
	// No shape check on the id here; a malformed id takes the generic
	// error path instead of a 400.
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	note, err := c.noteService.GetNoteWithFile(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", note.Title))
	ctx.Data(http.StatusOK, note.File.ContentType, note.File.Data)
}

// DownloadZip bundles selected notes into a zip
// @Summary Download notes as zip
// @Description Buffers the selected notes into a single zip archive. Public.
// @Tags notes
// @Accept json
// @Produce application/zip
// @Param request body dto.DownloadZipRequest true "Note ids to bundle"
// @Success 200 {file} binary "notes.zip"
// @Failure 400 {object} dto.ErrorResponse "No notes selected"
// @Failure 404 {object} dto.ErrorResponse "Notes not found"
// @Router /notes/download-zip [post]
func (c *NoteController) DownloadZip(ctx *gin.Context) {
	var req dto.DownloadZipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")))
		return
	}

	archive, err := c.archiveService.BuildZip(ctx, req.NoteIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=notes.zip")
	ctx.Header("Content-Length", strconv.Itoa(len(archive)))
	ctx.Data(http.StatusOK, "application/zip", archive)
}
