package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArunAllanki/KithabBackend/internal/app/models/dto"
	"github.com/ArunAllanki/KithabBackend/internal/app/repositories"
	"github.com/ArunAllanki/KithabBackend/internal/app/services"
	"github.com/ArunAllanki/KithabBackend/internal/middleware"
)

// MetaController serves the public taxonomy routes the upload and browse
// forms are built from.
type MetaController struct {
	regulationService services.RegulationService
	branchService     services.BranchService
	subjectService    services.SubjectService
}

// NewMetaController creates a new MetaController.
func NewMetaController(
	regulationService services.RegulationService,
	branchService services.BranchService,
	subjectService services.SubjectService,
) *MetaController {
	return &MetaController{
		regulationService: regulationService,
		branchService:     branchService,
		subjectService:    subjectService,
	}
}

// GetRegulations lists regulations
// @Summary List regulations
// @Tags meta
// @Produce json
// @Success 200 {array} models.Regulation
// @Router /meta/regulations [get]
func (c *MetaController) GetRegulations(ctx *gin.Context) {
	regulations, err := c.regulationService.ListRegulations(ctx, repositories.OrderByNameAsc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, regulations)
}

// CreateRegulation creates a regulation
// @Summary Create regulation
// @Tags meta
// @Accept json
// @Produce json
// @Param request body dto.CreateRegulationRequest true "Regulation"
// @Success 201 {object} models.Regulation
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /meta/regulations [post]
func (c *MetaController) CreateRegulation(ctx *gin.Context) {
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

// GetBranches lists branches with their regulation expanded
// @Summary List branches
// @Tags meta
// @Produce json
// @Success 200 {array} models.Branch
// @Router /meta/branches [get]
func (c *MetaController) GetBranches(ctx *gin.Context) {
	branches, err := c.branchService.ListBranches(ctx, repositories.OrderByNameAsc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, branches)
}

// CreateBranch creates a branch
// @Summary Create branch
// @Tags meta
// @Accept json
// @Produce json
// @Param request body dto.CreateBranchRequest true "Branch"
// @Success 201 {object} models.Branch
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Regulation not found"
// @Router /meta/branches [post]
func (c *MetaController) CreateBranch(ctx *gin.Context) {
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

// GetSubjects lists subjects, optionally narrowed by branch and semester
// @Summary List subjects
// @Tags meta
// @Produce json
// @Param branch query int false "Branch ID"
// @Param sem query int false "Semester"
// @Success 200 {array} models.Subject
// @Router /meta/subjects [get]
func (c *MetaController) GetSubjects(ctx *gin.Context) {
	var filter dto.SubjectFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid query parameters")))
		return
	}

	subjects, err := c.subjectService.ListSubjects(ctx, &filter, repositories.OrderByNameAsc)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, subjects)
}

// CreateSubject creates a subject
// @Summary Create subject
// @Tags meta
// @Accept json
// @Produce json
// @Param request body dto.CreateSubjectRequest true "Subject"
// @Success 201 {object} models.Subject
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Duplicate subject code for branch and semester"
// @Router /meta/subjects [post]
func (c *MetaController) CreateSubject(ctx *gin.Context) {
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
