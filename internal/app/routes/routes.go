package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArunAllanki/KithabBackend/internal/app/controllers"
	"github.com/ArunAllanki/KithabBackend/internal/app/models"
	"github.com/ArunAllanki/KithabBackend/internal/middleware"
)

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	noteController *controllers.NoteController,
	metaController *controllers.MetaController,
	adminController *controllers.AdminController,
	authController *controllers.AuthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Notes ---
	notes := api.Group("/notes")
	{
		// Upload and my-uploads are faculty only; retrieval is public.
		// Student and faculty ids come from independent sequences, so a
		// student token must never reach the faculty-keyed lookup.
		notes.POST("/upload",
			authMiddleware.JWTAuth(),
			authMiddleware.RoleRequired(models.RoleFaculty),
			noteController.UploadNotes)
		notes.GET("/my-uploads",
			authMiddleware.JWTAuth(),
			authMiddleware.RoleRequired(models.RoleFaculty),
			noteController.GetMyUploads)
		notes.POST("/download-zip", noteController.DownloadZip)
		notes.GET("/subject/:id", noteController.GetNotesBySubject)
		notes.GET("/:id", noteController.GetNoteFile)
	}

	// --- Public taxonomy ---
	meta := api.Group("/meta")
	{
		meta.GET("/regulations", metaController.GetRegulations)
		meta.POST("/regulations", metaController.CreateRegulation)
		meta.GET("/branches", metaController.GetBranches)
		meta.POST("/branches", metaController.CreateBranch)
		meta.GET("/subjects", metaController.GetSubjects)
		meta.POST("/subjects", metaController.CreateSubject)
	}

	// --- Admin panel ---
	admin := api.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/regulations", adminController.GetRegulations)
		admin.POST("/regulations", adminController.CreateRegulation)
		admin.PUT("/regulations/:id", adminController.UpdateRegulation)
		admin.DELETE("/regulations/:id", adminController.DeleteRegulation)

		admin.GET("/branches", adminController.GetBranches)
		admin.POST("/branches", adminController.CreateBranch)
		admin.PUT("/branches/:id", adminController.UpdateBranch)
		admin.DELETE("/branches/:id", adminController.DeleteBranch)

		admin.GET("/subjects", adminController.GetSubjects)
		admin.POST("/subjects", adminController.CreateSubject)
		admin.PUT("/subjects/:id", adminController.UpdateSubject)
		admin.DELETE("/subjects/:id", adminController.DeleteSubject)

		admin.GET("/faculty", adminController.GetFacultyList)
		admin.POST("/faculty", adminController.CreateFaculty)
		admin.PUT("/faculty/:id", adminController.UpdateFaculty)
		admin.DELETE("/faculty/:id", adminController.DeleteFaculty)
		admin.GET("/faculty/:id/uploads", adminController.GetFacultyUploads)

		admin.GET("/notes", adminController.GetNotes)
		admin.GET("/notes/:id/file", adminController.GetNoteFile)
		admin.DELETE("/notes/:id", adminController.DeleteNote)
	}

	// --- Auth ---
	auth := api.Group("/auth")
	{
		auth.POST("/student/register", authController.RegisterStudent)
		auth.POST("/student/login", authController.LoginStudent)
		auth.POST("/faculty/register", authController.RegisterFaculty)
		auth.POST("/faculty/login", authController.LoginFaculty)
		auth.POST("/admin/login", authController.LoginAdmin)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password/:token", authController.ResetPassword)
	}
}
