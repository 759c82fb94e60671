package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-reg-api/internal/middleware"
	"github.com/noah-isme/course-reg-api/internal/models"
	"github.com/noah-isme/course-reg-api/internal/service"
)

// Handlers bundles everything RegisterRoutes wires up.
type Handlers struct {
	Auth        *AuthHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Grades      *GradeHandler
	Admin       *AdminHandler
	AuthService *service.AuthService
}

// RegisterRoutes attaches all API routes under the given prefix. Catalog
// reads are public; everything else requires a token, and mutation of the
// catalog plus the admin surface require the admin role.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", h.Courses.List)
		courses.GET("/filter", h.Courses.Filter)

		adminOnly := courses.Group("", middleware.JWT(h.AuthService), middleware.RequireRoles(models.RoleAdmin))
		adminOnly.POST("", h.Courses.Create)
		adminOnly.PATCH("/:id", h.Courses.Update)
		adminOnly.DELETE("/:id", h.Courses.Delete)
	}

	me := api.Group("/me", middleware.JWT(h.AuthService))
	{
		me.POST("/enrollments", h.Enrollments.Enroll)
		me.DELETE("/enrollments/:courseId", h.Enrollments.Drop)
		me.GET("/enrollments", h.Enrollments.List)
		me.GET("/calendar", h.Enrollments.Calendar)
		me.GET("/recommendations", h.Enrollments.Recommend)
		me.GET("/grades", h.Grades.Report)
		me.POST("/grades", h.Grades.Set)
		me.GET("/grades/export/csv", h.Grades.ExportCSV)
		me.GET("/grades/export/pdf", h.Grades.ExportPDF)
	}

	admin := api.Group("/admin", middleware.JWT(h.AuthService), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/stats", h.Admin.Stats)
		admin.GET("/logs", h.Admin.Logs)
		admin.POST("/seed", h.Admin.Seed)
	}
}
