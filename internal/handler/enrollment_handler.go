package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-reg-api/internal/middleware"
	"github.com/noah-isme/course-reg-api/internal/service"
	appErrors "github.com/noah-isme/course-reg-api/pkg/errors"
	"github.com/noah-isme/course-reg-api/pkg/response"
)

// EnrollmentHandler exposes enroll/drop and personal schedule endpoints. The
// acting user always comes from the token, never the payload.
type EnrollmentHandler struct {
	enrollments     *service.EnrollmentService
	recommendations *service.RecommendationService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService, recommendations *service.RecommendationService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, recommendations: recommendations}
}

// Enroll attempts to register the current user; the response status is
// enrolled, waitlist, or conflict.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Enroll(claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// Drop removes the current user's record for a course.
func (h *EnrollmentHandler) Drop(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	removed := h.enrollments.Drop(claims.UserID, c.Param("courseId"))
	response.JSON(c, http.StatusOK, gin.H{"ok": removed})
}

// List returns the current user's enrollments with course names.
func (h *EnrollmentHandler) List(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.enrollments.List(claims.UserID))
}

// Calendar returns the current user's schedule events.
func (h *EnrollmentHandler) Calendar(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.enrollments.Calendar(claims.UserID))
}

// Recommend returns popularity-ranked course suggestions for the current
// user.
func (h *EnrollmentHandler) Recommend(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.recommendations.Recommend(claims.UserID))
}
