package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-reg-api/internal/models"
	"github.com/noah-isme/course-reg-api/internal/service"
	appErrors "github.com/noah-isme/course-reg-api/pkg/errors"
	"github.com/noah-isme/course-reg-api/pkg/response"
)

// CourseHandler exposes catalog endpoints.
type CourseHandler struct {
	courses *service.CourseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// Create publishes a course (admin only).
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update applies a partial update (admin only).
func (h *CourseHandler) Update(c *gin.Context) {
	var req service.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.courses.Update(c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"ok": true})
}

// Delete removes a course with cascading cleanup (admin only).
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courses.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List returns the whole catalog.
func (h *CourseHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.courses.List())
}

// Filter narrows the catalog by credit bounds and meeting day.
func (h *CourseHandler) Filter(c *gin.Context) {
	var filter models.CourseFilter
	if raw := c.Query("minCredit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.MinCredit = &v
		}
	}
	if raw := c.Query("maxCredit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.MaxCredit = &v
		}
	}
	filter.Day = c.Query("day")
	response.JSON(c, http.StatusOK, h.courses.Filter(filter))
}
