package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-reg-api/internal/service"
	"github.com/noah-isme/course-reg-api/pkg/response"
)

// AdminHandler exposes stats, audit logs and the demo seed (admin only).
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats returns aggregate store counts.
func (h *AdminHandler) Stats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.admin.Stats())
}

// Logs returns the audit log, oldest first.
func (h *AdminHandler) Logs(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.admin.Logs())
}

// Seed loads demonstration data if the store is empty.
func (h *AdminHandler) Seed(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"seeded": h.admin.Seed()})
}
