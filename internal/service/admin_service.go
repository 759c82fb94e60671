package service

import (
	"go.uber.org/zap"

	"github.com/noah-isme/course-reg-api/internal/models"
)

type adminRepository interface {
	Stats() models.Stats
	Logs() []models.LogEntry
	Seed() bool
}

// AdminService exposes the administrative surface: aggregate counts, the
// audit log, and the demonstration seed.
type AdminService struct {
	repo   adminRepository
	logger *zap.Logger
}

// NewAdminService constructs AdminService.
func NewAdminService(repo adminRepository, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, logger: logger}
}

// Stats returns user, course and total-enrollment counts.
func (s *AdminService) Stats() models.Stats {
	return s.repo.Stats()
}

// Logs returns the audit log, oldest first.
func (s *AdminService) Logs() []models.LogEntry {
	return s.repo.Logs()
}

// Seed bootstraps demonstration data when the store is empty and reports
// whether it ran.
func (s *AdminService) Seed() bool {
	seeded := s.repo.Seed()
	if seeded {
		s.logger.Info("demo data seeded")
	}
	return seeded
}
