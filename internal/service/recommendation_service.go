package service

import (
	"go.uber.org/zap"

	"github.com/noah-isme/course-reg-api/internal/models"
)

type recommender interface {
	Recommend(userID string) []models.Course
}

// RecommendationService surfaces the popularity-ranked course suggestions.
type RecommendationService struct {
	repo   recommender
	logger *zap.Logger
}

// NewRecommendationService constructs RecommendationService.
func NewRecommendationService(repo recommender, logger *zap.Logger) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{repo: repo, logger: logger}
}

// Recommend returns courses the user holds no record for, ranked by
// popularity descending with deterministic tie-breaks.
func (s *RecommendationService) Recommend(userID string) []models.Course {
	return s.repo.Recommend(userID)
}
