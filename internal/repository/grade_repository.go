package repository

import (
	"fmt"

	"github.com/noah-isme/course-reg-api/internal/models"
)

// GradeRepository stores scores. Records are append-only per (user, course):
// re-grading adds a new record rather than overwriting the old one.
type GradeRepository struct {
	store *Store
}

// NewGradeRepository constructs a GradeRepository over the shared store.
func NewGradeRepository(store *Store) *GradeRepository {
	return &GradeRepository{store: store}
}

// Set records a score clamped to [0,100], snapshotting the current course
// name so the record survives course deletion. The course is not required
// to exist; the snapshot name is empty in that case.
func (r *GradeRepository) Set(userID, courseID string, score float64) models.Grade {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	s := r.store
	s.mu.Lock()
	g := models.Grade{UserID: userID, CourseID: courseID, Score: score}
	if c, ok := s.courses[courseID]; ok {
		g.CourseName = c.Name
	}
	s.gradesByUser[userID] = append(s.gradesByUser[userID], g)
	s.mu.Unlock()
	s.AppendLog(fmt.Sprintf("grade:%s:%s:%g", userID, courseID, score))
	return g
}

// ListByUser returns a snapshot of the user's grade records.
func (r *GradeRepository) ListByUser(userID string) []models.Grade {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]models.Grade(nil), r.store.gradesByUser[userID]...)
}
