package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-reg-api/internal/models"
	"github.com/noah-isme/course-reg-api/pkg/export"
	appErrors "github.com/noah-isme/course-reg-api/pkg/errors"
)

type gradeRepository interface {
	Set(userID, courseID string, score float64) models.Grade
	ListByUser(userID string) []models.Grade
}

type enrollmentReader interface {
	ListByUser(userID string) []models.Enrollment
}

// SetGradeRequest carries a score for a user and course. Scores outside
// [0,100] are clamped, not rejected.
type SetGradeRequest struct {
	UserID   string  `json:"user_id"`
	CourseID string  `json:"course_id" validate:"required"`
	Score    float64 `json:"score"`
}

// GradeService manages scores, the merged grade report, and file exports.
type GradeService struct {
	repo        gradeRepository
	enrollments enrollmentReader
	courses     courseLister
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	storageDir  string
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGradeService constructs GradeService.
func NewGradeService(repo gradeRepository, enrollments enrollmentReader, courses courseLister, storageDir string, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		repo:        repo,
		enrollments: enrollments,
		courses:     courses,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		storageDir:  storageDir,
		validator:   validate,
		logger:      logger,
	}
}

// Set records a grade for the target user.
func (s *GradeService) Set(userID string, req SetGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	grade := s.repo.Set(userID, req.CourseID, req.Score)
	s.logger.Info("grade set", zap.String("user_id", userID), zap.String("course_id", req.CourseID), zap.Float64("score", grade.Score))
	return &grade, nil
}

// List returns the user's raw grade records.
func (s *GradeService) List(userID string) []models.Grade {
	return s.repo.ListByUser(userID)
}

// Report merges the user's enrolled courses with their grades: each course
// appears once, with a nil score when not yet graded. When a course was
// graded more than once the latest record wins. Names prefer the grade's
// snapshot, then the live catalog, then the id. Rows are sorted by course id
// for a stable order.
func (s *GradeService) Report(userID string) []models.GradeReportRow {
	grades := s.repo.ListByUser(userID)
	latest := make(map[string]models.Grade)
	for _, g := range grades {
		latest[g.CourseID] = g
	}

	liveNames := make(map[string]string)
	for _, c := range s.courses.List() {
		liveNames[c.ID] = c.Name
	}

	ids := make(map[string]struct{})
	for _, e := range s.enrollments.ListByUser(userID) {
		if e.Status == models.EnrollmentStatusEnrolled {
			ids[e.CourseID] = struct{}{}
		}
	}
	for _, g := range grades {
		ids[g.CourseID] = struct{}{}
	}

	rows := make([]models.GradeReportRow, 0, len(ids))
	for id := range ids {
		row := models.GradeReportRow{CourseID: id, Name: id}
		if name, ok := liveNames[id]; ok {
			row.Name = name
		}
		if g, ok := latest[id]; ok {
			if g.CourseName != "" {
				row.Name = g.CourseName
			}
			score := g.Score
			row.Score = &score
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CourseID < rows[j].CourseID })
	return rows
}

// ExportCSV writes the user's grades as a CSV file under the storage dir and
// returns the relative download path.
func (s *GradeService) ExportCSV(userID string) (string, error) {
	data, err := s.csv.Render(s.dataset(userID))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return s.writeExport(fmt.Sprintf("grades_%s.csv", userID), data)
}

// ExportPDF writes the user's grades as a PDF report under the storage dir
// and returns the relative download path.
func (s *GradeService) ExportPDF(userID string) (string, error) {
	data, err := s.pdf.Render(s.dataset(userID), "grade report")
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return s.writeExport(fmt.Sprintf("grades_%s.pdf", userID), data)
}

func (s *GradeService) dataset(userID string) export.Dataset {
	grades := s.repo.ListByUser(userID)
	rows := make([]map[string]string, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, map[string]string{
			"courseId": g.CourseID,
			"score":    fmt.Sprintf("%g", g.Score),
		})
	}
	return export.Dataset{Headers: []string{"courseId", "score"}, Rows: rows}
}

func (s *GradeService) writeExport(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to prepare export dir")
	}
	path := filepath.Join(s.storageDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write export")
	}
	return "/exports/" + name, nil
}
