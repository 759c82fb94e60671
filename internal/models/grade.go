package models

// Grade records a score for a user and course. CourseName is snapshotted at
// write time so the record survives course deletion. Records are append-only;
// re-grading adds a new record rather than overwriting.
type Grade struct {
	UserID     string  `json:"user_id"`
	CourseID   string  `json:"course_id"`
	Score      float64 `json:"score"`
	CourseName string  `json:"course_name,omitempty"`
}

// GradeReportRow merges a user's enrollments and grades: every enrolled or
// graded course appears once, with a nil score when not yet graded.
type GradeReportRow struct {
	CourseID string   `json:"course_id"`
	Name     string   `json:"name"`
	Score    *float64 `json:"score"`
}
