package models

// EnrollmentStatus represents the outcome of an enrollment attempt.
type EnrollmentStatus string

// Possible enrollment statuses. Conflict is returned to the caller but never
// stored as a record.
const (
	EnrollmentStatusEnrolled EnrollmentStatus = "enrolled"
	EnrollmentStatusWaitlist EnrollmentStatus = "waitlist"
	EnrollmentStatusConflict EnrollmentStatus = "conflict"
)

// Enrollment links a user to a course. A user holds at most one record per
// course under normal operation.
type Enrollment struct {
	UserID   string           `json:"user_id"`
	CourseID string           `json:"course_id"`
	Status   EnrollmentStatus `json:"status"`
}

// EnrollmentDetail enriches Enrollment with the current course name for
// listing responses.
type EnrollmentDetail struct {
	Enrollment
	CourseName string `json:"name,omitempty"`
}

// CalendarEvent is one flattened schedule entry derived from an enrolled
// course's time slot.
type CalendarEvent struct {
	Title string `json:"title"`
	Day   string `json:"day"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}
