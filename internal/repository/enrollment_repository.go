package repository

import (
	"sort"

	"github.com/noah-isme/course-reg-api/internal/models"
)

// EnrollmentRepository is the enrollment engine: it owns the per-course
// critical sections governing capacity, schedule-conflict detection, the
// FIFO waitlist and drop-triggered promotion.
//
// Conflict detection runs under the target course's lock, so it sees a
// consistent view relative to concurrent enroll/drop on that course. Two
// enrollments by the same user against different courses are serialized by
// different locks and are not ordered against each other; that narrow
// cross-course race is accepted in exchange for per-course parallelism.
type EnrollmentRepository struct {
	store *Store
}

// NewEnrollmentRepository constructs an EnrollmentRepository over the shared
// store.
func NewEnrollmentRepository(store *Store) *EnrollmentRepository {
	return &EnrollmentRepository{store: store}
}

// Enroll attempts to register a user for a course.
//
// If the user already holds any record for the course it is returned
// unchanged, without re-evaluating conflicts or capacity. A missing course
// yields ErrNotFound. Otherwise, under the course lock: a schedule conflict
// returns a conflict-status result that is never stored; a free seat yields
// an enrolled record; a full course appends the user to the waitlist tail
// and yields a waitlist record.
func (r *EnrollmentRepository) Enroll(userID, courseID string) (models.Enrollment, error) {
	s := r.store

	s.mu.RLock()
	for _, e := range s.enrollmentsByUser[userID] {
		if e.CourseID == courseID {
			existing := *e
			s.mu.RUnlock()
			s.AppendLog("duplicate_enroll:" + userID + ":" + courseID)
			return existing, nil
		}
	}
	_, exists := s.courses[courseID]
	s.mu.RUnlock()
	if !exists {
		return models.Enrollment{}, ErrNotFound
	}

	lock := s.courseLock(courseID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[courseID]
	if !ok {
		// Deleted between the existence check and lock acquisition.
		return models.Enrollment{}, ErrNotFound
	}

	if r.conflictLocked(userID, c) {
		s.AppendLog("conflict:" + userID + ":" + courseID)
		return models.Enrollment{UserID: userID, CourseID: courseID, Status: models.EnrollmentStatusConflict}, nil
	}

	if c.Enrolled < c.Capacity {
		c.Enrolled++
		e := &models.Enrollment{UserID: userID, CourseID: courseID, Status: models.EnrollmentStatusEnrolled}
		s.enrollmentsByUser[userID] = append(s.enrollmentsByUser[userID], e)
		s.AppendLog("enroll:" + userID + ":" + courseID)
		return *e, nil
	}

	s.waitlistByCourse[courseID] = append(s.waitlistByCourse[courseID], userID)
	e := &models.Enrollment{UserID: userID, CourseID: courseID, Status: models.EnrollmentStatusWaitlist}
	s.enrollmentsByUser[userID] = append(s.enrollmentsByUser[userID], e)
	s.AppendLog("waitlist:" + userID + ":" + courseID)
	return *e, nil
}

// Drop removes the user's first matching record for the course and reports
// whether one was removed. Dropping an enrolled record frees the seat and,
// when the waitlist is non-empty, promotes its head to enrolled. Dropping a
// waitlisted record removes the user's waitlist position and leaves the
// enrolled count untouched.
func (r *EnrollmentRepository) Drop(userID, courseID string) bool {
	s := r.store

	s.mu.Lock()
	list := s.enrollmentsByUser[userID]
	removed := false
	var removedStatus models.EnrollmentStatus
	for i, e := range list {
		if e.CourseID == courseID {
			removedStatus = e.Status
			s.enrollmentsByUser[userID] = append(list[:i], list[i+1:]...)
			removed = true
			break
		}
	}
	_, courseExists := s.courses[courseID]
	s.mu.Unlock()

	if !removed || !courseExists {
		return removed
	}

	lock := s.courseLock(courseID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[courseID]
	if !ok {
		return true
	}

	switch removedStatus {
	case models.EnrollmentStatusEnrolled:
		if c.Enrolled > 0 {
			c.Enrolled--
		}
		wl := s.waitlistByCourse[courseID]
		if len(wl) > 0 {
			next := wl[0]
			s.waitlistByCourse[courseID] = wl[1:]
			for _, e := range s.enrollmentsByUser[next] {
				if e.CourseID == courseID && e.Status == models.EnrollmentStatusWaitlist {
					e.Status = models.EnrollmentStatusEnrolled
					c.Enrolled++
					s.AppendLog("promote:" + next + ":" + courseID)
					break
				}
			}
		}
	case models.EnrollmentStatusWaitlist:
		wl := s.waitlistByCourse[courseID]
		for i, uid := range wl {
			if uid == userID {
				s.waitlistByCourse[courseID] = append(wl[:i], wl[i+1:]...)
				break
			}
		}
	}
	return true
}

// ListByUser returns a snapshot of the user's enrollment records.
func (r *EnrollmentRepository) ListByUser(userID string) []models.Enrollment {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	list := r.store.enrollmentsByUser[userID]
	out := make([]models.Enrollment, 0, len(list))
	for _, e := range list {
		out = append(out, *e)
	}
	return out
}

// Calendar flattens the user's enrolled courses into one event per time
// slot. Waitlisted records are skipped; duplicate-enrollment artifacts, if
// present, produce duplicate events.
func (r *EnrollmentRepository) Calendar(userID string) []models.CalendarEvent {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := make([]models.CalendarEvent, 0)
	for _, e := range r.store.enrollmentsByUser[userID] {
		if e.Status != models.EnrollmentStatusEnrolled {
			continue
		}
		c, ok := r.store.courses[e.CourseID]
		if !ok {
			continue
		}
		for _, t := range c.Times {
			events = append(events, models.CalendarEvent{Title: c.Name, Day: t.Day, Start: t.Start, End: t.End})
		}
	}
	return events
}

// Recommend ranks courses the user does not hold any record for by
// popularity (enrollment records of any status), descending, with ties
// broken by name then id ascending so the order is deterministic regardless
// of map iteration.
func (r *EnrollmentRepository) Recommend(userID string) []models.Course {
	s := r.store
	s.mu.RLock()
	popularity := make(map[string]int)
	for _, list := range s.enrollmentsByUser {
		for _, e := range list {
			popularity[e.CourseID]++
		}
	}
	taken := make(map[string]struct{})
	for _, e := range s.enrollmentsByUser[userID] {
		taken[e.CourseID] = struct{}{}
	}
	out := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if _, ok := taken[c.ID]; ok {
			continue
		}
		out = append(out, copyCourse(c))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		pi, pj := popularity[out[i].ID], popularity[out[j].ID]
		if pi != pj {
			return pi > pj
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Waitlist returns a snapshot of a course's waitlist in FIFO order.
func (r *EnrollmentRepository) Waitlist(courseID string) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]string(nil), r.store.waitlistByCourse[courseID]...)
}

// conflictLocked reports whether the candidate course overlaps any of the
// user's enrolled courses: same day and intersecting half-open hour ranges.
// Caller holds store.mu.
func (r *EnrollmentRepository) conflictLocked(userID string, candidate *models.Course) bool {
	for _, e := range r.store.enrollmentsByUser[userID] {
		if e.Status != models.EnrollmentStatusEnrolled {
			continue
		}
		c, ok := r.store.courses[e.CourseID]
		if !ok {
			continue
		}
		for _, have := range c.Times {
			for _, want := range candidate.Times {
				if have.Day == want.Day && !(have.End <= want.Start || want.End <= have.Start) {
					return true
				}
			}
		}
	}
	return false
}
