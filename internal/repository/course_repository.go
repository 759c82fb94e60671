package repository

import (
	"sync"

	"github.com/google/uuid"

	"github.com/noah-isme/course-reg-api/internal/models"
)

// CourseRepository provides catalog CRUD. Creation registers the course's
// dedicated lock; deletion cascades to waitlists, enrollment records and
// grades under that lock so no enroll can complete against a course
// mid-deletion.
type CourseRepository struct {
	store *Store
}

// NewCourseRepository constructs a CourseRepository over the shared store.
func NewCourseRepository(store *Store) *CourseRepository {
	return &CourseRepository{store: store}
}

// Create stores a new course with a generated id and its lock.
func (r *CourseRepository) Create(name string, credit, capacity int, times []models.TimeSlot) models.Course {
	c := &models.Course{
		ID:       uuid.NewString(),
		Name:     name,
		Credit:   credit,
		Capacity: capacity,
		Times:    append([]models.TimeSlot(nil), times...),
	}
	s := r.store
	s.lockMu.Lock()
	s.courseLocks[c.ID] = &sync.Mutex{}
	s.lockMu.Unlock()
	s.mu.Lock()
	s.courses[c.ID] = c
	s.mu.Unlock()
	s.AppendLog("addCourse:" + name)
	return copyCourse(c)
}

// Update applies a partial update; nil fields retain their prior value.
// Times, when provided, replace the schedule wholesale. Capacity changes are
// not reconciled against in-flight enrollments; enrolled may transiently
// exceed a lowered capacity until the next enroll/drop on the course.
func (r *CourseRepository) Update(id string, name *string, credit, capacity *int, times []models.TimeSlot) error {
	s := r.store
	s.mu.Lock()
	c, ok := s.courses[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if name != nil {
		c.Name = *name
	}
	if credit != nil {
		c.Credit = *credit
	}
	if capacity != nil {
		c.Capacity = *capacity
	}
	if times != nil {
		c.Times = append([]models.TimeSlot(nil), times...)
	}
	s.mu.Unlock()
	s.AppendLog("updateCourse:" + id)
	return nil
}

// Delete removes a course and cascades to its waitlist, every enrollment
// record referencing it, and every grade referencing it. The course lock is
// held for the whole cascade and discarded afterwards.
func (r *CourseRepository) Delete(id string) error {
	s := r.store
	lock, held := s.lookupLock(id)
	if held {
		lock.Lock()
	}

	s.mu.Lock()
	_, ok := s.courses[id]
	if !ok {
		s.mu.Unlock()
		if held {
			lock.Unlock()
		}
		return ErrNotFound
	}
	delete(s.courses, id)
	delete(s.waitlistByCourse, id)
	for uid, list := range s.enrollmentsByUser {
		kept := list[:0]
		for _, e := range list {
			if e.CourseID != id {
				kept = append(kept, e)
			}
		}
		s.enrollmentsByUser[uid] = kept
	}
	for uid, grades := range s.gradesByUser {
		kept := grades[:0]
		for _, g := range grades {
			if g.CourseID != id {
				kept = append(kept, g)
			}
		}
		s.gradesByUser[uid] = kept
	}
	s.mu.Unlock()

	if held {
		lock.Unlock()
	}
	s.removeLock(id)
	s.AppendLog("deleteCourse:" + id)
	return nil
}

// FindByID returns a snapshot copy of the course.
func (r *CourseRepository) FindByID(id string) (models.Course, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.courses[id]
	if !ok {
		return models.Course{}, ErrNotFound
	}
	return copyCourse(c), nil
}

// List returns snapshot copies of every course.
func (r *CourseRepository) List() []models.Course {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]models.Course, 0, len(r.store.courses))
	for _, c := range r.store.courses {
		out = append(out, copyCourse(c))
	}
	return out
}

// Filter returns courses satisfying every set constraint. Contradictory
// bounds yield an empty list rather than an error.
func (r *CourseRepository) Filter(f models.CourseFilter) []models.Course {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]models.Course, 0)
	for _, c := range r.store.courses {
		if f.MinCredit != nil && c.Credit < *f.MinCredit {
			continue
		}
		if f.MaxCredit != nil && c.Credit > *f.MaxCredit {
			continue
		}
		if f.Day != "" {
			has := false
			for _, t := range c.Times {
				if t.Day == f.Day {
					has = true
					break
				}
			}
			if !has {
				continue
			}
		}
		out = append(out, copyCourse(c))
	}
	return out
}
