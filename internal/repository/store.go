package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/noah-isme/course-reg-api/internal/models"
)

// ErrNotFound is returned when an operation targets a user or course that
// does not exist in the store.
var ErrNotFound = errors.New("repository: not found")

// Store is the in-memory backing state shared by all repositories. It is
// constructed once at process start and passed by reference; there is no
// durable persistence and no teardown.
//
// Locking: mu guards every map. Each course additionally owns a dedicated
// mutex serializing enroll/drop/delete against that course's capacity and
// waitlist; the course lock is always acquired before mu, never while
// holding it. Operations on different courses proceed in parallel.
type Store struct {
	mu                sync.RWMutex
	users             map[string]*models.User
	courses           map[string]*models.Course
	enrollmentsByUser map[string][]*models.Enrollment
	waitlistByCourse  map[string][]string
	gradesByUser      map[string][]models.Grade

	logMu sync.Mutex
	logs  []models.LogEntry

	lockMu      sync.Mutex
	courseLocks map[string]*sync.Mutex
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		users:             make(map[string]*models.User),
		courses:           make(map[string]*models.Course),
		enrollmentsByUser: make(map[string][]*models.Enrollment),
		waitlistByCourse:  make(map[string][]string),
		gradesByUser:      make(map[string][]models.Grade),
		courseLocks:       make(map[string]*sync.Mutex),
	}
}

// AppendLog records a timestamped line in the append-only audit log.
func (s *Store) AppendLog(text string) {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.logs = append(s.logs, models.LogEntry{At: time.Now().UTC(), Text: text})
}

// Logs returns a snapshot copy of the audit log, oldest first.
func (s *Store) Logs() []models.LogEntry {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	out := make([]models.LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

// Stats returns aggregate counts. The enrollment total sums records across
// all statuses and users.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, list := range s.enrollmentsByUser {
		total += len(list)
	}
	return models.Stats{
		Users:       len(s.users),
		Courses:     len(s.courses),
		Enrollments: total,
	}
}

// courseLock returns the mutex for a course, creating it lazily when absent.
// A missing lock is recreated rather than treated as an error; callers decide
// NotFound from the course map itself.
func (s *Store) courseLock(courseID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.courseLocks[courseID]
	if !ok {
		lock = &sync.Mutex{}
		s.courseLocks[courseID] = lock
	}
	return lock
}

// lookupLock returns the course lock without creating one.
func (s *Store) lookupLock(courseID string) (*sync.Mutex, bool) {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.courseLocks[courseID]
	return lock, ok
}

// removeLock discards a course lock after the deletion critical section.
func (s *Store) removeLock(courseID string) {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	delete(s.courseLocks, courseID)
}

func copyCourse(c *models.Course) models.Course {
	out := *c
	out.Times = make([]models.TimeSlot, len(c.Times))
	copy(out.Times, c.Times)
	return out
}
