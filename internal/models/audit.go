package models

import "time"

// LogEntry is one line of the append-only audit log.
type LogEntry struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Stats aggregates store-wide counts. Enrollments is the raw record count
// across all statuses and users, not a distinct-course metric.
type Stats struct {
	Users       int `json:"users"`
	Courses     int `json:"courses"`
	Enrollments int `json:"enrollments"`
}
