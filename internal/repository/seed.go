package repository

import "github.com/noah-isme/course-reg-api/internal/models"

// Seed bootstraps demonstration data: one admin, two students, two courses
// with non-overlapping schedules (the first filled to capacity), and one
// grade. It runs only while the user store is empty and reports whether it
// ran.
func Seed(store *Store) bool {
	users := NewUserRepository(store)
	if !users.Empty() {
		return false
	}
	courses := NewCourseRepository(store)
	enrollments := NewEnrollmentRepository(store)
	grades := NewGradeRepository(store)

	users.Create("admin", "123456", models.RoleAdmin, "admin@example.com")
	alice := users.Create("alice", "123456", models.RoleStudent, "alice@example.com")
	bob := users.Create("bob", "123456", models.RoleStudent, "bob@example.com")

	structures := courses.Create("Data Structures", 3, 2, []models.TimeSlot{
		{Day: "Mon", Start: 10, End: 12},
		{Day: "Wed", Start: 10, End: 12},
	})
	databases := courses.Create("Database Systems", 4, 2, []models.TimeSlot{
		{Day: "Tue", Start: 14, End: 16},
		{Day: "Thu", Start: 14, End: 16},
	})

	enrollments.Enroll(alice.ID, structures.ID)
	enrollments.Enroll(bob.ID, structures.ID)
	enrollments.Enroll(alice.ID, databases.ID)
	grades.Set(alice.ID, structures.ID, 88)

	return true
}
