package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reg-api/internal/models"
	"github.com/noah-isme/course-reg-api/internal/repository"
)

type gradeFixture struct {
	svc         *GradeService
	users       *repository.UserRepository
	courses     *repository.CourseRepository
	enrollments *repository.EnrollmentRepository
	grades      *repository.GradeRepository
}

func newGradeFixture(t *testing.T) *gradeFixture {
	t.Helper()
	store := repository.NewStore()
	users := repository.NewUserRepository(store)
	courses := repository.NewCourseRepository(store)
	enrollments := repository.NewEnrollmentRepository(store)
	grades := repository.NewGradeRepository(store)
	return &gradeFixture{
		svc:         NewGradeService(grades, enrollments, courses, t.TempDir(), nil, nil),
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		grades:      grades,
	}
}

func TestGradeReportMergesEnrollmentsAndGrades(t *testing.T) {
	f := newGradeFixture(t)
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	graded := f.courses.Create("Graded", 3, 5, []models.TimeSlot{{Day: "Mon", Start: 10, End: 12}})
	ungraded := f.courses.Create("Ungraded", 3, 5, []models.TimeSlot{{Day: "Tue", Start: 10, End: 12}})

	f.enrollments.Enroll(a.ID, graded.ID)
	f.enrollments.Enroll(a.ID, ungraded.ID)
	f.grades.Set(a.ID, graded.ID, 70)
	f.grades.Set(a.ID, graded.ID, 90) // latest wins

	rows := f.svc.Report(a.ID)
	require.Len(t, rows, 2)

	byName := make(map[string]models.GradeReportRow)
	for _, r := range rows {
		byName[r.Name] = r
	}
	require.NotNil(t, byName["Graded"].Score)
	assert.Equal(t, 90.0, *byName["Graded"].Score)
	assert.Nil(t, byName["Ungraded"].Score, "enrolled but ungraded courses appear with no score")
}

func TestGradeReportAfterCourseDeletion(t *testing.T) {
	f := newGradeFixture(t)
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	doomed := f.courses.Create("Doomed", 3, 5, []models.TimeSlot{{Day: "Mon", Start: 10, End: 12}})

	f.enrollments.Enroll(a.ID, doomed.ID)
	g := f.grades.Set(a.ID, doomed.ID, 75)
	require.Equal(t, "Doomed", g.CourseName)

	// Deletion cascades to grades, so nothing is left to report.
	require.NoError(t, f.courses.Delete(doomed.ID))
	assert.Empty(t, f.svc.Report(a.ID))
}

func TestGradeReportSortedByCourseID(t *testing.T) {
	f := newGradeFixture(t)
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	for _, name := range []string{"One", "Two", "Three"} {
		c := f.courses.Create(name, 3, 5, nil)
		f.grades.Set(a.ID, c.ID, 50)
	}

	rows := f.svc.Report(a.ID)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1].CourseID, rows[i].CourseID)
	}
}

func TestGradeServiceSetValidates(t *testing.T) {
	f := newGradeFixture(t)
	a := f.users.Create("a", "pw", models.RoleStudent, "")

	_, err := f.svc.Set(a.ID, SetGradeRequest{Score: 50})
	require.Error(t, err)

	g, err := f.svc.Set(a.ID, SetGradeRequest{CourseID: "c1", Score: 120})
	require.NoError(t, err)
	assert.Equal(t, 100.0, g.Score)
}

func TestExportCSVWritesFile(t *testing.T) {
	f := newGradeFixture(t)
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	course := f.courses.Create("Algorithms", 3, 5, nil)
	f.grades.Set(a.ID, course.ID, 92.5)

	path, err := f.svc.ExportCSV(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "/exports/grades_"+a.ID+".csv", path)

	data, err := os.ReadFile(filepath.Join(f.svc.storageDir, "grades_"+a.ID+".csv"))
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "courseId,score"))
	assert.Contains(t, content, course.ID+",92.5")
}

func TestExportPDFWritesFile(t *testing.T) {
	f := newGradeFixture(t)
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	course := f.courses.Create("Algorithms", 3, 5, nil)
	f.grades.Set(a.ID, course.ID, 80)

	path, err := f.svc.ExportPDF(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "/exports/grades_"+a.ID+".pdf", path)

	data, err := os.ReadFile(filepath.Join(f.svc.storageDir, "grades_"+a.ID+".pdf"))
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}
