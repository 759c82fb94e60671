package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reg-api/internal/models"
	"github.com/noah-isme/course-reg-api/internal/repository"
	appErrors "github.com/noah-isme/course-reg-api/pkg/errors"
)

type enrollFixture struct {
	svc         *EnrollmentService
	users       *repository.UserRepository
	courses     *repository.CourseRepository
	enrollments *repository.EnrollmentRepository
}

func newEnrollFixture() *enrollFixture {
	store := repository.NewStore()
	users := repository.NewUserRepository(store)
	courses := repository.NewCourseRepository(store)
	enrollments := repository.NewEnrollmentRepository(store)
	return &enrollFixture{
		svc:         NewEnrollmentService(enrollments, courses, nil, nil, NewMetricsService()),
		users:       users,
		courses:     courses,
		enrollments: enrollments,
	}
}

func TestEnrollServiceStatuses(t *testing.T) {
	f := newEnrollFixture()
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	b := f.users.Create("b", "pw", models.RoleStudent, "")
	course := f.courses.Create("Algorithms", 3, 1, []models.TimeSlot{{Day: "Mon", Start: 10, End: 12}})
	clash := f.courses.Create("Compilers", 3, 5, []models.TimeSlot{{Day: "Mon", Start: 11, End: 13}})

	got, err := f.svc.Enroll(a.ID, EnrollRequest{CourseID: course.ID})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusEnrolled, got.Status)

	got, err = f.svc.Enroll(b.ID, EnrollRequest{CourseID: course.ID})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusWaitlist, got.Status)

	// A schedule conflict is a result, not an error.
	got, err = f.svc.Enroll(a.ID, EnrollRequest{CourseID: clash.ID})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusConflict, got.Status)
}

func TestEnrollServiceMapsNotFound(t *testing.T) {
	f := newEnrollFixture()
	a := f.users.Create("a", "pw", models.RoleStudent, "")

	_, err := f.svc.Enroll(a.ID, EnrollRequest{CourseID: "missing"})
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))

	_, err = f.svc.Enroll(a.ID, EnrollRequest{})
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, err))
}

func TestEnrollServiceListJoinsNames(t *testing.T) {
	f := newEnrollFixture()
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	course := f.courses.Create("Algorithms", 3, 5, []models.TimeSlot{{Day: "Mon", Start: 10, End: 12}})

	_, err := f.svc.Enroll(a.ID, EnrollRequest{CourseID: course.ID})
	require.NoError(t, err)

	details := f.svc.List(a.ID)
	require.Len(t, details, 1)
	assert.Equal(t, "Algorithms", details[0].CourseName)
	assert.Equal(t, models.EnrollmentStatusEnrolled, details[0].Status)
}

func TestEnrollServiceDrop(t *testing.T) {
	f := newEnrollFixture()
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	course := f.courses.Create("Algorithms", 3, 5, []models.TimeSlot{{Day: "Mon", Start: 10, End: 12}})

	_, err := f.svc.Enroll(a.ID, EnrollRequest{CourseID: course.ID})
	require.NoError(t, err)

	assert.True(t, f.svc.Drop(a.ID, course.ID))
	assert.False(t, f.svc.Drop(a.ID, course.ID))
	assert.Empty(t, f.svc.List(a.ID))
}

func TestEnrollServiceCalendar(t *testing.T) {
	f := newEnrollFixture()
	a := f.users.Create("a", "pw", models.RoleStudent, "")
	course := f.courses.Create("Algorithms", 3, 5, []models.TimeSlot{
		{Day: "Mon", Start: 10, End: 12},
		{Day: "Wed", Start: 10, End: 12},
	})

	_, err := f.svc.Enroll(a.ID, EnrollRequest{CourseID: course.ID})
	require.NoError(t, err)

	events := f.svc.Calendar(a.ID)
	require.Len(t, events, 2)
	assert.Equal(t, "Algorithms", events[0].Title)
}
