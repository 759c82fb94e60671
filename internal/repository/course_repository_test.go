package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reg-api/internal/models"
)

func TestCourseCreateReturnsSnapshot(t *testing.T) {
	f := newFixture()
	created := f.courses.Create("Algorithms", 3, 30, mondaySlot())

	created.Name = "mutated"
	created.Times[0].Day = "Sun"

	got, err := f.courses.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", got.Name)
	assert.Equal(t, "Mon", got.Times[0].Day)
}

func TestCoursePartialUpdate(t *testing.T) {
	f := newFixture()
	course := f.courses.Create("Algorithms", 3, 30, mondaySlot())

	name := "Advanced Algorithms"
	capacity := 10
	require.NoError(t, f.courses.Update(course.ID, &name, nil, &capacity, nil))

	got, err := f.courses.FindByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Algorithms", got.Name)
	assert.Equal(t, 3, got.Credit, "nil field keeps prior value")
	assert.Equal(t, 10, got.Capacity)
	assert.Equal(t, mondaySlot(), got.Times)
}

func TestCourseUpdateReplacesTimesWholesale(t *testing.T) {
	f := newFixture()
	course := f.courses.Create("Algorithms", 3, 30, mondaySlot())

	newTimes := []models.TimeSlot{{Day: "Fri", Start: 8, End: 9}}
	require.NoError(t, f.courses.Update(course.ID, nil, nil, nil, newTimes))

	got, err := f.courses.FindByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, newTimes, got.Times)
}

func TestCourseUpdateMissing(t *testing.T) {
	f := newFixture()
	name := "x"
	assert.ErrorIs(t, f.courses.Update("missing", &name, nil, nil, nil), ErrNotFound)
}

func TestCourseDeleteCascades(t *testing.T) {
	f := newFixture()
	a := f.student(t, "a")
	b := f.student(t, "b")
	doomed := f.courses.Create("Doomed", 3, 1, mondaySlot())
	keeper := f.courses.Create("Keeper", 3, 5, []models.TimeSlot{{Day: "Tue", Start: 10, End: 12}})

	f.enrollments.Enroll(a.ID, doomed.ID)
	f.enrollments.Enroll(b.ID, doomed.ID) // waitlisted
	f.enrollments.Enroll(a.ID, keeper.ID)
	f.grades.Set(a.ID, doomed.ID, 90)
	f.grades.Set(a.ID, keeper.ID, 80)

	require.NoError(t, f.courses.Delete(doomed.ID))

	_, err := f.courses.FindByID(doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.enrollments.Waitlist(doomed.ID))

	remaining := f.enrollments.ListByUser(a.ID)
	require.Len(t, remaining, 1)
	assert.Equal(t, keeper.ID, remaining[0].CourseID)
	assert.Empty(t, f.enrollments.ListByUser(b.ID))

	grades := f.grades.ListByUser(a.ID)
	require.Len(t, grades, 1)
	assert.Equal(t, keeper.ID, grades[0].CourseID)
}

func TestCourseDeleteMissing(t *testing.T) {
	f := newFixture()
	assert.ErrorIs(t, f.courses.Delete("missing"), ErrNotFound)
}

func TestCourseFilter(t *testing.T) {
	f := newFixture()
	f.courses.Create("Light", 2, 30, []models.TimeSlot{{Day: "Mon", Start: 8, End: 10}})
	f.courses.Create("Medium", 3, 30, []models.TimeSlot{{Day: "Tue", Start: 8, End: 10}})
	f.courses.Create("Heavy", 5, 30, []models.TimeSlot{{Day: "Mon", Start: 14, End: 16}})

	min, max := 3, 5
	got := f.courses.Filter(models.CourseFilter{MinCredit: &min, MaxCredit: &max})
	require.Len(t, got, 2)

	got = f.courses.Filter(models.CourseFilter{Day: "Mon"})
	require.Len(t, got, 2)

	got = f.courses.Filter(models.CourseFilter{MinCredit: &min, Day: "Mon"})
	require.Len(t, got, 1)
	assert.Equal(t, "Heavy", got[0].Name)

	// Contradictory bounds return empty, not an error.
	lo, hi := 5, 2
	got = f.courses.Filter(models.CourseFilter{MinCredit: &lo, MaxCredit: &hi})
	assert.Empty(t, got)

	got = f.courses.Filter(models.CourseFilter{})
	assert.Len(t, got, 3)
}
