package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeClamping(t *testing.T) {
	f := newFixture()
	a := f.student(t, "a")
	course := f.courses.Create("Algorithms", 3, 30, mondaySlot())

	assert.Equal(t, 100.0, f.grades.Set(a.ID, course.ID, 150).Score)
	assert.Equal(t, 0.0, f.grades.Set(a.ID, course.ID, -20).Score)
	assert.Equal(t, 87.5, f.grades.Set(a.ID, course.ID, 87.5).Score)
}

func TestGradesAreAppendOnly(t *testing.T) {
	f := newFixture()
	a := f.student(t, "a")
	course := f.courses.Create("Algorithms", 3, 30, mondaySlot())

	f.grades.Set(a.ID, course.ID, 70)
	f.grades.Set(a.ID, course.ID, 90)

	grades := f.grades.ListByUser(a.ID)
	require.Len(t, grades, 2)
	assert.Equal(t, 70.0, grades[0].Score)
	assert.Equal(t, 90.0, grades[1].Score)
}

func TestGradeSnapshotsCourseName(t *testing.T) {
	f := newFixture()
	a := f.student(t, "a")
	course := f.courses.Create("Algorithms", 3, 30, mondaySlot())

	g := f.grades.Set(a.ID, course.ID, 80)
	assert.Equal(t, "Algorithms", g.CourseName)

	renamed := "Renamed"
	require.NoError(t, f.courses.Update(course.ID, &renamed, nil, nil, nil))
	assert.Equal(t, "Algorithms", f.grades.ListByUser(a.ID)[0].CourseName, "snapshot does not follow renames")

	g = f.grades.Set(a.ID, "missing-course", 60)
	assert.Empty(t, g.CourseName)
}

func TestGradeListSnapshot(t *testing.T) {
	f := newFixture()
	a := f.student(t, "a")
	course := f.courses.Create("Algorithms", 3, 30, mondaySlot())
	f.grades.Set(a.ID, course.ID, 80)

	got := f.grades.ListByUser(a.ID)
	got[0].Score = 0
	assert.Equal(t, 80.0, f.grades.ListByUser(a.ID)[0].Score)
}
