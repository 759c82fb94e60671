package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reg-api/internal/models"
)

func TestSeedLoadsDemoData(t *testing.T) {
	f := newFixture()
	require.True(t, Seed(f.store))

	stats := f.store.Stats()
	assert.Equal(t, 3, stats.Users)
	assert.Equal(t, 2, stats.Courses)
	assert.Equal(t, 3, stats.Enrollments)

	alice, err := f.users.FindByName("alice")
	require.NoError(t, err)
	_, err = f.users.Authenticate("admin", "123456")
	require.NoError(t, err)

	records := f.enrollments.ListByUser(alice.ID)
	require.Len(t, records, 2)
	for _, e := range records {
		assert.Equal(t, models.EnrollmentStatusEnrolled, e.Status)
	}

	grades := f.grades.ListByUser(alice.ID)
	require.Len(t, grades, 1)
	assert.Equal(t, 88.0, grades[0].Score)
	assert.Equal(t, "Data Structures", grades[0].CourseName)
}

func TestSeedIsIdempotent(t *testing.T) {
	f := newFixture()
	require.True(t, Seed(f.store))
	assert.False(t, Seed(f.store), "seed must not run twice")
	assert.Equal(t, 3, f.store.Stats().Users)
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	f := newFixture()
	f.users.Create("existing", "pw", models.RoleStudent, "")
	assert.False(t, Seed(f.store))
	assert.Equal(t, 1, f.store.Stats().Users)
}
