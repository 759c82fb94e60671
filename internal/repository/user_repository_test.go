package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-reg-api/internal/models"
)

func TestUserCreateAndFind(t *testing.T) {
	f := newFixture()
	created := f.users.Create("alice", "pw", models.RoleStudent, "alice@example.com")
	require.NotEmpty(t, created.ID)

	byID, err := f.users.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := f.users.FindByName("alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
}

func TestUserFindMissing(t *testing.T) {
	f := newFixture()
	_, err := f.users.FindByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.users.FindByName("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateUsernamesResolveToOneRecord(t *testing.T) {
	f := newFixture()
	f.users.Create("dup", "first", models.RoleStudent, "")
	f.users.Create("dup", "second", models.RoleStudent, "")

	got, err := f.users.FindByName("dup")
	require.NoError(t, err)
	assert.Contains(t, []string{"first", "second"}, got.Password)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture()
	f.users.Create("alice", "secret", models.RoleStudent, "")

	got, err := f.users.Authenticate("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = f.users.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.users.Authenticate("nobody", "secret")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	f := newFixture()
	f.users.Create("alice", "old", models.RoleStudent, "")

	require.NoError(t, f.users.ResetPassword("alice", "new"))

	_, err := f.users.Authenticate("alice", "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.users.Authenticate("alice", "new")
	assert.NoError(t, err)

	assert.ErrorIs(t, f.users.ResetPassword("nobody", "x"), ErrNotFound)
}

func TestEmpty(t *testing.T) {
	f := newFixture()
	assert.True(t, f.users.Empty())
	f.users.Create("alice", "pw", models.RoleStudent, "")
	assert.False(t, f.users.Empty())
}
