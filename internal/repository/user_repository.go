package repository

import (
	"github.com/google/uuid"

	"github.com/noah-isme/course-reg-api/internal/models"
)

// UserRepository provides CRUD access to users. Usernames are deliberately
// not enforced unique at this layer: name lookups resolve to the first match
// encountered, which is undefined when duplicates exist.
type UserRepository struct {
	store *Store
}

// NewUserRepository constructs a UserRepository over the shared store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create stores a new user with a generated id and returns a copy.
func (r *UserRepository) Create(username, password string, role models.UserRole, email string) models.User {
	u := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
		Role:     role,
		Email:    email,
	}
	r.store.mu.Lock()
	r.store.users[u.ID] = u
	r.store.mu.Unlock()
	r.store.AppendLog("addUser:" + username)
	return *u
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(id string) (models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return *u, nil
}

// FindByName scans for a user by exact username, first match wins.
func (r *UserRepository) FindByName(username string) (models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.findByNameLocked(username)
	if !ok {
		return models.User{}, ErrNotFound
	}
	return *u, nil
}

// ResetPassword replaces the password of the named user.
func (r *UserRepository) ResetPassword(username, newPassword string) error {
	r.store.mu.Lock()
	u, ok := r.findByNameLocked(username)
	if !ok {
		r.store.mu.Unlock()
		return ErrNotFound
	}
	u.Password = newPassword
	r.store.mu.Unlock()
	r.store.AppendLog("resetPassword:" + username)
	return nil
}

// Authenticate resolves the username and compares passwords by equality.
// Any failure is reported as ErrNotFound; the caller shapes the response.
func (r *UserRepository) Authenticate(username, password string) (models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.findByNameLocked(username)
	if !ok || u.Password != password {
		return models.User{}, ErrNotFound
	}
	return *u, nil
}

// Empty reports whether no users exist, gating the seed loader.
func (r *UserRepository) Empty() bool {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.users) == 0
}

func (r *UserRepository) findByNameLocked(username string) (*models.User, bool) {
	for _, u := range r.store.users {
		if u.Username == username {
			return u, true
		}
	}
	return nil, false
}
