package repository

import "github.com/noah-isme/course-reg-api/internal/models"

// AdminRepository groups the administrative read surface: aggregate counts,
// the audit log, and the seed loader.
type AdminRepository struct {
	store *Store
}

// NewAdminRepository constructs an AdminRepository over the shared store.
func NewAdminRepository(store *Store) *AdminRepository {
	return &AdminRepository{store: store}
}

// Stats returns store-wide aggregate counts.
func (r *AdminRepository) Stats() models.Stats {
	return r.store.Stats()
}

// Logs returns a snapshot of the audit log, oldest first.
func (r *AdminRepository) Logs() []models.LogEntry {
	return r.store.Logs()
}

// Seed runs the demonstration bootstrap if the store holds no users.
func (r *AdminRepository) Seed() bool {
	return Seed(r.store)
}
