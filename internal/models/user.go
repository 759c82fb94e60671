package models

// UserRole represents the available roles for route authorization.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
)

// User represents an account held in the in-memory store. Passwords are
// stored and compared as plain values; usernames are not enforced unique and
// name lookups resolve to the first match.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Password string   `json:"-"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
}

// UserInfo is the public projection of a user returned by auth endpoints.
type UserInfo struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}
