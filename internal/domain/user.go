package domain

// UserRole distinguishes org admins from support agents.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleAgent UserRole = "agent"
)

// User is an authenticated member of an organization. Email is unique across
// the whole system, not per tenant.
type User struct {
	ID             int64
	OrganizationID int64
	Name           string
	Email          string
	PasswordHash   string
	Role           UserRole
}
