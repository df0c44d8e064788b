package domain

// Organization is the tenancy boundary. Created once at registration and
// immutable thereafter; every user and ticket belongs to exactly one.
type Organization struct {
	ID     int64
	Name   string
	Domain string
	APIKey string
}
