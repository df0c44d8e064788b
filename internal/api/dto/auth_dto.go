package dto

import "github.com/ticketwiz/ticketwiz/internal/domain"

// RegisterSaaSRequest payload for organization self-registration.
type RegisterSaaSRequest struct {
	CompanyName string `json:"company_name"`
	AdminName   string `json:"admin_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the user shape echoed by auth endpoints.
type UserResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           domain.UserRole `json:"role"`
	OrganizationID int64           `json:"organization_id"`
}

// OrganizationResponse is the organization shape echoed at registration.
// The API key is intentionally not included.
type OrganizationResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// UserFromDomain maps a user for API responses.
func UserFromDomain(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}
}

// OrganizationFromDomain maps an organization for API responses.
func OrganizationFromDomain(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:     org.ID,
		Name:   org.Name,
		Domain: org.Domain,
	}
}
