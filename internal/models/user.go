package models

type Role string

// Account role labels. The role is a stored label carried in token claims;
// it does not gate any endpoint.
const (
	RoleCustomer Role = "Customer"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

// ValidRole reports whether the given label is one of the known roles.
func ValidRole(role Role) bool {
	switch role {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize password hash
	Phone        string `json:"phone,omitempty"`
	Balance      string `json:"balance"` // DECIMAL(15,2), read-only, seeded by the schema
	Role         Role   `json:"role"`
}

// RegisterRequest represents a registration payload
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// LoginRequest represents a login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
