package models

// UserRole represents the portal roles used by the edit-rights rules.
type UserRole string

const (
	RoleFaculty UserRole = "faculty"
	RolePhD     UserRole = "phd"
	RoleStudent UserRole = "student"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleFaculty, RolePhD, RoleStudent:
		return true
	default:
		return false
	}
}

// Actor is the authenticated portal user a request is evaluated for.
type Actor struct {
	ID    string   `json:"id"`
	Role  UserRole `json:"role"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
}

// FacultyMember is a row of the backend's faculty directory.
type FacultyMember struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}
