package dto

import "github.com/noah-isme/lab-portal-api/pkg/query"

// PersonView is a resolved user reference.
type PersonView struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Lookup implements query.Record.
func (p PersonView) Lookup(field string) (any, bool) {
	switch field {
	case "id", "_id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "email":
		return p.Email, true
	default:
		return nil, false
	}
}

// personField exposes an optional person as a nested record, or nil when absent.
func personField(p *PersonView) any {
	if p == nil {
		return nil
	}
	return query.Fields{"id": p.ID, "name": p.Name, "email": p.Email}
}
