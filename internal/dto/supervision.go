package dto

import "time"

// SupervisionView is a supervised student row.
type SupervisionView struct {
	ID            string       `json:"id"`
	FacultyID     string       `json:"faculty_id"`
	Student       *PersonView  `json:"student"`
	Joining       *time.Time   `json:"joining"`
	ThesisTitle   string       `json:"thesis_title"`
	Committee     []PersonView `json:"committee"`
	Stipend       string       `json:"stipend"`
	FundingSource string       `json:"funding_source"`
	SRPID         string       `json:"srp_id,omitempty"`
	CanEdit       bool         `json:"can_edit"`
}

// Lookup implements query.Record.
func (v SupervisionView) Lookup(field string) (any, bool) {
	switch field {
	case "id", "_id":
		return v.ID, true
	case "faculty_id":
		return v.FacultyID, true
	case "student", "student_id":
		return personField(v.Student), true
	case "joining":
		return v.Joining, true
	case "thesis_title":
		return v.ThesisTitle, true
	case "funding_source":
		return v.FundingSource, true
	case "stipend":
		return v.Stipend, true
	default:
		return nil, false
	}
}

// FacultyView is a faculty directory entry offered as a committee member.
type FacultyView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

// Lookup implements query.Record.
func (v FacultyView) Lookup(field string) (any, bool) {
	switch field {
	case "id", "_id":
		return v.ID, true
	case "name":
		return v.Name, true
	case "email":
		return v.Email, true
	case "department":
		return v.Department, true
	default:
		return nil, false
	}
}

// SupervisionListRequest carries the supervision table's search and sort.
type SupervisionListRequest struct {
	Search string `form:"search"`
	Sort   string `form:"sort"`
	Order  string `form:"order"`
}

// SaveSupervisionRequest creates or updates the supervision of a student.
type SaveSupervisionRequest struct {
	StudentID     string   `json:"student_id" validate:"required"`
	Joining       string   `json:"joining" validate:"required,datetime=2006-01-02"`
	ThesisTitle   string   `json:"thesis_title" validate:"max=300"`
	Committee     []string `json:"committee" validate:"dive,required"`
	Stipend       string   `json:"stipend" validate:"omitempty,numeric"`
	FundingSource string   `json:"funding_source" validate:"max=200"`
	SRPID         *string  `json:"srpId"`
}

// UnsuperviseRequest ends the supervision of a student.
type UnsuperviseRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}
