package dto

import "time"

// SubmissionView is an under-review project row.
type SubmissionView struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	LeadAuthor       *PersonView  `json:"lead_author"`
	Team             []PersonView `json:"team"`
	FacultyID        string       `json:"faculty_id,omitempty"`
	Venue            string       `json:"venue"`
	Status           string       `json:"status"`
	DateOfSubmission *time.Time   `json:"date_of_submission"`
	NextDeadline     *time.Time   `json:"next_deadline"`
	Remarks          string       `json:"remarks,omitempty"`
	PaperURL         string       `json:"paper_url,omitempty"`
	SubmissionURL    string       `json:"submission_url,omitempty"`
	CanEditVenue     bool         `json:"can_edit_venue"`
}

// Lookup implements query.Record.
func (v SubmissionView) Lookup(field string) (any, bool) {
	switch field {
	case "id", "_id":
		return v.ID, true
	case "name":
		return v.Name, true
	case "lead_author":
		return personField(v.LeadAuthor), true
	case "faculty_id":
		return v.FacultyID, true
	case "venue":
		return v.Venue, true
	case "status":
		return v.Status, true
	case "date_of_submission":
		return v.DateOfSubmission, true
	case "next_deadline":
		return v.NextDeadline, true
	case "remarks":
		return v.Remarks, true
	default:
		return nil, false
	}
}

// SubmissionListRequest carries the submissions table's search, filters and sort.
type SubmissionListRequest struct {
	Search  string `form:"search"`
	Name    string `form:"name"`
	Project string `form:"project"`
	Venue   string `form:"venue"`
	Sort    string `form:"sort"`
	Order   string `form:"order"`
}

// UpdateSubmissionVenueRequest changes the venue of a submission.
type UpdateSubmissionVenueRequest struct {
	Venue string `json:"venue" validate:"required,max=200"`
}
