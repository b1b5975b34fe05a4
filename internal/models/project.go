package models

// ProjectStatusUnderReview marks projects that are currently submitted to a venue.
const ProjectStatusUnderReview = "under-review"

// Project is a backend project document; under-review projects are shown as submissions.
type Project struct {
	ID               string    `json:"_id"`
	Name             string    `json:"name"`
	LeadAuthor       *Ref      `json:"lead_author"`
	Team             []Ref     `json:"team"`
	FacultyID        *Ref      `json:"faculty_id"`
	Venue            string    `json:"venue"`
	Status           string    `json:"status"`
	DateOfSubmission Timestamp `json:"date_of_submission"`
	NextDeadline     Timestamp `json:"next_deadline"`
	Remarks          string    `json:"remarks,omitempty"`
	PaperURL         string    `json:"paper_url,omitempty"`
	SubmissionURL    string    `json:"submission_url,omitempty"`
}

// ProjectVenueUpdate is the body of PUT /projects/{id}.
type ProjectVenueUpdate struct {
	Venue string `json:"venue"`
}
