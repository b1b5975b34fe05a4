package models

// Supervision links a faculty supervisor to a student and their thesis committee.
type Supervision struct {
	ID            string     `json:"_id"`
	FacultyID     *Ref       `json:"faculty_id"`
	StudentID     *Ref       `json:"student_id"`
	Joining       Timestamp  `json:"joining"`
	ThesisTitle   string     `json:"thesis_title"`
	Committee     []Ref      `json:"committee"`
	Stipend       FlexString `json:"stipend"`
	FundingSource string     `json:"funding_source"`
	SRPID         *Ref       `json:"srpId"`
}

// SupervisionPayload is the body of POST /supervisors and PUT /supervisors/{id}.
type SupervisionPayload struct {
	FacultyID     string   `json:"faculty_id"`
	StudentID     string   `json:"student_id"`
	Joining       string   `json:"joining"`
	ThesisTitle   string   `json:"thesis_title"`
	Committee     []string `json:"committee"`
	Stipend       string   `json:"stipend"`
	FundingSource string   `json:"funding_source"`
	SRPID         *string  `json:"srpId"`
}

// UnsupervisePayload is the body of DELETE /supervisors/unsupervise.
type UnsupervisePayload struct {
	FacultyID string `json:"faculty_id"`
	StudentID string `json:"student_id"`
}
