package dto

import "time"

// VenueView is a conference venue with deadlines normalized to the canonical zone.
type VenueView struct {
	ID                  string            `json:"id"`
	Venue               string            `json:"venue"`
	Year                string            `json:"year"`
	URL                 string            `json:"url"`
	Status              string            `json:"status"`
	Location            string            `json:"location"`
	TimeZone            string            `json:"time_zone"`
	OwnerID             string            `json:"owner_id,omitempty"`
	AddedByName         string            `json:"added_by_name"`
	View                []string          `json:"view"`
	AbstractSubmission  *time.Time        `json:"abstract_submission"`
	PaperSubmission     *time.Time        `json:"paper_submission"`
	AuthorResponse      *time.Time        `json:"author_response"`
	MetaReview          *time.Time        `json:"meta_review"`
	Notification        *time.Time        `json:"notification"`
	Commitment          *time.Time        `json:"commitment"`
	MainConferenceStart *time.Time        `json:"main_conference_start"`
	MainConferenceEnd   *time.Time        `json:"main_conference_end"`
	DisplayDates        map[string]string `json:"display_dates"`
	CanEdit             bool              `json:"can_edit"`
}

// Lookup implements query.Record.
func (v VenueView) Lookup(field string) (any, bool) {
	switch field {
	case "id", "_id":
		return v.ID, true
	case "venue":
		return v.Venue, true
	case "year":
		return v.Year, true
	case "url":
		return v.URL, true
	case "status":
		return v.Status, true
	case "location":
		return v.Location, true
	case "time_zone":
		return v.TimeZone, true
	case "owner_id", "added_by":
		return v.OwnerID, true
	case "added_by_name":
		return v.AddedByName, true
	case "abstract_submission":
		return v.AbstractSubmission, true
	case "paper_submission":
		return v.PaperSubmission, true
	case "author_response":
		return v.AuthorResponse, true
	case "meta_review":
		return v.MetaReview, true
	case "notification":
		return v.Notification, true
	case "commitment":
		return v.Commitment, true
	case "main_conference_start":
		return v.MainConferenceStart, true
	case "main_conference_end":
		return v.MainConferenceEnd, true
	default:
		return nil, false
	}
}

// VenueListRequest carries the venue table's search and sort.
type VenueListRequest struct {
	Search string `form:"search"`
	All    bool   `form:"all"`
	Sort   string `form:"sort"`
	Order  string `form:"order"`
}

// VenueRequest is the create/update payload for a venue. Dates use YYYY-MM-DD.
type VenueRequest struct {
	Venue               string   `json:"venue" validate:"required,max=200"`
	Year                string   `json:"year" validate:"omitempty,numeric,len=4"`
	URL                 string   `json:"url" validate:"omitempty,url"`
	Status              string   `json:"status" validate:"omitempty,oneof=Active Inactive"`
	AbstractSubmission  string   `json:"abstract_submission" validate:"omitempty,datetime=2006-01-02"`
	PaperSubmission     string   `json:"paper_submission" validate:"omitempty,datetime=2006-01-02"`
	AuthorResponse      string   `json:"author_response" validate:"omitempty,datetime=2006-01-02"`
	MetaReview          string   `json:"meta_review" validate:"omitempty,datetime=2006-01-02"`
	Notification        string   `json:"notification" validate:"omitempty,datetime=2006-01-02"`
	Commitment          string   `json:"commitment" validate:"omitempty,datetime=2006-01-02"`
	MainConferenceStart string   `json:"main_conference_start" validate:"omitempty,datetime=2006-01-02"`
	MainConferenceEnd   string   `json:"main_conference_end" validate:"omitempty,datetime=2006-01-02"`
	Location            string   `json:"location" validate:"max=200"`
	TimeZone            string   `json:"time_zone" validate:"omitempty,utcoffset"`
	View                []string `json:"view" validate:"dive,required"`
}
