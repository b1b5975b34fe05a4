package models

import "encoding/json"

// VenueStatusActive is the default status of a tracked venue.
const VenueStatusActive = "Active"

// Venue is a conference venue tracked by the lab, with its deadline calendar.
type Venue struct {
	ID                  string     `json:"_id"`
	Venue               string     `json:"venue"`
	Year                FlexString `json:"year"`
	URL                 string     `json:"url"`
	AddedBy             *Ref       `json:"added_by"`
	Status              string     `json:"status"`
	AbstractSubmission  Timestamp  `json:"abstract_submission"`
	PaperSubmission     Timestamp  `json:"paper_submission"`
	AuthorResponse      Timestamp  `json:"author_response"`
	MetaReview          Timestamp  `json:"meta_review"`
	Notification        Timestamp  `json:"notification"`
	Commitment          Timestamp  `json:"commitment"`
	MainConferenceStart Timestamp  `json:"main_conference_start"`
	MainConferenceEnd   Timestamp  `json:"main_conference_end"`
	Location            string     `json:"location"`
	TimeZone            string     `json:"time_zone"`
	View                []Ref      `json:"view"`
}

// VenueList decodes GET /venues/{userId}, which answers either {"venues": [...]} or a bare array.
type VenueList []Venue

// UnmarshalJSON implements json.Unmarshaler.
func (l *VenueList) UnmarshalJSON(data []byte) error {
	var rows []Venue
	if err := json.Unmarshal(data, &rows); err == nil {
		*l = rows
		return nil
	}
	var wrapped struct {
		Venues []Venue `json:"venues"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Venues
	return nil
}

// VenuePayload is the body of POST /venues and PUT /venues/{id}.
type VenuePayload struct {
	Venue               string   `json:"venue"`
	Year                string   `json:"year"`
	URL                 string   `json:"url"`
	AddedBy             string   `json:"added_by"`
	Status              string   `json:"status"`
	AbstractSubmission  string   `json:"abstract_submission"`
	PaperSubmission     string   `json:"paper_submission"`
	AuthorResponse      string   `json:"author_response"`
	MetaReview          string   `json:"meta_review"`
	Notification        string   `json:"notification"`
	Commitment          string   `json:"commitment"`
	MainConferenceStart string   `json:"main_conference_start"`
	MainConferenceEnd   string   `json:"main_conference_end"`
	Location            string   `json:"location"`
	TimeZone            string   `json:"time_zone"`
	View                []string `json:"view"`
}
