package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

var nullJSON = []byte("null")

// Ref is a reference to another backend document. The backend sends it either as a
// bare id string or as an embedded object carrying "_id"; both decode to the same ID.
type Ref struct {
	ID       string
	Name     string
	Email    string
	Embedded bool
}

type refObject struct {
	MongoID string `json:"_id,omitempty"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
}

// UnmarshalJSON accepts a string id, an object, or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, nullJSON) {
		*r = Ref{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	var obj refObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	id := obj.MongoID
	if id == "" {
		id = obj.ID
	}
	*r = Ref{ID: id, Name: obj.Name, Email: obj.Email, Embedded: true}
	return nil
}

// MarshalJSON writes the same shape that was read.
func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.Embedded {
		return json.Marshal(r.ID)
	}
	return json.Marshal(refObject{MongoID: r.ID, Name: r.Name, Email: r.Email})
}

// RefID returns the referenced id or "" for a nil reference.
func RefID(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.ID
}

// Timestamp decodes backend dates leniently: RFC3339, date-only, empty or null.
// Anything unparsable decodes to the zero time instead of failing the whole payload.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseTimestamp parses raw with the accepted layouts; ok is false when none match.
func ParseTimestamp(raw string) (Timestamp, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	return Timestamp{}, false
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Timestamp{}
		return nil
	}
	parsed, _ := ParseTimestamp(raw)
	*t = parsed
	return nil
}

// MarshalJSON writes null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return nullJSON, nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

// Ptr returns nil for the zero time.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// FlexString decodes strings, numbers and Mongo decimal objects ({"$numberDecimal": "1.5"}) as text.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, nullJSON):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case data[0] == '{':
		var dec struct {
			Value string `json:"$numberDecimal"`
		}
		if err := json.Unmarshal(data, &dec); err != nil {
			return err
		}
		*f = FlexString(dec.Value)
	default:
		*f = FlexString(data)
	}
	return nil
}

// String implements fmt.Stringer.
func (f FlexString) String() string {
	return string(f)
}
