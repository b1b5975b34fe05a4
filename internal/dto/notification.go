package dto

import (
	"time"

	"github.com/noah-isme/lab-portal-api/pkg/timezone"
)

// NotificationView is a notification row ready for display.
type NotificationView struct {
	ID          string             `json:"id"`
	Text        string             `json:"text"`
	Type        string             `json:"type"`
	TypeLabel   string             `json:"type_label"`
	Priority    string             `json:"priority"`
	DueDate     *time.Time         `json:"due_date"`
	DueStatus   timezone.DueStatus `json:"due_status"`
	Expired     bool               `json:"expired"`
	OwnerID     string             `json:"owner_id,omitempty"`
	AddedByName string             `json:"added_by_name"`
	CanDelete   bool               `json:"can_delete"`
}

// Lookup implements query.Record.
func (v NotificationView) Lookup(field string) (any, bool) {
	switch field {
	case "id", "_id":
		return v.ID, true
	case "text":
		return v.Text, true
	case "type":
		return v.Type, true
	case "type_label":
		return v.TypeLabel, true
	case "priority":
		return v.Priority, true
	case "due_date":
		return v.DueDate, true
	case "due_status":
		return string(v.DueStatus), true
	case "owner_id", "added_by":
		return v.OwnerID, true
	case "added_by_name":
		return v.AddedByName, true
	default:
		return nil, false
	}
}

// NotificationListRequest carries the notification table's search, filters and sort.
type NotificationListRequest struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Priority string `form:"priority"`
	AddedBy  string `form:"addedBy"`
	DueDate  string `form:"dueDate"`
	Sort     string `form:"sort"`
	Order    string `form:"order"`
}

// NotificationListResult is a derived notification view plus the filter choices.
type NotificationListResult struct {
	Items         []NotificationView `json:"items"`
	AddedByFilter []string           `json:"added_by_options"`
	Total         int                `json:"total"`
}
