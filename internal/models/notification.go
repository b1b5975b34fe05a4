package models

// NotificationType is the kind of a notification as stored by the backend.
type NotificationType string

const (
	NotificationTypeTodo         NotificationType = "todo"
	NotificationTypeReminder     NotificationType = "reminder"
	NotificationTypeDeadline     NotificationType = "deadline"
	NotificationTypeAnnouncement NotificationType = "announcement"
)

// NotificationPriority is the urgency shown next to a notification.
type NotificationPriority string

const (
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityLow    NotificationPriority = "low"
)

// Notification is a backend notification document.
type Notification struct {
	ID       string               `json:"_id"`
	Text     string               `json:"text"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`
	DueDate  Timestamp            `json:"due_date"`
	AddedBy  *Ref                 `json:"added_by"`
}

// NotificationList is the envelope returned by GET /notifications/{userId}.
type NotificationList struct {
	Notification []Notification `json:"notification"`
}
