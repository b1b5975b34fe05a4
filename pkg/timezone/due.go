package timezone

import (
	"strings"
	"time"
)

// DueStatus classifies a due date against the current instant.
type DueStatus string

const (
	DueOnTime  DueStatus = "ON_TIME"
	DueExpired DueStatus = "EXPIRED"
	DueNoDate  DueStatus = "NO_DATE"
)

// Bucket names a due-date window a caller can filter on.
type Bucket string

const (
	BucketWithin10Days Bucket = "WITHIN_10D"
	BucketWithin20Days Bucket = "WITHIN_20D"
	BucketExpired      Bucket = "EXPIRED"
	BucketNone         Bucket = "NONE"
)

const day = 24 * time.Hour

// ClassifyDueDate reports whether due is missing, already past, or still ahead.
func ClassifyDueDate(due *time.Time, now time.Time) DueStatus {
	if due == nil || due.IsZero() {
		return DueNoDate
	}
	if due.Before(now) {
		return DueExpired
	}
	return DueOnTime
}

// BucketDueDate tests due against the requested bucket only and returns that bucket on a match,
// BucketNone otherwise. The 10 and 20 day windows both start at now, so a date three days out
// matches either request.
func BucketDueDate(due *time.Time, now time.Time, requested Bucket) Bucket {
	if due == nil || due.IsZero() {
		return BucketNone
	}
	var ok bool
	switch requested {
	case BucketWithin10Days:
		ok = within(*due, now, 10*day)
	case BucketWithin20Days:
		ok = within(*due, now, 20*day)
	case BucketExpired:
		ok = due.Before(now)
	}
	if !ok {
		return BucketNone
	}
	return requested
}

func within(due, now time.Time, window time.Duration) bool {
	return !due.Before(now) && !due.After(now.Add(window))
}

// ParseBucket accepts canonical bucket names and the portal's filter values.
func ParseBucket(raw string) (Bucket, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "next10days", "within_10d":
		return BucketWithin10Days, true
	case "next20days", "within_20d":
		return BucketWithin20Days, true
	case "expired":
		return BucketExpired, true
	default:
		return BucketNone, false
	}
}
