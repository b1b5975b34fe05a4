package timezone

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultCanonical is the offset used when configuration does not provide one (IST).
const DefaultCanonical = "UTC+05:30"

var offsetPattern = regexp.MustCompile(`(?i)^UTC([+-])(\d{1,2})(?::(\d{2}))?$`)

// ParseOffset converts a descriptor such as "UTC+5:30" or "utc-12" into minutes east of UTC.
func ParseOffset(descriptor string) (int, bool) {
	match := offsetPattern.FindStringSubmatch(strings.TrimSpace(descriptor))
	if match == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(match[2])
	if err != nil || hours > 14 {
		return 0, false
	}
	minutes := 0
	if match[3] != "" {
		minutes, err = strconv.Atoi(match[3])
		if err != nil || minutes > 59 {
			return 0, false
		}
	}
	total := hours*60 + minutes
	if match[1] == "-" {
		total = -total
	}
	return total, true
}

// FormatOffset renders minutes east of UTC as a "UTC±HH:MM" descriptor.
func FormatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, minutes/60, minutes%60)
}

// Normalizer shifts venue-local instants onto a single canonical offset so they can be compared.
type Normalizer struct {
	canonical int
	label     string
	zone      *time.Location
}

// NewNormalizer builds a normalizer targeting the provided canonical descriptor.
// An invalid descriptor falls back to DefaultCanonical.
func NewNormalizer(canonical, label string) *Normalizer {
	minutes, ok := ParseOffset(canonical)
	if !ok {
		minutes, _ = ParseOffset(DefaultCanonical)
	}
	if label == "" {
		label = FormatOffset(minutes)
	}
	return &Normalizer{
		canonical: minutes,
		label:     label,
		zone:      time.FixedZone(label, minutes*60),
	}
}

// ToComparableInstant shifts t by the difference between the canonical offset and the descriptor's
// offset. A missing or unparsable descriptor leaves t untouched.
func (n *Normalizer) ToComparableInstant(t time.Time, descriptor string) time.Time {
	if t.IsZero() || descriptor == "" {
		return t
	}
	offset, ok := ParseOffset(descriptor)
	if !ok {
		return t
	}
	return t.Add(time.Duration(n.canonical-offset) * time.Minute)
}

// Display formats a normalized date in the canonical zone, e.g. "07 Mar 2025 (IST)".
func (n *Normalizer) Display(t *time.Time, descriptor string) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	adjusted := n.ToComparableInstant(*t, descriptor)
	return fmt.Sprintf("%s (%s)", adjusted.In(n.zone).Format("02 Jan 2006"), n.label)
}
