package query

import (
	"time"

	"github.com/noah-isme/lab-portal-api/pkg/timezone"
)

// Matcher decides whether a resolved field value satisfies a filter.
type Matcher interface {
	Match(value any) bool
}

// FilterSpec maps a field path to its active matcher. Nil matchers are ignored.
type FilterSpec map[string]Matcher

// Set registers m under field when m is non-nil, so inactive filters never enter the spec.
func (f FilterSpec) Set(field string, m Matcher) FilterSpec {
	if m != nil {
		f[field] = m
	}
	return f
}

type exactMatcher struct {
	want string
}

// Exact matches values equal to want, case-sensitive. An empty want returns nil.
func Exact(want string) Matcher {
	if want == "" {
		return nil
	}
	return exactMatcher{want: want}
}

func (m exactMatcher) Match(value any) bool {
	s := scalarOf(value)
	if s.isNull() {
		return false
	}
	return s.text() == m.want
}

type containsMatcher struct {
	needle string
}

// Contains matches values containing needle, case-insensitive. An empty needle returns nil.
func Contains(needle string) Matcher {
	if needle == "" {
		return nil
	}
	return containsMatcher{needle: needle}
}

func (m containsMatcher) Match(value any) bool {
	return containsFold(scalarOf(value).text(), m.needle)
}

type dueMatcher struct {
	bucket timezone.Bucket
	now    time.Time
}

// DueWithin matches date values falling in bucket relative to now.
// BucketNone returns nil.
func DueWithin(bucket timezone.Bucket, now time.Time) Matcher {
	if bucket == "" || bucket == timezone.BucketNone {
		return nil
	}
	return dueMatcher{bucket: bucket, now: now}
}

func (m dueMatcher) Match(value any) bool {
	s := scalarOf(value)
	if s.kind != kindTime {
		return false
	}
	return timezone.BucketDueDate(&s.at, m.now, m.bucket) == m.bucket
}
