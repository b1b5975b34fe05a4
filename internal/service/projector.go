package service

import (
	"time"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/pkg/timezone"
)

const (
	labelYou     = "You"
	labelUnknown = "Unknown"
	labelSystem  = "System"
)

var notificationTypeLabels = map[models.NotificationType]string{
	models.NotificationTypeTodo:         "Task",
	models.NotificationTypeReminder:     "Reminder",
	models.NotificationTypeDeadline:     "Deadline",
	models.NotificationTypeAnnouncement: "Announcement",
}

// NotificationTypeLabel maps a notification type to its display label.
func NotificationTypeLabel(t models.NotificationType) string {
	if label, ok := notificationTypeLabels[t]; ok {
		return label
	}
	return "Message"
}

// AddedByName resolves the display name of a record owner as seen by actor.
func AddedByName(owner *models.Ref, actor *models.Actor) string {
	if owner == nil || owner.ID == "" && owner.Name == "" {
		return labelSystem
	}
	if actor != nil && actor.ID != "" && owner.ID == actor.ID {
		return labelYou
	}
	if owner.Name != "" {
		return owner.Name
	}
	return labelUnknown
}

// Projector maps backend documents into view records. It holds no state besides the
// canonical timezone and the clock used for due-date flags.
type Projector struct {
	tz  *timezone.Normalizer
	now func() time.Time
}

// NewProjector constructs a Projector. A nil normalizer uses the default canonical offset.
func NewProjector(tz *timezone.Normalizer, now func() time.Time) *Projector {
	if tz == nil {
		tz = timezone.NewNormalizer("", "")
	}
	if now == nil {
		now = time.Now
	}
	return &Projector{tz: tz, now: now}
}

// ProjectNotification builds the notification row shown to actor.
func (p *Projector) ProjectNotification(n models.Notification, actor *models.Actor) dto.NotificationView {
	due := n.DueDate.Ptr()
	status := timezone.ClassifyDueDate(due, p.now())
	return dto.NotificationView{
		ID:          n.ID,
		Text:        n.Text,
		Type:        string(n.Type),
		TypeLabel:   NotificationTypeLabel(n.Type),
		Priority:    string(n.Priority),
		DueDate:     due,
		DueStatus:   status,
		Expired:     status == timezone.DueExpired,
		OwnerID:     models.RefID(n.AddedBy),
		AddedByName: AddedByName(n.AddedBy, actor),
		CanDelete:   CanMutateNotification(&n, actor),
	}
}

// ProjectSubmission builds the submission row shown to actor.
func (p *Projector) ProjectSubmission(project models.Project, actor *models.Actor) dto.SubmissionView {
	team := make([]dto.PersonView, 0, len(project.Team))
	for _, member := range project.Team {
		team = append(team, personOf(member))
	}
	var lead *dto.PersonView
	if project.LeadAuthor != nil {
		person := personOf(*project.LeadAuthor)
		lead = &person
	}
	return dto.SubmissionView{
		ID:               project.ID,
		Name:             project.Name,
		LeadAuthor:       lead,
		Team:             team,
		FacultyID:        models.RefID(project.FacultyID),
		Venue:            project.Venue,
		Status:           project.Status,
		DateOfSubmission: project.DateOfSubmission.Ptr(),
		NextDeadline:     project.NextDeadline.Ptr(),
		Remarks:          project.Remarks,
		PaperURL:         project.PaperURL,
		SubmissionURL:    project.SubmissionURL,
		CanEditVenue:     CanMutateSubmission(&project, actor),
	}
}

// ProjectVenue builds the venue row shown to actor with every deadline shifted into
// the canonical zone.
func (p *Projector) ProjectVenue(v models.Venue, actor *models.Actor) dto.VenueView {
	view := make([]string, 0, len(v.View))
	for _, ref := range v.View {
		if ref.ID != "" {
			view = append(view, ref.ID)
		}
	}

	out := dto.VenueView{
		ID:          v.ID,
		Venue:       v.Venue,
		Year:        v.Year.String(),
		URL:         v.URL,
		Status:      v.Status,
		Location:    v.Location,
		TimeZone:    v.TimeZone,
		OwnerID:     models.RefID(v.AddedBy),
		AddedByName: AddedByName(v.AddedBy, actor),
		View:        view,
		CanEdit:     CanMutateVenue(&v, actor),
	}

	deadlines := []struct {
		field string
		src   models.Timestamp
		dst   **time.Time
	}{
		{"abstract_submission", v.AbstractSubmission, &out.AbstractSubmission},
		{"paper_submission", v.PaperSubmission, &out.PaperSubmission},
		{"author_response", v.AuthorResponse, &out.AuthorResponse},
		{"meta_review", v.MetaReview, &out.MetaReview},
		{"notification", v.Notification, &out.Notification},
		{"commitment", v.Commitment, &out.Commitment},
		{"main_conference_start", v.MainConferenceStart, &out.MainConferenceStart},
		{"main_conference_end", v.MainConferenceEnd, &out.MainConferenceEnd},
	}
	out.DisplayDates = make(map[string]string, len(deadlines))
	for _, d := range deadlines {
		raw := d.src.Ptr()
		out.DisplayDates[d.field] = p.tz.Display(raw, v.TimeZone)
		if raw != nil {
			normalized := p.tz.ToComparableInstant(*raw, v.TimeZone)
			*d.dst = &normalized
		}
	}
	return out
}

// ProjectSupervision builds the supervised-student row shown to actor.
func (p *Projector) ProjectSupervision(s models.Supervision, actor *models.Actor) dto.SupervisionView {
	committee := make([]dto.PersonView, 0, len(s.Committee))
	for _, member := range s.Committee {
		committee = append(committee, personOf(member))
	}
	var student *dto.PersonView
	if s.StudentID != nil {
		person := personOf(*s.StudentID)
		student = &person
	}
	return dto.SupervisionView{
		ID:            s.ID,
		FacultyID:     models.RefID(s.FacultyID),
		Student:       student,
		Joining:       s.Joining.Ptr(),
		ThesisTitle:   s.ThesisTitle,
		Committee:     committee,
		Stipend:       s.Stipend.String(),
		FundingSource: s.FundingSource,
		SRPID:         models.RefID(s.SRPID),
		CanEdit:       CanMutateSupervision(&s, actor),
	}
}

// ProjectFaculty converts a faculty directory row.
func ProjectFaculty(f models.FacultyMember) dto.FacultyView {
	return dto.FacultyView{ID: f.ID, Name: f.Name, Email: f.Email, Department: f.Department}
}

func personOf(ref models.Ref) dto.PersonView {
	return dto.PersonView{ID: ref.ID, Name: ref.Name, Email: ref.Email}
}
