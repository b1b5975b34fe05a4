package service

import "github.com/noah-isme/lab-portal-api/internal/models"

// The predicates below decide whether an actor may change a record. They are pure:
// a nil record or actor, or an empty reference id, never grants access.

// CanMutateNotification allows the owner of a notification to delete it.
func CanMutateNotification(n *models.Notification, actor *models.Actor) bool {
	if n == nil || !validActor(actor) {
		return false
	}
	return refIs(n.AddedBy, actor.ID)
}

// CanMutateVenue allows the venue owner, or a phd actor listed in the venue's view list.
func CanMutateVenue(v *models.Venue, actor *models.Actor) bool {
	if v == nil || !validActor(actor) {
		return false
	}
	if refIs(v.AddedBy, actor.ID) {
		return true
	}
	return actor.Role == models.RolePhD && listed(v.View, actor.ID)
}

// CanMutateSubmission allows the project's faculty, or a phd actor on the author list.
func CanMutateSubmission(p *models.Project, actor *models.Actor) bool {
	if p == nil || !validActor(actor) {
		return false
	}
	switch actor.Role {
	case models.RoleFaculty:
		return refIs(p.FacultyID, actor.ID)
	case models.RolePhD:
		return refIs(p.LeadAuthor, actor.ID) || listed(p.Team, actor.ID)
	default:
		return false
	}
}

// CanMutateSupervision allows the supervising faculty to edit or end a supervision.
func CanMutateSupervision(s *models.Supervision, actor *models.Actor) bool {
	if s == nil || !validActor(actor) {
		return false
	}
	return actor.Role == models.RoleFaculty && refIs(s.FacultyID, actor.ID)
}

func validActor(actor *models.Actor) bool {
	return actor != nil && actor.ID != ""
}

func refIs(ref *models.Ref, id string) bool {
	owner := models.RefID(ref)
	return owner != "" && owner == id
}

func listed(refs []models.Ref, id string) bool {
	for i := range refs {
		if refs[i].ID != "" && refs[i].ID == id {
			return true
		}
	}
	return false
}
