package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/lab-portal-api/internal/models"
)

func TestCanMutateNotificationOwnerRepresentations(t *testing.T) {
	actor := &models.Actor{ID: "u1", Role: models.RolePhD}

	assert.True(t, CanMutateNotification(&models.Notification{AddedBy: bare("u1")}, actor))
	assert.True(t, CanMutateNotification(&models.Notification{AddedBy: embedded("u1", "Asha")}, actor))
	assert.False(t, CanMutateNotification(&models.Notification{AddedBy: embedded("u2", "Ravi")}, actor))
	assert.False(t, CanMutateNotification(&models.Notification{}, actor))
}

func TestCanMutateNilInputs(t *testing.T) {
	assert.False(t, CanMutateNotification(nil, phd))
	assert.False(t, CanMutateNotification(&models.Notification{AddedBy: bare("p1")}, nil))
	assert.False(t, CanMutateNotification(&models.Notification{AddedBy: bare("")}, &models.Actor{}))
	assert.False(t, CanMutateVenue(nil, phd))
	assert.False(t, CanMutateSubmission(nil, faculty))
	assert.False(t, CanMutateSupervision(nil, faculty))
	assert.False(t, CanMutateSupervision(&models.Supervision{FacultyID: bare("f1")}, nil))
}

func TestCanMutateVenue(t *testing.T) {
	venue := &models.Venue{AddedBy: embedded("f1", "Dr. Rao"), View: []models.Ref{{ID: "p1"}, {ID: "s1"}}}

	assert.True(t, CanMutateVenue(venue, faculty), "owner")
	assert.True(t, CanMutateVenue(venue, phd), "phd listed in view")
	assert.False(t, CanMutateVenue(venue, student), "students in view cannot edit")
	assert.False(t, CanMutateVenue(venue, &models.Actor{ID: "p9", Role: models.RolePhD}))
}

func TestCanMutateSubmission(t *testing.T) {
	project := &models.Project{
		FacultyID:  bare("f1"),
		LeadAuthor: embedded("p1", "Asha"),
		Team:       []models.Ref{{ID: "p2"}},
	}

	assert.True(t, CanMutateSubmission(project, faculty))
	assert.True(t, CanMutateSubmission(project, phd))
	assert.True(t, CanMutateSubmission(project, &models.Actor{ID: "p2", Role: models.RolePhD}))
	assert.False(t, CanMutateSubmission(project, &models.Actor{ID: "f2", Role: models.RoleFaculty}))
	assert.False(t, CanMutateSubmission(project, &models.Actor{ID: "p1", Role: models.RoleStudent}))
	assert.False(t, CanMutateSubmission(project, &models.Actor{ID: "f1", Role: models.RolePhD}))
}

func TestCanMutateSupervision(t *testing.T) {
	record := &models.Supervision{FacultyID: embedded("f1", "Dr. Rao"), StudentID: bare("s1")}

	assert.True(t, CanMutateSupervision(record, faculty))
	assert.False(t, CanMutateSupervision(record, &models.Actor{ID: "s1", Role: models.RoleStudent}))
	assert.False(t, CanMutateSupervision(record, &models.Actor{ID: "f1", Role: models.RolePhD}))
}

func TestPermissionIsPure(t *testing.T) {
	venue := &models.Venue{AddedBy: bare("f1"), View: []models.Ref{{ID: "p1"}}}
	first := CanMutateVenue(venue, phd)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CanMutateVenue(venue, phd))
	}
}
