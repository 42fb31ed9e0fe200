package mapping

import (
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	"github.com/splitpal/splitpal_backend/internal/models"
)

// ToDomainParticipant converts a model Participant to a domain Participant
func ToDomainParticipant(m models.Participant) domain.Participant {
	return domain.Participant{
		ParticipantID: m.ParticipantID,
		GroupID:       m.GroupID,
		UserID:        m.UserID,
		Email:         m.Email,
		FullName:      m.FullName,
		Status:        domain.ParticipantStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelParticipant converts a domain Participant to a model Participant
func ToModelParticipant(d domain.Participant) models.Participant {
	return models.Participant{
		ParticipantID: d.ParticipantID,
		GroupID:       d.GroupID,
		UserID:        d.UserID,
		Email:         d.Email,
		FullName:      d.FullName,
		Status:        models.ParticipantStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParticipantSlice converts a slice of model Participants to domain Participants
func ToDomainParticipantSlice(ms []models.Participant) []domain.Participant {
	ds := make([]domain.Participant, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainParticipant(m)
	}
	return ds
}
