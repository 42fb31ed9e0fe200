package mapping

import (
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	"github.com/splitpal/splitpal_backend/internal/models"
)

// ToDomainGroup converts a model Group to a domain Group
func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:     m.GroupID,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelGroup converts a domain Group to a model Group
func ToModelGroup(d domain.Group) models.Group {
	return models.Group{
		GroupID:     d.GroupID,
		Name:        d.Name,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGroupSlice converts a slice of model Groups to domain Groups
func ToDomainGroupSlice(ms []models.Group) []domain.Group {
	ds := make([]domain.Group, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGroup(m)
	}
	return ds
}

// ToDomainGroupMembership converts a model GroupMembership to a domain GroupMembership
func ToDomainGroupMembership(m models.GroupMembership) domain.GroupMembership {
	return domain.GroupMembership{
		UserID:   m.UserID,
		GroupID:  m.GroupID,
		Role:     domain.GroupRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
