package mapping

import (
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	"github.com/splitpal/splitpal_backend/internal/models"
)

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		Email:       m.Email,
		FullName:    m.FullName,
		AvatarURL:   m.AvatarURL,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
