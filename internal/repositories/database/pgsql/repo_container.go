package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/splitpal/splitpal_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	groupRepo := newPgxGroupRepository(dbPool)
	participantRepo := newPgxParticipantRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		GroupRepo:       groupRepo,
		ParticipantRepo: participantRepo,
		ExpenseRepo:     expenseRepo,
		UserRepo:        userRepo,
	}
}
