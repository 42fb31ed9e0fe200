package services

import (
	portsrepo "github.com/splitpal/splitpal_backend/internal/core/ports/repositories"
	portssvc "github.com/splitpal/splitpal_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize the group service first since the balance service depends
	// on it for membership checks
	container.Group = NewGroupService(
		repos.GroupRepo,
		repos.ParticipantRepo,
	)

	groupAuthorizer := container.Group.(portssvc.GroupAuthorizerSvc)

	container.Balance = NewBalanceService(
		repos.GroupRepo,
		repos.ParticipantRepo,
		repos.ExpenseRepo,
		repos.UserRepo,
		WithBalanceGroupAuthorizer(groupAuthorizer),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.GroupSvcFacade   = (*groupService)(nil)
	_ portssvc.BalanceSvcFacade = (*balanceService)(nil)
)
