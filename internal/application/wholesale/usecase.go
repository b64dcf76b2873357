// Package wholesale is the single consumer of the wholesale status
// machine. Every call site goes through here; the transition table
// itself lives in internal/domain/access.
package wholesale

import (
	"context"

	"github.com/greenhollow/nursery-api/internal/domain"
	"github.com/greenhollow/nursery-api/internal/domain/access"
	"github.com/greenhollow/nursery-api/internal/domain/entity"
	"github.com/greenhollow/nursery-api/internal/domain/repository"
)

// Staff actions on a wholesale account.
const (
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionSuspend    = "suspend"
	ActionReactivate = "reactivate"
	ActionCancel     = "cancel"
)

// actionTargets maps each action to the status it requests. The
// transition table decides whether the current status permits it; a
// mismatch is a user-facing validation error, not a server fault.
var actionTargets = map[string]string{
	ActionApprove:    access.WholesaleApproved,
	ActionReject:     access.WholesaleRejected,
	ActionSuspend:    access.WholesaleSuspended,
	ActionReactivate: access.WholesaleApproved,
	ActionCancel:     access.WholesaleCancelled,
}

// UseCase handles the wholesale-account workflow.
type UseCase struct {
	users repository.UserRepository
}

// New constructs the use case.
func New(users repository.UserRepository) *UseCase {
	return &UseCase{users: users}
}

// Apply submits (or resubmits) a trade-pricing application for the
// account owner. Self-service: no management permission involved, only
// the transition table.
func (uc *UseCase) Apply(ctx context.Context, userID, businessName string) (*entity.User, error) {
	if businessName == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !access.IsValidWholesaleTransition(user.WholesaleStatus, access.WholesaleApplicationPending) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.users.UpdateWholesale(user.ID, access.WholesaleApplicationPending, user.Role, businessName); err != nil {
		return nil, err
	}
	user.WholesaleStatus = access.WholesaleApplicationPending
	user.BusinessName = businessName
	return user, nil
}

// Act applies a staff action (approve, reject, suspend, reactivate,
// cancel) to the target account. The caller's role must hold the
// wholesale-management permission and the transition must be in the
// table; approval promotes the account to wholesale_customer, while
// suspension and cancellation demote it back to customer.
func (uc *UseCase) Act(ctx context.Context, callerRole, targetUserID, action string) (*entity.User, error) {
	target, ok := actionTargets[action]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(targetUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if !access.HasPermission(callerRole, access.PermManageWholesale) {
		return nil, domain.ErrForbidden
	}
	if !access.CanTransitionWholesaleStatus(callerRole, user.WholesaleStatus, target) {
		return nil, domain.ErrInvalidTransition
	}

	role := user.Role
	switch target {
	case access.WholesaleApproved:
		role = access.RoleWholesaleCustomer
	case access.WholesaleSuspended, access.WholesaleCancelled:
		if user.Role == access.RoleWholesaleCustomer {
			role = access.RoleCustomer
		}
	}

	if err := uc.users.UpdateWholesale(user.ID, target, role, user.BusinessName); err != nil {
		return nil, err
	}
	user.WholesaleStatus = target
	user.Role = role
	return user, nil
}
