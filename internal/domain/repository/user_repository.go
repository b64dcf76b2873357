package repository

import "github.com/greenhollow/nursery-api/internal/domain/entity"

// UserRepository is the persistence port for accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// UpdateWholesale persists a wholesale status change together with the
	// role it implies (approval promotes, suspension/cancellation demotes).
	UpdateWholesale(userID, status, role, businessName string) error
}
