package repositories

import (
	"user-service/entities"

	"github.com/google/uuid"
)

// UserRepository is the storage contract for user records. Page returns an
// ordered slice plus the total matching count in one call so callers can
// build a paged response without a second round trip.
type UserRepository interface {
	ExistsByUsername(username string) (bool, error)
	GetByUID(uid uuid.UUID) (*entities.User, error)
	Create(user *entities.User) error
	Delete(user *entities.User) error
	Page(offset, limit int, sortColumn string, descending bool) ([]entities.User, int64, error)
}
