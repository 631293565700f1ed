package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxUsernameLength bounds the username column.
	MaxUsernameLength = 50
	// MinUsernameLength is the shortest accepted username.
	MinUsernameLength = 5
	// MaxNameLength bounds first and last name columns.
	MaxNameLength = 30
)

// User is the persisted user record. ID is the storage-assigned surrogate
// key and never leaves the process; UID is the public identifier used in
// every external reference.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	UID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uid"`
	Username        string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FirstName       string    `gorm:"size:30;not null" json:"first_name"`
	LastName        *string   `gorm:"size:30" json:"last_name,omitempty"`
	CreatedDateTime time.Time `gorm:"not null" json:"created_date_time"`
}

// NewUser builds a user ready for persistence: the public identifier is
// assigned here, before any storage attempt, and the creation timestamp is
// stamped exactly once. A blank lastName is stored as absent, not as an
// empty string. At least one of username/firstName must be non-blank.
func NewUser(username, firstName, lastName string) (*User, error) {
	if strings.TrimSpace(username) == "" && strings.TrimSpace(firstName) == "" {
		return nil, ErrInvalidArgument
	}

	user := &User{
		UID:             uuid.New(),
		Username:        username,
		FirstName:       firstName,
		CreatedDateTime: time.Now().UTC(),
	}
	if trimmed := strings.TrimSpace(lastName); trimmed != "" {
		user.LastName = &lastName
	}
	return user, nil
}

// Equal reports whether two users refer to the same record. Identity is
// carried by the public identifier alone; the surrogate key plays no role.
func (u *User) Equal(other *User) bool {
	if other == nil {
		return false
	}
	return u.UID == other.UID
}
