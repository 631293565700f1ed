package usecases

import (
	"time"

	"user-service/entities"

	"github.com/google/uuid"
)

// CreateUserCommand is the validated input of the create use case.
type CreateUserCommand struct {
	Username  string
	FirstName string
	LastName  string
}

// UserModel is the API-facing representation of a user. The storage
// surrogate key is deliberately not part of it.
type UserModel struct {
	UID             uuid.UUID `json:"uid"`
	Username        string    `json:"username"`
	FirstName       string    `json:"firstName"`
	LastName        *string   `json:"lastName,omitempty"`
	CreatedDateTime time.Time `json:"createdDateTime"`
}

// UserPage is a bounded, ordered slice of users plus totals.
type UserPage struct {
	Content       []UserModel `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
	First         bool        `json:"first"`
	Last          bool        `json:"last"`
}

// PageRequest carries caller-controlled paging and ordering. Defaults are
// the HTTP layer's concern; by the time a request reaches the use case all
// fields are populated.
type PageRequest struct {
	Page       int
	Size       int
	SortField  string
	Descending bool
}

// ToUserModel maps a persisted user to its external representation.
func ToUserModel(user *entities.User) UserModel {
	return UserModel{
		UID:             user.UID,
		Username:        user.Username,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		CreatedDateTime: user.CreatedDateTime,
	}
}

// ToUserModels maps a slice of users, always returning a non-nil slice so
// empty pages serialize as [] rather than null.
func ToUserModels(users []entities.User) []UserModel {
	models := make([]UserModel, 0, len(users))
	for i := range users {
		models = append(models, ToUserModel(&users[i]))
	}
	return models
}
