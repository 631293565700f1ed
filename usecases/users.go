package usecases

import (
	"math"

	"user-service/entities"
	"user-service/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sortColumns whitelists the externally sortable fields and maps them to
// their storage columns. Unknown fields fall back to the default ordering
// instead of erroring.
var sortColumns = map[string]string{
	"createdDateTime": "created_date_time",
	"username":        "username",
	"firstName":       "first_name",
	"lastName":        "last_name",
}

const defaultSortColumn = "created_date_time"

type UserUseCase struct {
	UserRepo repositories.UserRepository
	log      *zap.SugaredLogger
}

func NewUserUseCase(userRepo repositories.UserRepository, log *zap.SugaredLogger) *UserUseCase {
	return &UserUseCase{
		UserRepo: userRepo,
		log:      log,
	}
}

// CreateUser creates a new user. The username existence pre-check turns the
// common duplicate case into a clean domain error; the authoritative guard
// is still the unique constraint, whose violation the repository reports as
// the same ErrUserExists, so a lost create race never leaks a storage fault.
func (uc *UserUseCase) CreateUser(cmd CreateUserCommand) (*UserModel, error) {
	if cmd.Username == "" || cmd.FirstName == "" {
		return nil, entities.ErrInvalidArgument
	}

	exists, err := uc.UserRepo.ExistsByUsername(cmd.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entities.ErrUserExists
	}

	user, err := entities.NewUser(cmd.Username, cmd.FirstName, cmd.LastName)
	if err != nil {
		return nil, err
	}

	uc.log.Infow("creating new user", "username", cmd.Username)
	if err := uc.UserRepo.Create(user); err != nil {
		return nil, err
	}

	model := ToUserModel(user)
	return &model, nil
}

// GetUsersPage returns one page of users plus totals. Read-only.
func (uc *UserUseCase) GetUsersPage(req PageRequest) (*UserPage, error) {
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Size < 1 {
		req.Size = 1
	}
	// Keep page*size from wrapping negative on adversarial values; a
	// negative offset would silently read from the start of the set.
	if maxPage := math.MaxInt / req.Size; req.Page > maxPage {
		req.Page = maxPage
	}

	column, ok := sortColumns[req.SortField]
	if !ok {
		column = defaultSortColumn
		req.Descending = true
	}

	users, total, err := uc.UserRepo.Page(req.Page*req.Size, req.Size, column, req.Descending)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	return &UserPage{
		Content:       ToUserModels(users),
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          req.Page >= totalPages-1,
	}, nil
}

// DeleteUserByUID removes the user with the given public identifier.
// Deleting an absent or already-deleted id fails with ErrUserNotFound,
// consistently on every attempt.
func (uc *UserUseCase) DeleteUserByUID(uid uuid.UUID) error {
	if uid == uuid.Nil {
		return entities.ErrInvalidArgument
	}

	user, err := uc.UserRepo.GetByUID(uid)
	if err != nil {
		return err
	}

	uc.log.Infow("deleting user", "uid", uid.String(), "username", user.Username)
	return uc.UserRepo.Delete(user)
}
