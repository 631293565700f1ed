package repositories

import (
	"errors"
	"fmt"

	"user-service/db"
	"user-service/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("exists by username: %w", err)
	}
	return count > 0, nil
}

func (r *userPgRepository) GetByUID(uid uuid.UUID) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("uid = ?", uid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get by uid: %w", err)
	}
	return &user, nil
}

// Create inserts the record in its own transaction. A unique-constraint
// violation on username (two concurrent creates racing past the pre-check)
// comes back as ErrUserExists, not as a raw storage fault.
func (r *userPgRepository) Create(user *entities.User) error {
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userPgRepository) Delete(user *entities.User) error {
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(user)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *userPgRepository) Page(offset, limit int, sortColumn string, descending bool) ([]entities.User, int64, error) {
	var total int64
	if err := r.db.GetDB().Model(&entities.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var users []entities.User
	err := r.db.GetDB().
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn}, Desc: descending}).
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("page users: %w", err)
	}
	return users, total, nil
}
