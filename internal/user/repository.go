package user

import (
	"context"
	"errors"

	"github.com/thesrcielos/RobotArena/internal/apperrors"
	"gorm.io/gorm"
)

const userTable = "user"

type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CreateUser(ctx context.Context, u *User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewAppError(400, "user already exists", err)
		}
		return apperrors.NewStorageError(userTable, "CreateUser", err)
	}
	return nil
}

func (r *GormUserRepository) GetUser(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, storageError("GetUser", err)
	}
	return &u, nil
}

func (r *GormUserRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, storageError("GetUserByUsername", err)
	}
	return &u, nil
}

func storageError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = apperrors.ErrNotFound
	}
	return apperrors.NewStorageError(userTable, operation, err)
}
