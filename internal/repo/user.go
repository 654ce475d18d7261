package repo

import (
	"context"
	"errors"

	"DocKeeper/internal/model"

	"gorm.io/gorm"
)

// UserRepository — минимальный контракт доступа к пользователям и их ролям.
type UserRepository interface {
	// CreateUser создаёт пользователя вместе с профилем (роль member).
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)

	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	// GetRole возвращает роль пользователя. Если профиля нет — пустую роль
	// (трактуется выше как member-эквивалент).
	GetRole(ctx context.Context, userID int64) (model.Role, error)

	SetRole(ctx context.Context, userID int64, role model.Role) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserProfile{UserID: user.ID, Role: model.RoleMember}).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetRole(ctx context.Context, userID int64) (model.Role, error) {
	var p model.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.Role, nil
}

func (r *userRepo) SetRole(ctx context.Context, userID int64, role model.Role) error {
	return r.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("role", role).Error
}
