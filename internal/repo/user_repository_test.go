package repo

import (
	"context"
	"testing"

	"DocKeeper/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	// успешное создание
	u, err := r.CreateUser(ctx, &model.User{Login: "john", Password: "hash"})
	assert.NoError(t, err)
	assert.NotZero(t, u.ID)

	// поиск по логину — найдено
	got, err := r.GetUserByLogin(ctx, "john")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// уникальный логин — вторая вставка должна дать ошибку
	_, err = r.CreateUser(ctx, &model.User{Login: "john", Password: "x"})
	assert.Error(t, err)

	// поиск несуществующего — ожидаем gorm.ErrRecordNotFound
	got, err = r.GetUserByLogin(ctx, "doesnotexist")
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestUserRepository_ProfileAndRole(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	u, err := r.CreateUser(ctx, &model.User{Login: "alice", Password: "hash"})
	assert.NoError(t, err)

	// профиль создаётся вместе с пользователем, роль по умолчанию member
	role, err := r.GetRole(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleMember, role)

	// смена роли
	assert.NoError(t, r.SetRole(ctx, u.ID, model.RoleManager))
	role, err = r.GetRole(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleManager, role)

	// нет профиля — пустая роль без ошибки
	role, err = r.GetRole(ctx, 99999)
	assert.NoError(t, err)
	assert.Equal(t, model.Role(""), role)
}
