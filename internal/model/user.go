package model

import "time"

// Роль пользователя в системе. Хранится строкой в профиле.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
	RoleViewer  Role = "viewer"
)

// User — учётная запись пользователя.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// UserProfile — профиль один-к-одному с пользователем, несёт роль.
// Создаётся вместе с пользователем при регистрации, роль по умолчанию member.
type UserProfile struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"uniqueIndex;not null"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Role Role `gorm:"not null;default:member"`
}
