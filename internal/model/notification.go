package model

import "time"

// Тип уведомления.
type NotificationType string

const (
	NotifyUpload  NotificationType = "upload"
	NotifyUpdate  NotificationType = "update"
	NotifyShare   NotificationType = "share"
	NotifyComment NotificationType = "comment"
)

// Notification — уведомление пользователя. Создаётся только как побочный
// эффект других операций, напрямую пользователями не создаётся.
type Notification struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"`

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	DocumentID *int64

	Type    NotificationType `gorm:"not null"`
	Message string           `gorm:"not null"`

	IsRead bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
