package model

import "time"

// Version — неизменяемый снимок содержимого документа. Никогда не
// редактируется и не перенумеровывается после создания.
type Version struct {
	ID         int64 `gorm:"primaryKey"`
	DocumentID int64 `gorm:"not null;index"`

	FilePath      string `gorm:"not null"`
	VersionNumber int64  `gorm:"not null"`

	CreatedByID int64 `gorm:"not null"`
	CreatedBy   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Comment string

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
