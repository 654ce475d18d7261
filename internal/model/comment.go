package model

import "time"

// Comment — комментарий к документу. Выводятся новые первыми.
type Comment struct {
	ID         int64 `gorm:"primaryKey"`
	DocumentID int64 `gorm:"not null;index"`

	Document *Document `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	AuthorID int64 `gorm:"not null"`
	Author   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Body string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
