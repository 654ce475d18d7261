package model

import "time"

// Share — публичная ссылка на документ. Токен — случайный UUIDv4,
// статистически уникальный и неугадываемый. Отзыв через Active=false,
// запись никогда не удаляется (след для аудита).
type Share struct {
	ID         int64 `gorm:"primaryKey"`
	DocumentID int64 `gorm:"not null;index"`

	Document *Document `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Token string `gorm:"uniqueIndex;not null"`

	CreatedByID int64 `gorm:"not null"`

	ExpiresAt *time.Time
	Active    bool `gorm:"not null;default:true"`

	ViewCount     int64 `gorm:"not null;default:0"`
	DownloadCount int64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ValidAt сообщает, действительна ли ссылка в момент now:
// активна и либо бессрочна, либо срок ещё не истёк.
func (s *Share) ValidAt(now time.Time) bool {
	if !s.Active {
		return false
	}
	return s.ExpiresAt == nil || now.Before(*s.ExpiresAt)
}
