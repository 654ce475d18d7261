package model

import "time"

// Document — документ пользователя. OwnerID неизменяем после создания.
// FilePath указывает на первоначально загруженный файл; актуальное содержимое
// определяется последней версией (см. CurrentFilePath).
type Document struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string

	FilePath string `gorm:"not null"`

	OwnerID int64 `gorm:"not null;index"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CategoryID *int64    `gorm:"index"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	IsPrivate bool `gorm:"not null;default:false"`

	Archived   bool `gorm:"not null;default:false;index"`
	ArchivedAt *time.Time

	// Счётчик версий, стартует с 1 и растёт на 1 при каждой замене содержимого.
	CurrentVersion int64 `gorm:"not null;default:1"`

	UploadedAt time.Time `gorm:"autoCreateTime"`

	// Versions загружаются отсортированными по убыванию номера (новые первыми).
	Versions []Version `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// CurrentFilePath возвращает путь актуального файла: файл последней версии,
// либо исходный файл документа, если версии не загружены или отсутствуют.
func (d *Document) CurrentFilePath() string {
	if len(d.Versions) > 0 {
		return d.Versions[0].FilePath
	}
	return d.FilePath
}

// CategoryName — имя категории либо Uncategorized для документов без категории.
func (d *Document) CategoryName() string {
	if d.Category != nil {
		return d.Category.Name
	}
	return UncategorizedName
}
