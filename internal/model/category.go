package model

// UncategorizedName — имя категории-«корзины», в которую переезжают документы
// при удалении их категории. Засевается один раз при инициализации БД.
const UncategorizedName = "Uncategorized"

// Category — категория документов.
type Category struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
}
