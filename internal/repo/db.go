package repo

import (
	"fmt"
	"strings"

	"DocKeeper/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormsqlite "gorm.io/driver/sqlite"
	_ "modernc.org/sqlite"
)

// InitDB открывает соединение с БД, прогоняет миграции и засевает
// служебные данные. Postgres выбирается по схеме DSN, иначе —
// SQLite (чистый Go-драйвер modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate прогоняет автомиграции всех моделей и засевает категорию-корзину
// Uncategorized (один раз, при старте — без get-or-create в запросах).
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Category{},
		&model.Document{},
		&model.Version{},
		&model.Share{},
		&model.Comment{},
		&model.Notification{},
	)
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	sentinel := model.Category{Name: model.UncategorizedName, Description: "Documents without a category"}
	if err := db.Where("name = ?", model.UncategorizedName).FirstOrCreate(&sentinel).Error; err != nil {
		return fmt.Errorf("seed uncategorized: %w", err)
	}
	return nil
}
