package repo

import (
	"context"
	"time"

	"DocKeeper/internal/model"

	"gorm.io/gorm"
)

// ListFilter — параметры выборки документов для дашборда.
type ListFilter struct {
	// ViewerID — документы этого пользователя плюс все публичные.
	ViewerID int64

	// Query — подстрочный поиск по заголовку и описанию.
	Query string

	// CategoryName — фильтр по имени категории.
	CategoryName string
}

// DocumentRepository — контракт доступа к документам и их версиям.
type DocumentRepository interface {
	// CreateWithVersion атомарно создаёт документ и его первую версию.
	CreateWithVersion(ctx context.Context, doc *model.Document, ver *model.Version) error

	// GetByID загружает документ с категорией и версиями (новые первыми).
	GetByID(ctx context.Context, id int64) (*model.Document, error)

	// UpdateMeta обновляет только метаданные документа.
	UpdateMeta(ctx context.Context, id int64, updates map[string]any) error

	// AddVersion атомарно вставляет версию и поднимает счётчик документа
	// ровно до номера этой версии.
	AddVersion(ctx context.Context, ver *model.Version) error

	SetArchived(ctx context.Context, id int64, archived bool, at *time.Time) error

	// Delete удаляет документ; версии, ссылки и комментарии уходят каскадом.
	Delete(ctx context.Context, id int64) error

	// List — нефильтрованные по архиву не возвращаются: только активные
	// документы, видимые пользователю (его собственные + публичные).
	List(ctx context.Context, f ListFilter) ([]model.Document, error)

	ListArchived(ctx context.Context, ownerID int64) ([]model.Document, error)

	// ListActive возвращает все неархивные документы с категориями и
	// версиями — сырьё для аналитики.
	ListActive(ctx context.Context) ([]model.Document, error)
}

type documentRepo struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) CreateWithVersion(ctx context.Context, doc *model.Document, ver *model.Version) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		ver.DocumentID = doc.ID
		return tx.Create(ver).Error
	})
}

func (r *documentRepo) GetByID(ctx context.Context, id int64) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version_number DESC")
		}).
		First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) UpdateMeta(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *documentRepo) AddVersion(ctx context.Context, ver *model.Version) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ver).Error; err != nil {
			return err
		}
		return tx.Model(&model.Document{}).
			Where("id = ?", ver.DocumentID).
			Update("current_version", ver.VersionNumber).Error
	})
}

func (r *documentRepo) SetArchived(ctx context.Context, id int64, archived bool, at *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", id).
		Updates(map[string]any{"archived": archived, "archived_at": at}).Error
}

func (r *documentRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&model.Version{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&model.Share{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Document{}, id).Error
	})
}

func (r *documentRepo) List(ctx context.Context, f ListFilter) ([]model.Document, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("archived = ?", false).
		Where("owner_id = ? OR is_private = ?", f.ViewerID, false)

	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if f.CategoryName != "" {
		q = q.Joins("JOIN categories ON categories.id = documents.category_id").
			Where("categories.name = ?", f.CategoryName)
	}

	var docs []model.Document
	if err := q.Order("uploaded_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) ListArchived(ctx context.Context, ownerID int64) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("archived = ? AND owner_id = ?", true, ownerID).
		Order("archived_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) ListActive(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version_number DESC")
		}).
		Where("archived = ?", false).
		Order("uploaded_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
