package repo

import (
	"context"

	"DocKeeper/internal/model"

	"gorm.io/gorm"
)

// ShareRepository — контракт доступа к публичным ссылкам.
type ShareRepository interface {
	Create(ctx context.Context, s *model.Share) error
	GetByID(ctx context.Context, id int64) (*model.Share, error)

	// GetByToken ищет ссылку по точному совпадению токена, документ
	// загружается вместе с ней.
	GetByToken(ctx context.Context, token string) (*model.Share, error)

	ListByDocument(ctx context.Context, documentID int64) ([]model.Share, error)

	SetActive(ctx context.Context, id int64, active bool) error

	// Счётчики советующие, не биллинговые: инкремент выражением в БД,
	// без чтения-модификации-записи.
	IncrementView(ctx context.Context, id int64) error
	IncrementDownload(ctx context.Context, id int64) error
}

type shareRepo struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepo{db: db}
}

func (r *shareRepo) Create(ctx context.Context, s *model.Share) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shareRepo) GetByID(ctx context.Context, id int64) (*model.Share, error) {
	var s model.Share
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shareRepo) GetByToken(ctx context.Context, token string) (*model.Share, error) {
	var s model.Share
	err := r.db.WithContext(ctx).
		Preload("Document").
		Where("token = ?", token).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shareRepo) ListByDocument(ctx context.Context, documentID int64) ([]model.Share, error) {
	var shares []model.Share
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *shareRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Share{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *shareRepo) IncrementView(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Share{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *shareRepo) IncrementDownload(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Share{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}
