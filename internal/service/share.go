package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShareService — выпуск, проверка и отзыв публичных ссылок на документы.
// Любая невалидная ссылка отвечает одинаково (ErrShareInvalid), причина
// наружу не раскрывается.
type ShareService struct {
	shares repo.ShareRepository
	docs   repo.DocumentRepository
	notifs repo.NotificationRepository
	files  storage.Store
	logger *zap.SugaredLogger

	// now переопределяется в тестах для проверки истечения срока.
	now func() time.Time
}

func NewShareService(
	shares repo.ShareRepository,
	docs repo.DocumentRepository,
	notifs repo.NotificationRepository,
	files storage.Store,
	logger *zap.SugaredLogger,
) *ShareService {
	return &ShareService{
		shares: shares,
		docs:   docs,
		notifs: notifs,
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// Create выпускает ссылку на документ. Только владелец. Срок —
// now + expiryDays суток; неположительное значение — ссылка бессрочная.
func (s *ShareService) Create(ctx context.Context, actorID, documentID int64, expiryDays int) (*model.Share, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.OwnerID != actorID {
		return nil, ErrForbidden
	}

	share := &model.Share{
		DocumentID:  doc.ID,
		Token:       uuid.NewString(),
		CreatedByID: actorID,
		Active:      true,
	}
	if expiryDays > 0 {
		exp := s.now().UTC().AddDate(0, 0, expiryDays)
		share.ExpiresAt = &exp
	}

	if err := s.shares.Create(ctx, share); err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}

	// самоуведомление — фиксация факта шаринга
	n := &model.Notification{
		UserID:     actorID,
		DocumentID: &doc.ID,
		Type:       model.NotifyShare,
		Message:    fmt.Sprintf("Share link created for %q", doc.Title),
	}
	if err := s.notifs.Create(ctx, n); err != nil {
		s.logger.Warnw("create share notification", "error", err)
	}

	s.logger.Infow("share created", "document_id", doc.ID, "share_id", share.ID)
	return share, nil
}

// GetValid возвращает ссылку и её документ, только если ссылка активна,
// не истекла и документ не в архиве. Все прочие случаи — ErrShareInvalid.
func (s *ShareService) GetValid(ctx context.Context, token string) (*model.Share, *model.Document, error) {
	share, err := s.shares.GetByToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrShareInvalid
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get share: %w", err)
	}
	if !share.ValidAt(s.now().UTC()) {
		return nil, nil, ErrShareInvalid
	}

	doc, err := s.docs.GetByID(ctx, share.DocumentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrShareInvalid
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get shared document: %w", err)
	}
	if doc.Archived {
		return nil, nil, ErrShareInvalid
	}
	return share, doc, nil
}

// View — показ расшаренного документа; каждый рендер поднимает view_count.
func (s *ShareService) View(ctx context.Context, token string) (*model.Share, *model.Document, error) {
	share, doc, err := s.GetValid(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if err := s.shares.IncrementView(ctx, share.ID); err != nil {
		s.logger.Warnw("increment view count", "share_id", share.ID, "error", err)
	} else {
		// ответ отражает уже учтённый просмотр
		share.ViewCount++
	}
	return share, doc, nil
}

// Download отдаёт байты актуального файла и имя вложения,
// поднимая download_count.
func (s *ShareService) Download(ctx context.Context, token string) (string, io.ReadCloser, error) {
	share, doc, err := s.GetValid(ctx, token)
	if err != nil {
		return "", nil, err
	}

	path := doc.CurrentFilePath()
	rc, err := s.files.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open shared file: %w", err)
	}
	if err := s.shares.IncrementDownload(ctx, share.ID); err != nil {
		s.logger.Warnw("increment download count", "share_id", share.ID, "error", err)
	}
	return filepath.Base(path), rc, nil
}

// Revoke гасит ссылку флагом Active=false. Токен и счётчики остаются
// (след для аудита). Только владелец документа.
func (s *ShareService) Revoke(ctx context.Context, actorID, shareID int64) error {
	share, err := s.shares.GetByID(ctx, shareID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get share: %w", err)
	}

	doc, err := s.docs.GetByID(ctx, share.DocumentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if doc.OwnerID != actorID {
		return ErrForbidden
	}

	return s.shares.SetActive(ctx, share.ID, false)
}

// List — ссылки документа для владельца.
func (s *ShareService) List(ctx context.Context, actorID, documentID int64) ([]model.Share, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return s.shares.ListByDocument(ctx, documentID)
}
