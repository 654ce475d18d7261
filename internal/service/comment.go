package service

import (
	"context"
	"errors"
	"fmt"

	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService — комментарии к документам с фан-аутом уведомлений владельцу.
type CommentService struct {
	comments repo.CommentRepository
	docs     repo.DocumentRepository
	shares   *ShareService
	notifs   repo.NotificationRepository
	logger   *zap.SugaredLogger
}

func NewCommentService(
	comments repo.CommentRepository,
	docs repo.DocumentRepository,
	shares *ShareService,
	notifs repo.NotificationRepository,
	logger *zap.SugaredLogger,
) *CommentService {
	return &CommentService{comments: comments, docs: docs, shares: shares, notifs: notifs, logger: logger}
}

// Add создаёт комментарий. Право на просмотр документа обязательно:
// владелец, публичный документ либо действующий токен ссылки на него.
// Владелец получает уведомление, если комментирует не он сам.
func (s *CommentService) Add(ctx context.Context, actorID, documentID int64, body, shareToken string) (*model.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is required", ErrValidation)
	}

	doc, err := s.docs.GetByID(ctx, documentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if !s.canView(ctx, actorID, doc, shareToken) {
		return nil, ErrForbidden
	}

	c := &model.Comment{DocumentID: doc.ID, AuthorID: actorID, Body: body}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if actorID != doc.OwnerID {
		n := &model.Notification{
			UserID:     doc.OwnerID,
			DocumentID: &doc.ID,
			Type:       model.NotifyComment,
			Message:    fmt.Sprintf("New comment on %q", doc.Title),
		}
		if err := s.notifs.Create(ctx, n); err != nil {
			s.logger.Warnw("create comment notification", "error", err)
		}
	}
	return c, nil
}

// List — комментарии документа, новые первыми. Те же правила доступа.
func (s *CommentService) List(ctx context.Context, actorID, documentID int64, shareToken string) ([]model.Comment, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if !s.canView(ctx, actorID, doc, shareToken) {
		return nil, ErrForbidden
	}
	return s.comments.ListByDocument(ctx, documentID)
}

// Delete разрешён автору комментария либо владельцу документа.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID int64) error {
	c, err := s.comments.GetByID(ctx, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}

	doc, err := s.docs.GetByID(ctx, c.DocumentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if actorID != c.AuthorID && actorID != doc.OwnerID {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, c.ID)
}

func (s *CommentService) canView(ctx context.Context, actorID int64, doc *model.Document, shareToken string) bool {
	if doc.OwnerID == actorID || !doc.IsPrivate {
		return true
	}
	if shareToken == "" {
		return false
	}
	share, _, err := s.shares.GetValid(ctx, shareToken)
	return err == nil && share.DocumentID == doc.ID
}
