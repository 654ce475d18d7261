package service

import (
	"context"

	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
)

// NotificationService — чтение и пометка уведомлений. Сами уведомления
// создаются другими сервисами как побочный эффект мутаций.
type NotificationService struct {
	repo repo.NotificationRepository
}

func NewNotificationService(r repo.NotificationRepository) *NotificationService {
	return &NotificationService{repo: r}
}

// List — уведомления актора, новые первыми.
func (s *NotificationService) List(ctx context.Context, actorID int64) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, actorID)
}

// UnreadCount — число непрочитанных уведомлений актора.
func (s *NotificationService) UnreadCount(ctx context.Context, actorID int64) (int64, error) {
	return s.repo.CountUnread(ctx, actorID)
}

// MarkRead помечает одно уведомление; чужое или несуществующее — ErrNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, actorID, id int64) error {
	affected, err := s.repo.MarkRead(ctx, id, actorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead помечает прочитанными все уведомления актора.
func (s *NotificationService) MarkAllRead(ctx context.Context, actorID int64) error {
	return s.repo.MarkAllRead(ctx, actorID)
}
