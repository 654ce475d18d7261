package handlers

import (
	"net/http"
	"time"

	"DocKeeper/internal/model"
	"DocKeeper/internal/service"

	"go.uber.org/zap"
)

// NotificationHandler обрабатывает ленту уведомлений актора.
type NotificationHandler struct {
	Notifications *service.NotificationService
	Logger        *zap.SugaredLogger
}

func NewNotificationHandler(notifs *service.NotificationService, logger *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{Notifications: notifs, Logger: logger}
}

type notificationDTO struct {
	ID         int64  `json:"id"`
	DocumentID *int64 `json:"document_id,omitempty"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	notifs, err := h.Notifications.List(r.Context(), userID)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	unread, err := h.Notifications.UnreadCount(r.Context(), userID)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}

	out := make([]notificationDTO, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, toNotificationDTO(n))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": out,
		"unread_count":  unread,
	})
}

func toNotificationDTO(n model.Notification) notificationDTO {
	return notificationDTO{
		ID:         n.ID,
		DocumentID: n.DocumentID,
		Type:       string(n.Type),
		Message:    n.Message,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), userID, id); err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.Notifications.MarkAllRead(r.Context(), userID); err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
