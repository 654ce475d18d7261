package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"DocKeeper/internal/config"
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — сервисный слой, собираемый в main и прокидываемый в хендлеры.
type Services struct {
	Users         *service.UserService
	Documents     *service.DocumentService
	Categories    *service.CategoryService
	Shares        *service.ShareService
	Comments      *service.CommentService
	Notifications *service.NotificationService
	Analytics     *service.AnalyticsService
	Transfer      *service.TransferService
}

// NewHandler разводящий для хендлеров
func NewHandler(svcs Services, logger *zap.SugaredLogger, cfg *config.Config) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	userHandler := NewUserHandler(svcs.Users, logger, cfg)
	docHandler := NewDocumentHandler(svcs.Documents, logger, cfg)
	catHandler := NewCategoryHandler(svcs.Categories, logger)
	shareHandler := NewShareHandler(svcs.Shares, logger)
	commentHandler := NewCommentHandler(svcs.Comments, logger)
	notifHandler := NewNotificationHandler(svcs.Notifications, logger)
	dashHandler := NewDashboardHandler(svcs.Analytics, logger)
	transferHandler := NewTransferHandler(svcs.Transfer, logger, cfg)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/logout", userHandler.Logout)

	// Document routes
	r.Get("/api/documents", docHandler.List)
	r.Post("/api/documents", docHandler.Upload)
	r.Get("/api/documents/archived", docHandler.ListArchived)
	r.Get("/api/documents/{id}", docHandler.Get)
	r.Put("/api/documents/{id}", docHandler.Edit)
	r.Delete("/api/documents/{id}", docHandler.Delete)
	r.Post("/api/documents/{id}/archive", docHandler.Archive)
	r.Post("/api/documents/{id}/restore", docHandler.Restore)
	r.Get("/api/documents/{id}/download", docHandler.Download)

	// Share routes (выпуск и управление — за авторизацией)
	r.Post("/api/documents/{id}/shares", shareHandler.Create)
	r.Get("/api/documents/{id}/shares", shareHandler.List)
	r.Post("/api/shares/{id}/revoke", shareHandler.Revoke)

	// Публичный доступ по токену
	r.Get("/shared/{token}", shareHandler.View)
	r.Get("/shared/{token}/download", shareHandler.Download)

	// Comment routes
	r.Post("/api/documents/{id}/comments", commentHandler.Add)
	r.Get("/api/documents/{id}/comments", commentHandler.List)
	r.Delete("/api/comments/{id}", commentHandler.Delete)

	// Category routes
	r.Get("/api/categories", catHandler.List)
	r.Post("/api/categories", catHandler.Create)
	r.Put("/api/categories/{id}", catHandler.Update)
	r.Delete("/api/categories/{id}", catHandler.Delete)

	// Notification routes
	r.Get("/api/notifications", notifHandler.List)
	r.Post("/api/notifications/{id}/read", notifHandler.MarkRead)
	r.Post("/api/notifications/read-all", notifHandler.MarkAllRead)

	// Dashboard analytics
	r.Get("/api/dashboard", dashHandler.Dashboard)

	// Bulk export/import
	r.Post("/api/export", transferHandler.Export)
	r.Post("/api/import", transferHandler.Import)

	return &Handler{Router: r}
}

// requireUser достаёт актора из контекста; без него — 401.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// idParam разбирает числовой параметр пути.
func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError транслирует таксономию ошибок сервисного слоя в HTTP.
func writeServiceError(logger *zap.SugaredLogger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidFileType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrSentinelCategory):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrShareInvalid):
		// причина (нет/отозвана/истекла/архив) наружу не уходит
		http.Error(w, service.ErrShareInvalid.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrLoginTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		logger.Errorw("internal error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
