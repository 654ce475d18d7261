package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"DocKeeper/internal/model"
	"DocKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShareHandler обрабатывает выпуск, просмотр и отзыв публичных ссылок.
// Маршруты /shared/{token} доступны без аутентификации — доступ
// охраняется самим токеном.
type ShareHandler struct {
	Shares *service.ShareService
	Logger *zap.SugaredLogger
}

func NewShareHandler(shares *service.ShareService, logger *zap.SugaredLogger) *ShareHandler {
	return &ShareHandler{Shares: shares, Logger: logger}
}

type createShareRequest struct {
	ExpiryDays int `json:"expiry_days"`
}

type shareDTO struct {
	ID            int64  `json:"id"`
	DocumentID    int64  `json:"document_id"`
	Token         string `json:"token"`
	Active        bool   `json:"active"`
	ExpiresAt     string `json:"expires_at,omitempty"`
	ViewCount     int64  `json:"view_count"`
	DownloadCount int64  `json:"download_count"`
	CreatedAt     string `json:"created_at"`
}

func toShareDTO(s *model.Share) shareDTO {
	dto := shareDTO{
		ID:            s.ID,
		DocumentID:    s.DocumentID,
		Token:         s.Token,
		Active:        s.Active,
		ViewCount:     s.ViewCount,
		DownloadCount: s.DownloadCount,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s.ExpiresAt != nil {
		dto.ExpiresAt = s.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	docID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req createShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	share, err := h.Shares.Create(r.Context(), userID, docID, req.ExpiryDays)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShareDTO(share))
}

func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	docID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	shares, err := h.Shares.List(r.Context(), userID, docID)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	out := make([]shareDTO, 0, len(shares))
	for i := range shares {
		out = append(out, toShareDTO(&shares[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	shareID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.Shares.Revoke(r.Context(), userID, shareID); err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// View — публичный просмотр расшаренного документа по токену.
func (h *ShareHandler) View(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	share, doc, err := h.Shares.View(r.Context(), token)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"document": toDocumentDTO(doc, false),
		"share":    toShareDTO(share),
	})
}

// Download — публичное скачивание по токену, вложением.
func (h *ShareHandler) Download(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	name, rc, err := h.Shares.Download(r.Context(), token)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Warnw("stream shared document", "error", err)
	}
}
