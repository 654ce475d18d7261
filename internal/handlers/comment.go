package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"DocKeeper/internal/model"
	"DocKeeper/internal/service"

	"go.uber.org/zap"
)

// CommentHandler обрабатывает комментарии к документам.
type CommentHandler struct {
	Comments *service.CommentService
	Logger   *zap.SugaredLogger
}

func NewCommentHandler(comments *service.CommentService, logger *zap.SugaredLogger) *CommentHandler {
	return &CommentHandler{Comments: comments, Logger: logger}
}

type commentRequest struct {
	Body string `json:"body"`
}

type commentDTO struct {
	ID         int64  `json:"id"`
	DocumentID int64  `json:"document_id"`
	AuthorID   int64  `json:"author_id"`
	Author     string `json:"author,omitempty"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
}

func toCommentDTO(c *model.Comment) commentDTO {
	dto := commentDTO{
		ID:         c.ID,
		DocumentID: c.DocumentID,
		AuthorID:   c.AuthorID,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.Author != nil {
		dto.Author = c.Author.Login
	}
	return dto
}

// Add — новый комментарий; доступ к приватному документу может дать
// действующий токен ссылки (?token=).
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	docID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	c, err := h.Comments.Add(r.Context(), userID, docID, req.Body, r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentDTO(c))
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	docID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	comments, err := h.Comments.List(r.Context(), userID, docID, r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	out := make([]commentDTO, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentDTO(&comments[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	commentID, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.Comments.Delete(r.Context(), userID, commentID); err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
