package handlers

import (
	"encoding/json"
	"net/http"

	"DocKeeper/internal/service"

	"go.uber.org/zap"
)

// CategoryHandler обрабатывает категории документов.
type CategoryHandler struct {
	Categories *service.CategoryService
	Logger     *zap.SugaredLogger
}

func NewCategoryHandler(cats *service.CategoryService, logger *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{Categories: cats, Logger: logger}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	cats, err := h.Categories.List(r.Context())
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	cat, err := h.Categories.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	cat, err := h.Categories.Update(r.Context(), userID, id, req.Name, req.Description)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.Categories.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
