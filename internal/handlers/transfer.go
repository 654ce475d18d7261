package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"DocKeeper/internal/config"
	"DocKeeper/internal/service"

	"go.uber.org/zap"
)

// TransferHandler обрабатывает пакетный экспорт и импорт документов.
type TransferHandler struct {
	Transfer *service.TransferService
	Logger   *zap.SugaredLogger
	Config   *config.Config
}

func NewTransferHandler(transfer *service.TransferService, logger *zap.SugaredLogger, cfg *config.Config) *TransferHandler {
	return &TransferHandler{Transfer: transfer, Logger: logger, Config: cfg}
}

type exportRequest struct {
	DocumentIDs []int64 `json:"document_ids"`
}

// Export стримит один zip-архив с файлами доступных документов.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(req.DocumentIDs) == 0 {
		http.Error(w, "document_ids is required", http.StatusBadRequest)
		return
	}

	archive, err := h.Transfer.Export(r.Context(), userID, req.DocumentIDs)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="documents.zip"`)
	w.Header().Set("Content-Type", "application/zip")
	_, _ = w.Write(archive)
}

// Import принимает multipart-набор файлов (поле files), категорию и флаг
// приватности; отвечает счётчиками успехов и сбоев.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	maxBody := int64(h.Config.MaxUploadMB) * 1024 * 1024 * 8
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	var categoryID *int64
	if cat := r.FormValue("category_id"); cat != "" {
		id, err := strconv.ParseInt(cat, 10, 64)
		if err != nil {
			http.Error(w, "invalid category_id", http.StatusBadRequest)
			return
		}
		categoryID = &id
	}
	isPrivate := r.FormValue("is_private") == "true"

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		http.Error(w, "files are required", http.StatusBadRequest)
		return
	}

	var files []service.ImportFile
	var opened []interface{ Close() error }
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			h.Logger.Warnw("import: open part", "file", header.Filename, "error", err)
			continue
		}
		opened = append(opened, f)
		files = append(files, service.ImportFile{Name: header.Filename, Data: f})
	}

	res, err := h.Transfer.Import(r.Context(), userID, files, categoryID, isPrivate)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
