package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"DocKeeper/internal/config"
	"DocKeeper/internal/model"
	"DocKeeper/internal/service"

	"go.uber.org/zap"
)

// DocumentHandler обрабатывает CRUD документов и скачивание файлов.
type DocumentHandler struct {
	Documents *service.DocumentService
	Logger    *zap.SugaredLogger
	Config    *config.Config
}

func NewDocumentHandler(docs *service.DocumentService, logger *zap.SugaredLogger, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{Documents: docs, Logger: logger, Config: cfg}
}

// DocumentDTO — представление документа в ответах API.
type DocumentDTO struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	OwnerID        int64        `json:"owner_id"`
	CategoryID     *int64       `json:"category_id,omitempty"`
	Category       string       `json:"category,omitempty"`
	IsPrivate      bool         `json:"is_private"`
	Archived       bool         `json:"archived"`
	CurrentVersion int64        `json:"current_version"`
	FileName       string       `json:"file_name"`
	UploadedAt     string       `json:"uploaded_at"`
	Versions       []VersionDTO `json:"versions,omitempty"`
}

type VersionDTO struct {
	VersionNumber int64  `json:"version_number"`
	Comment       string `json:"comment,omitempty"`
	CreatedByID   int64  `json:"created_by_id"`
	CreatedAt     string `json:"created_at"`
}

func toDocumentDTO(doc *model.Document, withVersions bool) DocumentDTO {
	dto := DocumentDTO{
		ID:             doc.ID,
		Title:          doc.Title,
		Description:    doc.Description,
		OwnerID:        doc.OwnerID,
		CategoryID:     doc.CategoryID,
		IsPrivate:      doc.IsPrivate,
		Archived:       doc.Archived,
		CurrentVersion: doc.CurrentVersion,
		FileName:       filepath.Base(doc.CurrentFilePath()),
		UploadedAt:     doc.UploadedAt.UTC().Format(time.RFC3339),
	}
	if doc.Category != nil {
		dto.Category = doc.Category.Name
	}
	if withVersions {
		for _, v := range doc.Versions {
			dto.Versions = append(dto.Versions, VersionDTO{
				VersionNumber: v.VersionNumber,
				Comment:       v.Comment,
				CreatedByID:   v.CreatedByID,
				CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
	}
	return dto
}

func toDocumentList(docs []model.Document) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(docs))
	for i := range docs {
		out = append(out, toDocumentDTO(&docs[i], false))
	}
	return out
}

// parseUploadForm разбирает multipart-форму документа; file может
// отсутствовать (правка метаданных).
func (h *DocumentHandler) parseUploadForm(w http.ResponseWriter, r *http.Request) (service.UploadInput, multipart.File, bool) {
	maxBody := int64(h.Config.MaxUploadMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return service.UploadInput{}, nil, false
	}

	in := service.UploadInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		IsPrivate:   r.FormValue("is_private") == "true",
	}
	if cat := r.FormValue("category_id"); cat != "" {
		id, err := strconv.ParseInt(cat, 10, 64)
		if err != nil {
			http.Error(w, "invalid category_id", http.StatusBadRequest)
			return service.UploadInput{}, nil, false
		}
		in.CategoryID = &id
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return in, nil, true // файла нет — не ошибка на этом уровне
	}
	in.FileName = header.Filename
	in.File = file
	return in, file, true
}

// Upload — создание документа из multipart-формы.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	in, file, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	doc, err := h.Documents.Upload(r.Context(), userID, in)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDocumentDTO(doc, true))
}

// List — дашборд с поиском (q) и фильтром по категории (category).
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	docs, err := h.Documents.List(r.Context(), userID, r.URL.Query().Get("q"), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentList(docs))
}

// ListArchived — собственные архивные документы актора.
func (h *DocumentHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	docs, err := h.Documents.ListArchived(r.Context(), userID)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentList(docs))
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	doc, err := h.Documents.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentDTO(doc, true))
}

// Edit — правка метаданных; при наличии файла в форме дополнительно
// поднимается версия (version_comment — комментарий версии).
func (h *DocumentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	in, file, ok := h.parseUploadForm(w, r)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	// файл проверяется до записи метаданных: невалидная правка
	// не должна оставить за собой частичных изменений
	if in.File != nil {
		if err := service.ValidateFileName(in.FileName); err != nil {
			writeServiceError(h.Logger, w, err)
			return
		}
	}

	doc, err := h.Documents.EditMeta(r.Context(), userID, id, service.MetaInput{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		IsPrivate:   in.IsPrivate,
	})
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}

	if in.File != nil {
		doc, err = h.Documents.EditFile(r.Context(), userID, id, in.FileName, in.File, r.FormValue("version_comment"))
		if err != nil {
			writeServiceError(h.Logger, w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, toDocumentDTO(doc, true))
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.Documents.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *DocumentHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *DocumentHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if archived {
		err = h.Documents.Archive(r.Context(), userID, id)
	} else {
		err = h.Documents.Restore(r.Context(), userID, id)
	}
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Download отдаёт актуальный файл документа вложением.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	name, rc, err := h.Documents.Open(r.Context(), userID, id)
	if err != nil {
		writeServiceError(h.Logger, w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Warnw("stream document", "document_id", id, "error", err)
	}
}
