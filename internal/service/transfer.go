package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"DocKeeper/internal/storage"

	"go.uber.org/zap"
)

// TransferService — пакетный экспорт в zip и пакетный импорт документов
// с поштучным учётом сбоев.
type TransferService struct {
	docsvc *DocumentService
	files  storage.Store
	logger *zap.SugaredLogger
}

func NewTransferService(docsvc *DocumentService, files storage.Store, logger *zap.SugaredLogger) *TransferService {
	return &TransferService{docsvc: docsvc, files: files, logger: logger}
}

// Export собирает zip из актуальных файлов перечисленных документов.
// Недоступные актору и нечитаемые позиции молча пропускаются —
// экспорт отдаёт то, что удалось собрать.
func (s *TransferService) Export(ctx context.Context, actorID int64, ids []int64) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := map[string]bool{}

	for _, id := range ids {
		doc, err := s.docsvc.Get(ctx, actorID, id)
		if err != nil {
			s.logger.Debugw("export: skip document", "document_id", id, "error", err)
			continue
		}

		path := doc.CurrentFilePath()
		rc, err := s.files.Open(path)
		if err != nil {
			s.logger.Warnw("export: skip unreadable file", "document_id", id, "error", err)
			continue
		}

		name := filepath.Base(path)
		if used[name] {
			name = fmt.Sprintf("%d_%s", doc.ID, name)
		}
		used[name] = true

		w, err := zw.Create(name)
		if err == nil {
			_, err = io.Copy(w, rc)
		}
		_ = rc.Close()
		if err != nil {
			_ = zw.Close()
			return nil, fmt.Errorf("write archive entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportFile — одна позиция пакетного импорта.
type ImportFile struct {
	Name string
	Data io.Reader
}

// ImportResult — итог пакетного импорта.
type ImportResult struct {
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
}

// Import создаёт по документу с начальной версией на каждый файл.
// Заголовок — имя файла без расширения. Сбой позиции не прерывает
// остальные и не оставляет за собой полдокумента.
func (s *TransferService) Import(ctx context.Context, actorID int64, files []ImportFile, categoryID *int64, isPrivate bool) (ImportResult, error) {
	var res ImportResult
	for _, f := range files {
		title := strings.TrimSuffix(filepath.Base(f.Name), filepath.Ext(f.Name))
		_, err := s.docsvc.Upload(ctx, actorID, UploadInput{
			Title:       title,
			Description: "Imported document",
			CategoryID:  categoryID,
			IsPrivate:   isPrivate,
			FileName:    f.Name,
			File:        f.Data,
		})
		if err != nil {
			s.logger.Warnw("import: item failed", "file", f.Name, "error", err)
			res.ErrorCount++
			continue
		}
		res.SuccessCount++
	}
	return res, nil
}
