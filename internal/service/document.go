package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// allowedExtensions — белый список расширений загружаемых файлов.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ValidateFileName проверяет расширение файла по белому списку.
func ValidateFileName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %q (allowed: pdf, doc, docx, xls, xlsx, png, jpg, jpeg)", ErrInvalidFileType, ext)
	}
	return nil
}

// DocumentService инкапсулирует жизненный цикл документа: создание,
// правки с поднятием версии, архивирование и удаление с зачисткой файлов.
//
// Принуждение прав на edit/delete/archive/restore — только владение
// (актор == владелец), независимо от роли. Оценщик ролей применяется
// к созданию.
type DocumentService struct {
	docs   repo.DocumentRepository
	users  repo.UserRepository
	notifs repo.NotificationRepository
	files  storage.Store
	logger *zap.SugaredLogger
}

func NewDocumentService(
	docs repo.DocumentRepository,
	users repo.UserRepository,
	notifs repo.NotificationRepository,
	files storage.Store,
	logger *zap.SugaredLogger,
) *DocumentService {
	return &DocumentService{docs: docs, users: users, notifs: notifs, files: files, logger: logger}
}

// UploadInput — данные создания документа.
type UploadInput struct {
	Title       string
	Description string
	CategoryID  *int64
	IsPrivate   bool

	FileName string
	File     io.Reader
}

// Upload создаёт документ с current_version=1 и одной версией
// "Initial version". Валидация происходит до записи чего-либо.
func (s *DocumentService) Upload(ctx context.Context, actorID int64, in UploadInput) (*model.Document, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.FileName == "" || in.File == nil {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}
	if err := ValidateFileName(in.FileName); err != nil {
		return nil, err
	}

	role, err := s.users.GetRole(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	if !Can(role, actorID, ActionCreate, nil) {
		return nil, ErrForbidden
	}

	path, err := s.files.Save(in.FileName, in.File)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	doc := &model.Document{
		Title:          in.Title,
		Description:    in.Description,
		FilePath:       path,
		OwnerID:        actorID,
		CategoryID:     in.CategoryID,
		IsPrivate:      in.IsPrivate,
		CurrentVersion: 1,
	}
	ver := &model.Version{
		FilePath:      path,
		VersionNumber: 1,
		CreatedByID:   actorID,
		Comment:       "Initial version",
	}
	if err := s.docs.CreateWithVersion(ctx, doc, ver); err != nil {
		_ = s.files.Delete(path)
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.notify(ctx, actorID, &doc.ID, model.NotifyUpload,
		fmt.Sprintf("Document %q uploaded", doc.Title))

	s.logger.Infow("document uploaded", "document_id", doc.ID, "owner_id", actorID)
	// перечитываем, чтобы ответ нёс категорию и созданную версию
	return s.docs.GetByID(ctx, doc.ID)
}

// Get возвращает документ с проверкой доступа на просмотр:
// владелец видит всё своё, приватный документ чужим не отдаётся.
func (s *DocumentService) Get(ctx context.Context, actorID, id int64) (*model.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.IsPrivate && doc.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return doc, nil
}

// List — дашборд: активные документы актора плюс публичные, с поиском
// и фильтром по категории.
func (s *DocumentService) List(ctx context.Context, actorID int64, query, categoryName string) ([]model.Document, error) {
	return s.docs.List(ctx, repo.ListFilter{
		ViewerID:     actorID,
		Query:        query,
		CategoryName: categoryName,
	})
}

// ListArchived — собственные архивные документы актора.
func (s *DocumentService) ListArchived(ctx context.Context, actorID int64) ([]model.Document, error) {
	return s.docs.ListArchived(ctx, actorID)
}

// MetaInput — редактируемые метаданные; счётчик версий не трогается.
type MetaInput struct {
	Title       string
	Description string
	CategoryID  *int64
	IsPrivate   bool
}

// EditMeta обновляет метаданные документа. Только владелец.
func (s *DocumentService) EditMeta(ctx context.Context, actorID, id int64, in MetaInput) (*model.Document, error) {
	doc, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	updates := map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"category_id": in.CategoryID,
		"is_private":  in.IsPrivate,
	}
	if err := s.docs.UpdateMeta(ctx, doc.ID, updates); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return s.docs.GetByID(ctx, doc.ID)
}

// EditFile заменяет содержимое: поднимает current_version ровно на 1 и
// создаёт версию с этим номером, новым файлом и комментарием редактора.
// FilePath самого документа не меняется — историю несут версии.
func (s *DocumentService) EditFile(ctx context.Context, actorID, id int64, fileName string, file io.Reader, comment string) (*model.Document, error) {
	doc, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateFileName(fileName); err != nil {
		return nil, err
	}

	path, err := s.files.Save(fileName, file)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	ver := &model.Version{
		DocumentID:    doc.ID,
		FilePath:      path,
		VersionNumber: doc.CurrentVersion + 1,
		CreatedByID:   actorID,
		Comment:       comment,
	}
	if err := s.docs.AddVersion(ctx, ver); err != nil {
		_ = s.files.Delete(path)
		return nil, fmt.Errorf("add version: %w", err)
	}

	s.notify(ctx, doc.OwnerID, &doc.ID, model.NotifyUpdate,
		fmt.Sprintf("Document %q updated to version %d", doc.Title, ver.VersionNumber))

	s.logger.Infow("document version added",
		"document_id", doc.ID, "version", ver.VersionNumber)
	return s.docs.GetByID(ctx, doc.ID)
}

// Archive мягко скрывает документ. Только владелец.
func (s *DocumentService) Archive(ctx context.Context, actorID, id int64) error {
	doc, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.docs.SetArchived(ctx, doc.ID, true, &now)
}

// Restore возвращает документ из архива. Только владелец.
func (s *DocumentService) Restore(ctx context.Context, actorID, id int64) error {
	doc, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	return s.docs.SetArchived(ctx, doc.ID, false, nil)
}

// Delete удаляет документ: сперва байты файла документа и всех версий,
// затем граф сущностей. Терминально, только владелец.
func (s *DocumentService) Delete(ctx context.Context, actorID, id int64) error {
	doc, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.files.Delete(doc.FilePath); err != nil {
		s.logger.Warnw("delete document file", "path", doc.FilePath, "error", err)
	}
	for _, v := range doc.Versions {
		if v.FilePath == doc.FilePath {
			continue
		}
		if err := s.files.Delete(v.FilePath); err != nil {
			s.logger.Warnw("delete version file", "path", v.FilePath, "error", err)
		}
	}

	if err := s.docs.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.logger.Infow("document deleted", "document_id", doc.ID, "owner_id", actorID)
	return nil
}

// Open отдаёт содержимое актуального файла документа с именем вложения.
func (s *DocumentService) Open(ctx context.Context, actorID, id int64) (string, io.ReadCloser, error) {
	doc, err := s.Get(ctx, actorID, id)
	if err != nil {
		return "", nil, err
	}
	path := doc.CurrentFilePath()
	rc, err := s.files.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open file: %w", err)
	}
	return filepath.Base(path), rc, nil
}

// owned загружает документ и требует владения для мутаций —
// независимо от роли актора.
func (s *DocumentService) owned(ctx context.Context, actorID, id int64) (*model.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return doc, nil
}

// notify пишет уведомление best-effort: сбой логируется, операцию не валит.
func (s *DocumentService) notify(ctx context.Context, userID int64, docID *int64, typ model.NotificationType, msg string) {
	n := &model.Notification{UserID: userID, DocumentID: docID, Type: typ, Message: msg}
	if err := s.notifs.Create(ctx, n); err != nil {
		s.logger.Warnw("create notification", "type", typ, "error", err)
	}
}
