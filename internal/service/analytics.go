package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/storage"

	"go.uber.org/zap"
)

// AnalyticsService считает агрегаты дашборда по активным (неархивным)
// документам. Читает хранилище сущностей независимо от остальных сервисов.
type AnalyticsService struct {
	docs   repo.DocumentRepository
	files  storage.Store
	logger *zap.SugaredLogger

	now func() time.Time
}

func NewAnalyticsService(docs repo.DocumentRepository, files storage.Store, logger *zap.SugaredLogger) *AnalyticsService {
	return &AnalyticsService{docs: docs, files: files, logger: logger, now: time.Now}
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type TypeCount struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
}

type CategoryStorage struct {
	Name string  `json:"name"`
	MiB  float64 `json:"mib"`
}

type Dashboard struct {
	TotalDocuments int `json:"total_documents"`
	OwnedDocuments int `json:"owned_documents"`

	Categories []CategoryCount `json:"categories"`

	// UploadsByDay — ровно 7 записей, от старшего дня к сегодняшнему,
	// дни без загрузок присутствуют с нулём.
	UploadsByDay []DayCount `json:"uploads_by_day"`

	FileTypes []TypeCount `json:"file_types"`

	StorageMiB      float64           `json:"storage_mib"`
	OwnedStorageMiB float64           `json:"owned_storage_mib"`
	CategoryStorage []CategoryStorage `json:"category_storage"`

	// Recent — 5 последних загруженных активных документов.
	Recent []model.Document `json:"recent"`
}

// Compute строит дашборд для актора. Ошибки чтения размеров файлов
// намеренно деградируют в ноль байт и не прерывают агрегацию.
func (s *AnalyticsService) Compute(ctx context.Context, actorID int64) (*Dashboard, error) {
	docs, err := s.docs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	d := &Dashboard{TotalDocuments: len(docs)}

	catCounts := map[string]int{}
	extCounts := map[string]int{}
	catBytes := map[string]int64{}
	dayCounts := map[string]int{}
	var totalBytes, ownedBytes int64

	for i := range docs {
		doc := &docs[i]
		if doc.OwnerID == actorID {
			d.OwnedDocuments++
		}

		cat := doc.CategoryName()
		catCounts[cat]++

		if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(doc.CurrentFilePath())), "."); ext != "" {
			extCounts[ext]++
		}

		size := s.sizeOrZero(doc)
		totalBytes += size
		catBytes[cat] += size
		if doc.OwnerID == actorID {
			ownedBytes += size
		}

		dayCounts[doc.UploadedAt.UTC().Format("2006-01-02")]++
	}

	if _, ok := catCounts[model.UncategorizedName]; !ok {
		catCounts[model.UncategorizedName] = 0
	}
	for _, name := range sortedKeys(catCounts) {
		d.Categories = append(d.Categories, CategoryCount{Name: name, Count: catCounts[name]})
	}
	for _, ext := range sortedKeys(extCounts) {
		d.FileTypes = append(d.FileTypes, TypeCount{Extension: ext, Count: extCounts[ext]})
	}

	// 7 суток с заполнением пропусков нулями
	today := s.now().UTC().Truncate(24 * time.Hour)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		d.UploadsByDay = append(d.UploadsByDay, DayCount{Day: day, Count: dayCounts[day]})
	}

	d.StorageMiB = toMiB(totalBytes)
	d.OwnedStorageMiB = toMiB(ownedBytes)
	for _, name := range sortedKeys(catBytes) {
		d.CategoryStorage = append(d.CategoryStorage, CategoryStorage{Name: name, MiB: toMiB(catBytes[name])})
	}

	if len(docs) > 5 {
		docs = docs[:5] // ListActive уже отдаёт новые первыми
	}
	d.Recent = docs

	return d, nil
}

// sizeOrZero — размер всех файлов документа (исходник + версии);
// нечитаемый файл даёт ноль, а не срыв агрегации.
func (s *AnalyticsService) sizeOrZero(doc *model.Document) int64 {
	var total int64

	add := func(path string) {
		size, err := s.files.Size(path)
		if err != nil {
			s.logger.Debugw("skip unreadable file", "path", path, "error", err)
			return
		}
		total += size
	}

	add(doc.FilePath)
	for _, v := range doc.Versions {
		if v.FilePath == doc.FilePath {
			continue
		}
		add(v.FilePath)
	}
	return total
}

func toMiB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
