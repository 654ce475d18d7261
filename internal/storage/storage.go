package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store — контракт файлового хранилища: запись, чтение и удаление по пути.
// Пути относительные, детали размещения скрыты за реализацией.
type Store interface {
	// Save пишет содержимое r и возвращает относительный путь сохранённого файла.
	// Расширение берётся из origName, само имя заменяется случайным.
	Save(origName string, r io.Reader) (string, error)

	// Open открывает сохранённый файл на чтение.
	Open(path string) (io.ReadCloser, error)

	// Delete удаляет файл. Отсутствие файла ошибкой не считается.
	Delete(path string) error

	// Size возвращает размер файла в байтах.
	Size(path string) (int64, error)

	// Exists сообщает, есть ли файл по данному пути.
	Exists(path string) bool
}

// Disk — реализация Store поверх локальной файловой системы.
type Disk struct {
	root string
}

// NewDisk создаёт каталог хранилища и возвращает реализацию поверх него.
func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(filepath.Join(root, "documents"), 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Disk{root: root}, nil
}

func (d *Disk) Save(origName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(origName))
	rel := filepath.Join("documents", uuid.NewString()+ext)

	f, err := os.Create(filepath.Join(d.root, rel))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		// не оставляем половину файла
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write blob: %w", err)
	}
	return rel, nil
}

func (d *Disk) Open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.root, path))
}

func (d *Disk) Delete(path string) error {
	err := os.Remove(filepath.Join(d.root, path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *Disk) Size(path string) (int64, error) {
	fi, err := os.Stat(filepath.Join(d.root, path))
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (d *Disk) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(d.root, path))
	return err == nil
}

var _ Store = (*Disk)(nil)
