package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"agrisight/internal/domain/port"
)

// FSImageStore хранилище артефактов в локальном каталоге.
// Имя файла — ключ; подкаталоги не используются.
type FSImageStore struct {
	dir string
}

// NewFSImageStore создаёт каталог при необходимости.
func NewFSImageStore(dir string) (*FSImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FSImageStore{dir: dir}, nil
}

// Put записывает артефакт.
func (s *FSImageStore) Put(ctx context.Context, name string, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, filepath.Base(name)), data, 0o644)
}

// Get читает артефакт.
func (s *FSImageStore) Get(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
}

// Delete удаляет артефакт.
func (s *FSImageStore) Delete(ctx context.Context, name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// List возвращает имена артефактов в алфавитном порядке.
func (s *FSImageStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Проверка реализации интерфейса
var _ port.ImageStore = (*FSImageStore)(nil)
