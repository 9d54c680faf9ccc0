package inmemdb

import (
	"context"

	"github.com/trezcool/ujumbe/core/file"
)

type fileRepository struct {
	db *fileTable
}

var _ file.Repository = (*fileRepository)(nil)

func NewFileRepository(db *DB) file.Repository {
	return &fileRepository{db: db.file}
}

func (repo *fileRepository) CreateFile(_ context.Context, f file.File) (file.File, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if f.ID == "" {
		f.ID = newID()
	}
	repo.db.table[f.ID] = f
	return f, nil
}

func (repo *fileRepository) GetFile(_ context.Context, id string) (file.File, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if f, ok := repo.db.table[id]; ok {
		return f, nil
	}
	return file.File{}, file.ErrNotFound
}

func (repo *fileRepository) QueryFiles(_ context.Context, ids []string) ([]file.File, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	files := make([]file.File, 0, len(ids))
	for _, id := range ids {
		if f, ok := repo.db.table[id]; ok {
			files = append(files, f)
		}
	}
	return files, nil
}

func (repo *fileRepository) DeleteFile(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return file.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
