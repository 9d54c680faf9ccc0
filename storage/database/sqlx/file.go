package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core/file"
)

const fileTable = "file"

var fileColumns = []string{"id", "owner_id", "filename", "content_type", "size", "storage_key", "created_at"}

type fileRow struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Filename    string    `db:"filename"`
	ContentType string    `db:"content_type"`
	Size        int64     `db:"size"`
	StorageKey  string    `db:"storage_key"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r fileRow) toModel() file.File {
	return file.File{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Filename:    r.Filename,
		ContentType: r.ContentType,
		Size:        r.Size,
		StorageKey:  r.StorageKey,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type fileRepository struct {
	db *sqlx.DB
}

var _ file.Repository = (*fileRepository)(nil)

func NewFileRepository(db *sqlx.DB) file.Repository {
	return &fileRepository{db: db}
}

func (repo *fileRepository) CreateFile(ctx context.Context, f file.File) (file.File, error) {
	if f.ID == "" {
		f.ID = newID()
	}
	b := psql.Insert(fileTable).Columns(fileColumns...).
		Values(f.ID, f.OwnerID, f.Filename, f.ContentType, f.Size, f.StorageKey, f.CreatedAt.UTC())
	if _, err := exec(ctx, repo.db, b); err != nil {
		return file.File{}, errors.Wrap(err, "creating file")
	}
	return f, nil
}

func (repo *fileRepository) GetFile(ctx context.Context, id string) (file.File, error) {
	var row fileRow
	b := psql.Select(fileColumns...).From(fileTable).Where(sq.Eq{"id": id})
	if err := getRow(ctx, repo.db, &row, b); err != nil {
		if isNoRows(err) {
			return file.File{}, file.ErrNotFound
		}
		return file.File{}, errors.Wrap(err, "getting file")
	}
	return row.toModel(), nil
}

func (repo *fileRepository) QueryFiles(ctx context.Context, ids []string) ([]file.File, error) {
	if len(ids) == 0 {
		return []file.File{}, nil
	}
	var rows []fileRow
	b := psql.Select(fileColumns...).From(fileTable).Where(sq.Eq{"id": ids}).OrderBy("created_at ASC")
	if err := selectRows(ctx, repo.db, &rows, b); err != nil {
		return nil, errors.Wrap(err, "querying files")
	}
	files := make([]file.File, 0, len(rows))
	for _, row := range rows {
		files = append(files, row.toModel())
	}
	return files, nil
}

func (repo *fileRepository) DeleteFile(ctx context.Context, id string) error {
	n, err := exec(ctx, repo.db, psql.Delete(fileTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Wrap(err, "deleting file")
	}
	if n == 0 {
		return file.ErrNotFound
	}
	return nil
}
