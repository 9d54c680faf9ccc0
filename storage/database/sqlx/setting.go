package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ujumbe/core/setting"
)

const settingTable = "system_setting"

var settingColumns = []string{"key", "value", "description", "is_public", "updated_by", "created_at", "updated_at"}

type settingRow struct {
	Key         string      `db:"key"`
	Value       string      `db:"value"`
	Description string      `db:"description"`
	IsPublic    bool        `db:"is_public"`
	UpdatedBy   null.String `db:"updated_by"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r settingRow) toModel() setting.Setting {
	return setting.Setting{
		Key:         r.Key,
		Value:       r.Value,
		Description: r.Description,
		IsPublic:    r.IsPublic,
		UpdatedBy:   r.UpdatedBy.String,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type settingRepository struct {
	db *sqlx.DB
}

var _ setting.Repository = (*settingRepository)(nil)

func NewSettingRepository(db *sqlx.DB) setting.Repository {
	return &settingRepository{db: db}
}

func (repo *settingRepository) QuerySettings(ctx context.Context, publicOnly bool) ([]setting.Setting, error) {
	b := psql.Select(settingColumns...).From(settingTable).OrderBy("key ASC")
	if publicOnly {
		b = b.Where(sq.Eq{"is_public": true})
	}

	var rows []settingRow
	if err := selectRows(ctx, repo.db, &rows, b); err != nil {
		return nil, errors.Wrap(err, "querying settings")
	}
	settings := make([]setting.Setting, 0, len(rows))
	for _, row := range rows {
		settings = append(settings, row.toModel())
	}
	return settings, nil
}

func (repo *settingRepository) GetSetting(ctx context.Context, key string) (setting.Setting, error) {
	var row settingRow
	b := psql.Select(settingColumns...).From(settingTable).Where(sq.Eq{"key": key})
	if err := getRow(ctx, repo.db, &row, b); err != nil {
		if isNoRows(err) {
			return setting.Setting{}, setting.ErrNotFound
		}
		return setting.Setting{}, errors.Wrap(err, "getting setting")
	}
	return row.toModel(), nil
}

func (repo *settingRepository) UpsertSetting(ctx context.Context, s setting.Setting) (setting.Setting, error) {
	b := psql.Insert(settingTable).Columns(settingColumns...).
		Values(s.Key, s.Value, s.Description, s.IsPublic, nullString(s.UpdatedBy), s.CreatedAt.UTC(), s.UpdatedAt.UTC()).
		Suffix(`ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			description = EXCLUDED.description,
			is_public = EXCLUDED.is_public,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at`)

	query, args, err := b.ToSql()
	if err != nil {
		return setting.Setting{}, errors.Wrap(err, "building query")
	}
	if err = repo.db.GetContext(ctx, &s.CreatedAt, query, args...); err != nil {
		return setting.Setting{}, errors.Wrap(err, "upserting setting")
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

func (repo *settingRepository) DeleteSetting(ctx context.Context, key string) error {
	n, err := exec(ctx, repo.db, psql.Delete(settingTable).Where(sq.Eq{"key": key}))
	if err != nil {
		return errors.Wrap(err, "deleting setting")
	}
	if n == 0 {
		return setting.ErrNotFound
	}
	return nil
}
