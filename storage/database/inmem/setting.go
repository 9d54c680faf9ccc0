package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/ujumbe/core/setting"
)

type settingRepository struct {
	db *settingTable
}

var _ setting.Repository = (*settingRepository)(nil)

func NewSettingRepository(db *DB) setting.Repository {
	return &settingRepository{db: db.setting}
}

func (repo *settingRepository) QuerySettings(_ context.Context, publicOnly bool) ([]setting.Setting, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	settings := make([]setting.Setting, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		if !publicOnly || s.IsPublic {
			settings = append(settings, s)
		}
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

func (repo *settingRepository) GetSetting(_ context.Context, key string) (setting.Setting, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[key]; ok {
		return s, nil
	}
	return setting.Setting{}, setting.ErrNotFound
}

func (repo *settingRepository) UpsertSetting(_ context.Context, s setting.Setting) (setting.Setting, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if existing, ok := repo.db.table[s.Key]; ok {
		s.CreatedAt = existing.CreatedAt
	}
	repo.db.table[s.Key] = s
	return s, nil
}

func (repo *settingRepository) DeleteSetting(_ context.Context, key string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[key]; !ok {
		return setting.ErrNotFound
	}
	delete(repo.db.table, key)
	return nil
}
