package inmemdb

import (
	"context"
	"strings"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
)

type classRepository struct {
	db *classTable
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db.class}
}

func cloneClass(cls class.Class) class.Class {
	cls.TeacherIDs = cloneStrings(cls.TeacherIDs)
	cls.StudentIDs = cloneStrings(cls.StudentIDs)
	return cls
}

func (repo *classRepository) CheckNameUniqueness(_ context.Context, name, academicYear string, excludedClasses ...class.Class) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[string]bool, len(excludedClasses))
	for _, cls := range excludedClasses {
		excluded[cls.ID] = true
	}
	for _, cls := range repo.db.table {
		if !excluded[cls.ID] && strings.EqualFold(cls.Name, name) && cls.AcademicYear == academicYear {
			return class.ErrNameExists
		}
	}
	return nil
}

func (repo *classRepository) CreateClass(_ context.Context, cls class.Class) (class.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls.ID = newID()
	repo.db.table[cls.ID] = cloneClass(cls)
	return cloneClass(cls), nil
}

func (repo *classRepository) QueryClasses(_ context.Context, filter *class.QueryFilter, ordering []core.DBOrdering) ([]class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]class.Class, 0, len(repo.db.table))
	for _, cls := range repo.db.table {
		if filter.Match(cls) {
			classes = append(classes, cloneClass(cls))
		}
	}
	sortRows(classes, ordering, func(cls class.Class, field string) interface{} {
		switch field {
		case "name":
			return cls.Name
		case "level":
			return cls.Level
		case "academic_year":
			return cls.AcademicYear
		}
		return cls.CreatedAt
	})
	return classes, nil
}

func (repo *classRepository) GetClass(_ context.Context, id string) (class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.table[id]; ok {
		return cloneClass(cls), nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) UpdateClass(_ context.Context, cls class.Class) (class.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cls.ID]; !ok {
		return class.Class{}, class.ErrNotFound
	}
	repo.db.table[cls.ID] = cloneClass(cls)
	return cloneClass(cls), nil
}

func (repo *classRepository) DeleteClass(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return class.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
