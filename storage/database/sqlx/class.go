package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
)

const classTable = "class"

var classColumns = []string{
	"id", "name", "level", "academic_year", "teacher_ids", "student_ids", "is_archived", "created_at", "updated_at",
}

type classRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Level        string         `db:"level"`
	AcademicYear string         `db:"academic_year"`
	TeacherIDs   pq.StringArray `db:"teacher_ids"`
	StudentIDs   pq.StringArray `db:"student_ids"`
	IsArchived   bool           `db:"is_archived"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r classRow) toModel() class.Class {
	return class.Class{
		ID:           r.ID,
		Name:         r.Name,
		Level:        r.Level,
		AcademicYear: r.AcademicYear,
		TeacherIDs:   stringSlice(r.TeacherIDs),
		StudentIDs:   stringSlice(r.StudentIDs),
		IsArchived:   r.IsArchived,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

type classRepository struct {
	db *sqlx.DB
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(db *sqlx.DB) class.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) CheckNameUniqueness(ctx context.Context, name, academicYear string, excludedClasses ...class.Class) error {
	where := sq.And{
		sq.Expr("lower(name) = lower(?)", name),
		sq.Eq{"academic_year": academicYear},
	}
	if len(excludedClasses) > 0 {
		ids := make([]string, 0, len(excludedClasses))
		for _, cls := range excludedClasses {
			ids = append(ids, cls.ID)
		}
		where = append(where, sq.NotEq{"id": ids})
	}

	n, err := count(ctx, repo.db, classTable, where)
	if err != nil {
		return errors.Wrap(err, "checking class name uniqueness")
	}
	if n > 0 {
		return class.ErrNameExists
	}
	return nil
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	cls.ID = newID()
	b := psql.Insert(classTable).Columns(classColumns...).Values(
		cls.ID, cls.Name, cls.Level, cls.AcademicYear, stringArray(cls.TeacherIDs), stringArray(cls.StudentIDs),
		cls.IsArchived, cls.CreatedAt.UTC(), cls.UpdatedAt.UTC(),
	)
	if _, err := exec(ctx, repo.db, b); err != nil {
		if isUniqueViolation(err) {
			return class.Class{}, class.ErrNameExists
		}
		return class.Class{}, errors.Wrap(err, "creating class")
	}
	return cls, nil
}

func (repo *classRepository) QueryClasses(ctx context.Context, filter *class.QueryFilter, ordering []core.DBOrdering) ([]class.Class, error) {
	b := psql.Select(classColumns...).From(classTable)
	if filter != nil {
		if filter.IDs != nil {
			b = b.Where(sq.Eq{"id": filter.IDs})
		}
		if filter.Search != "" {
			b = b.Where(sq.ILike{"name": ilike(filter.Search)})
		}
		if filter.Level != "" {
			b = b.Where("lower(level) = lower(?)", filter.Level)
		}
		if filter.AcademicYear != "" {
			b = b.Where(sq.Eq{"academic_year": filter.AcademicYear})
		}
		if filter.Member != "" {
			b = b.Where(sq.Or{contains("teacher_ids", filter.Member), contains("student_ids", filter.Member)})
		}
		if filter.IsArchived != nil {
			b = b.Where(sq.Eq{"is_archived": *filter.IsArchived})
		}
	}
	b = orderBy(b, ordering, class.OrderingFields)

	var rows []classRow
	if err := selectRows(ctx, repo.db, &rows, b); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	classes := make([]class.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, row.toModel())
	}
	return classes, nil
}

func (repo *classRepository) GetClass(ctx context.Context, id string) (class.Class, error) {
	var row classRow
	b := psql.Select(classColumns...).From(classTable).Where(sq.Eq{"id": id})
	if err := getRow(ctx, repo.db, &row, b); err != nil {
		if isNoRows(err) {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, errors.Wrap(err, "getting class")
	}
	return row.toModel(), nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	b := psql.Update(classTable).SetMap(map[string]interface{}{
		"name":          cls.Name,
		"level":         cls.Level,
		"academic_year": cls.AcademicYear,
		"teacher_ids":   stringArray(cls.TeacherIDs),
		"student_ids":   stringArray(cls.StudentIDs),
		"is_archived":   cls.IsArchived,
		"updated_at":    cls.UpdatedAt.UTC(),
	}).Where(sq.Eq{"id": cls.ID})

	n, err := exec(ctx, repo.db, b)
	if err != nil {
		if isUniqueViolation(err) {
			return class.Class{}, class.ErrNameExists
		}
		return class.Class{}, errors.Wrap(err, "updating class")
	}
	if n == 0 {
		return class.Class{}, class.ErrNotFound
	}
	return cls, nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id string) error {
	n, err := exec(ctx, repo.db, psql.Delete(classTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if n == 0 {
		return class.ErrNotFound
	}
	return nil
}
