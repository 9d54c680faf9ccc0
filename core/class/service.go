package class

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/user"
)

var (
	// errors
	ErrNotFound   = errors.New("class not found")
	ErrNameExists = errors.New("a class with this name already exists for this academic year")
)

type (
	Repository interface {
		// CheckNameUniqueness returns ErrNameExists when another class, not in excludedClasses,
		// has the same name (case-insensitive) in the academic year.
		CheckNameUniqueness(ctx context.Context, name, academicYear string, excludedClasses ...Class) error
		CreateClass(ctx context.Context, cls Class) (Class, error)
		QueryClasses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Class, error)
		GetClass(ctx context.Context, id string) (Class, error)
		UpdateClass(ctx context.Context, cls Class) (Class, error)
		DeleteClass(ctx context.Context, id string) error
	}

	Service interface {
		CheckUniqueness(ctx context.Context, name, academicYear string, exclClasses ...Class) error
		// CheckMembers makes sure teachers and students exist and hold the matching role.
		CheckMembers(ctx context.Context, m Members) error
		Create(ctx context.Context, nc NewClass) (Class, error)
		// Query lists every class for admins and only the classes of actor otherwise.
		Query(ctx context.Context, actor user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Class, error)
		GetByID(ctx context.Context, id string) (Class, error)
		// GetForUser returns ErrNotFound unless actor is an admin or a member of the class.
		GetForUser(ctx context.Context, actor user.User, id string) (Class, error)
		GetManyByID(ctx context.Context, ids []string) ([]Class, error)
		ClassesOf(ctx context.Context, userID string) ([]Class, error)
		Update(ctx context.Context, cls Class, uc UpdateClass) (Class, error)
		AddMembers(ctx context.Context, cls Class, m Members) (Class, error)
		RemoveMembers(ctx context.Context, cls Class, m Members) (Class, error)
		Delete(ctx context.Context, id string) error
	}

	service struct {
		repo   Repository
		usrSvc user.Service
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrSvc user.Service) Service {
	return &service{
		repo:   repo,
		usrSvc: usrSvc,
	}
}

func (svc *service) CheckUniqueness(ctx context.Context, name, academicYear string, exclClasses ...Class) error {
	if err := svc.repo.CheckNameUniqueness(ctx, name, academicYear, exclClasses...); err != nil {
		if errors.Cause(err) == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return errors.Wrap(err, "checking uniqueness")
	}
	return nil
}

func (svc *service) CheckMembers(ctx context.Context, m Members) error {
	var fldErrs []core.FieldError

	check := func(field string, ids []string, hasRole func(user.User) bool) error {
		if len(ids) == 0 {
			return nil
		}
		users, err := svc.usrSvc.GetManyByID(ctx, ids)
		if err != nil {
			return errors.Wrap(err, "finding users by ID")
		}
		found := make(map[string]bool, len(users))
		for _, usr := range users {
			found[usr.ID] = hasRole(usr)
		}
		var invalid []string
		for _, id := range ids {
			if !found[id] {
				invalid = append(invalid, id)
			}
		}
		if len(invalid) > 0 {
			fldErrs = append(fldErrs, core.FieldError{Field: field, Error: "invalid users: " + strings.Join(invalid, ", ")})
		}
		return nil
	}

	if err := check("teacher_ids", m.TeacherIDs, func(u user.User) bool { return u.IsTeacher() }); err != nil {
		return err
	}
	if err := check("student_ids", m.StudentIDs, func(u user.User) bool { return u.IsStudent() }); err != nil {
		return err
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(nil, fldErrs...)
	}
	return nil
}

func (svc *service) Create(ctx context.Context, nc NewClass) (Class, error) {
	now := time.Now().UTC()
	cls := Class{
		Name:         nc.Name,
		Level:        nc.Level,
		AcademicYear: nc.AcademicYear,
		TeacherIDs:   nc.TeacherIDs,
		StudentIDs:   nc.StudentIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if cls.TeacherIDs == nil {
		cls.TeacherIDs = []string{}
	}
	if cls.StudentIDs == nil {
		cls.StudentIDs = []string{}
	}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *service) Query(ctx context.Context, actor user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Class, error) {
	if filter == nil {
		filter = new(QueryFilter)
	}
	if !actor.IsAdmin() {
		if filter.Member != "" && filter.Member != actor.ID {
			return []Class{}, nil
		}
		filter.Member = actor.ID
	}
	return svc.repo.QueryClasses(ctx, filter, core.AllowedOrdering(ordering, OrderingFields, DefaultOrdering))
}

func (svc *service) GetByID(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClass(ctx, id)
}

func (svc *service) GetForUser(ctx context.Context, actor user.User, id string) (Class, error) {
	cls, err := svc.repo.GetClass(ctx, id)
	if err != nil {
		return Class{}, err
	}
	if !(actor.IsAdmin() || cls.HasMember(actor.ID)) {
		return Class{}, ErrNotFound
	}
	return cls, nil
}

func (svc *service) GetManyByID(ctx context.Context, ids []string) ([]Class, error) {
	if len(ids) == 0 {
		return []Class{}, nil
	}
	return svc.repo.QueryClasses(ctx, &QueryFilter{IDs: ids}, []core.DBOrdering{DefaultOrdering})
}

func (svc *service) ClassesOf(ctx context.Context, userID string) ([]Class, error) {
	return svc.repo.QueryClasses(ctx, &QueryFilter{Member: userID}, []core.DBOrdering{DefaultOrdering})
}

func (svc *service) Update(ctx context.Context, cls Class, uc UpdateClass) (Class, error) {
	cls.Name = uc.Name
	cls.Level = uc.Level
	cls.AcademicYear = uc.AcademicYear
	if uc.IsArchived != nil {
		cls.IsArchived = *uc.IsArchived
	}
	cls.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateClass(ctx, cls)
}

func (svc *service) AddMembers(ctx context.Context, cls Class, m Members) (Class, error) {
	m.Clean()
	if err := svc.CheckMembers(ctx, m); err != nil {
		return Class{}, err
	}
	cls.TeacherIDs = core.UniqueStrings(append(cls.TeacherIDs, m.TeacherIDs...))
	cls.StudentIDs = core.UniqueStrings(append(cls.StudentIDs, m.StudentIDs...))
	cls.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateClass(ctx, cls)
}

func (svc *service) RemoveMembers(ctx context.Context, cls Class, m Members) (Class, error) {
	m.Clean()
	cls.TeacherIDs = core.RemoveStrings(cls.TeacherIDs, m.TeacherIDs)
	cls.StudentIDs = core.RemoveStrings(cls.StudentIDs, m.StudentIDs)
	cls.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateClass(ctx, cls)
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteClass(ctx, id)
}
