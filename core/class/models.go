package class

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ujumbe/core"
)

type Class struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Level        string    `json:"level"`
	AcademicYear string    `json:"academic_year"`
	TeacherIDs   []string  `json:"teacher_ids"`
	StudentIDs   []string  `json:"student_ids"`
	IsArchived   bool      `json:"is_archived"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

func (c Class) HasTeacher(userID string) bool {
	return core.StringInSlice(userID, c.TeacherIDs)
}

func (c Class) HasStudent(userID string) bool {
	return core.StringInSlice(userID, c.StudentIDs)
}

func (c Class) HasMember(userID string) bool {
	return c.HasTeacher(userID) || c.HasStudent(userID)
}

// MemberIDs returns teachers first, then students.
func (c Class) MemberIDs() []string {
	ids := make([]string, 0, len(c.TeacherIDs)+len(c.StudentIDs))
	ids = append(ids, c.TeacherIDs...)
	ids = append(ids, c.StudentIDs...)
	return core.UniqueStrings(ids)
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name         string   `json:"name" validate:"required,max=150"`
	Level        string   `json:"level" validate:"max=50"`
	AcademicYear string   `json:"academic_year" validate:"max=20"`
	TeacherIDs   []string `json:"teacher_ids"`
	StudentIDs   []string `json:"student_ids"`
}

func (nc *NewClass) Clean() {
	nc.Name = core.CleanString(nc.Name)
	nc.Level = core.CleanString(nc.Level)
	nc.AcademicYear = core.CleanString(nc.AcademicYear)
	nc.TeacherIDs = core.UniqueStrings(nc.TeacherIDs)
	nc.StudentIDs = core.UniqueStrings(nc.StudentIDs)
}

func (nc *NewClass) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	nc.Clean()
	if err := validate.Struct(nc); err != nil {
		return err
	}
	if err := svc.CheckUniqueness(ctx, nc.Name, nc.AcademicYear); err != nil {
		return err
	}
	return svc.CheckMembers(ctx, Members{TeacherIDs: nc.TeacherIDs, StudentIDs: nc.StudentIDs})
}

// UpdateClass defines what information may be provided to modify an existing Class.
type UpdateClass struct {
	Name         string `json:"name" validate:"max=150"`
	Level        string `json:"level" validate:"max=50"`
	AcademicYear string `json:"academic_year" validate:"max=20"`
	IsArchived   *bool  `json:"is_archived"`
}

func (uc *UpdateClass) Validate(ctx context.Context, origCls Class, validate *validator.Validate, svc Service) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = origCls.Name
	}
	if lvl := core.CleanString(uc.Level); lvl != "" {
		uc.Level = lvl
	} else {
		uc.Level = origCls.Level
	}
	if year := core.CleanString(uc.AcademicYear); year != "" {
		uc.AcademicYear = year
	} else {
		uc.AcademicYear = origCls.AcademicYear
	}

	if err := validate.Struct(uc); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, uc.Name, uc.AcademicYear, origCls)
}

// Members lists users to add to or remove from a Class.
type Members struct {
	TeacherIDs []string `json:"teacher_ids" query:"teacher_id"`
	StudentIDs []string `json:"student_ids" query:"student_id"`
}

func (m *Members) Clean() {
	m.TeacherIDs = core.UniqueStrings(m.TeacherIDs)
	m.StudentIDs = core.UniqueStrings(m.StudentIDs)
}

func (m Members) IsEmpty() bool {
	return len(m.TeacherIDs) == 0 && len(m.StudentIDs) == 0
}

type QueryFilter struct {
	IDs          []string `query:"-"`
	Search       string   `query:"search"`
	Level        string   `query:"level"`
	AcademicYear string   `query:"academic_year"`
	Member       string   `query:"member"`
	IsArchived   *bool    `query:"is_archived"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Level = core.CleanString(qf.Level)
	qf.AcademicYear = core.CleanString(qf.AcademicYear)
	qf.Member = core.CleanString(qf.Member)
}

// Match applies the filter to cls; it backs the repositories that filter in memory.
func (qf *QueryFilter) Match(cls Class) bool {
	if qf == nil {
		return true
	}
	if qf.IDs != nil && !core.StringInSlice(cls.ID, qf.IDs) {
		return false
	}
	if qf.Search != "" && !strings.Contains(strings.ToLower(cls.Name), strings.ToLower(qf.Search)) {
		return false
	}
	if qf.Level != "" && !strings.EqualFold(cls.Level, qf.Level) {
		return false
	}
	if qf.AcademicYear != "" && cls.AcademicYear != qf.AcademicYear {
		return false
	}
	if qf.Member != "" && !cls.HasMember(qf.Member) {
		return false
	}
	if qf.IsArchived != nil && cls.IsArchived != *qf.IsArchived {
		return false
	}
	return true
}

// Orderable fields (API name -> column).
var OrderingFields = map[string]string{
	"name":          "name",
	"level":         "level",
	"academic_year": "academic_year",
	"created_at":    "created_at",
}

var DefaultOrdering = core.DBOrdering{Field: "name", Ascending: true}
